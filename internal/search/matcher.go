package search

import (
	"fmt"
	"regexp"
)

// State holds the user controlled search parameters
type State struct {
	Query         string `json:"query"`
	RegexMode     bool   `json:"regex_mode"`
	CaseSensitive bool   `json:"case_sensitive"`
}

// InvalidPatternError is returned when a regex mode query does not compile.
// It is not fatal: callers keep their last good result set.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// Matcher is a compiled literal or regex predicate over history entries
type Matcher struct {
	re    *regexp.Regexp
	state State
}

// Compile builds a Matcher for the given state. In literal mode every regex
// metacharacter is quoted, so only regex mode can fail.
func Compile(state State) (*Matcher, error) {
	pattern := state.Query
	if !state.RegexMode {
		pattern = regexp.QuoteMeta(pattern)
	}
	if !state.CaseSensitive {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: state.Query, Err: err}
	}

	return &Matcher{re: re, state: state}, nil
}

// MatchString reports whether entry contains a match
func (m *Matcher) MatchString(entry string) bool {
	return m.re.MatchString(entry)
}

// State returns the search state the matcher was compiled from
func (m *Matcher) State() State {
	return m.state
}

// String returns the compiled expression
func (m *Matcher) String() string {
	return m.re.String()
}

// Indices returns the byte ranges of every non-empty match in entry, for
// highlighting matched characters.
func (m *Matcher) Indices(entry string) [][2]int {
	if m == nil || m.state.Query == "" {
		return nil
	}

	locs := m.re.FindAllStringIndex(entry, -1)
	indices := make([][2]int, 0, len(locs))
	for _, loc := range locs {
		if loc[1] > loc[0] {
			indices = append(indices, [2]int{loc[0], loc[1]})
		}
	}
	return indices
}

// Filter returns the entries matched by m, preserving their order. The result
// never shares its backing array with entries.
func Filter(entries []string, m *Matcher) []string {
	filtered := make([]string, 0, len(entries))
	for _, entry := range entries {
		if m.MatchString(entry) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
