package history

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/NeverVane/histpick/internal/logger"
	"github.com/NeverVane/histpick/internal/rank"
	"github.com/NeverVane/histpick/internal/search"
)

// HistorySource reads and rewrites the shell's history
type HistorySource interface {
	ReadHistory() ([]string, error)
	WriteHistory(entries []string) error
}

// ListStore persists the favorites list under a key
type ListStore interface {
	ReadList(key string) ([]string, error)
	WriteList(key string, entries []string) error
}

// LoadError reports that history or favorites could not be read at startup
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Options sets the initial state of a loaded model
type Options struct {
	View          View
	RegexMode     bool
	CaseSensitive bool
}

// Model owns the raw history and the three views derived from it.
// Only the active view is ever filtered; every other view matches the
// snapshot taken when the tables were last built.
type Model struct {
	src    HistorySource
	store  ListStore
	favKey string

	raw       []string
	favorites []string

	table    ViewTable
	snapshot ViewTable

	view    View
	state   search.State
	matcher *search.Matcher
	// stale is set while the query does not compile and the active view
	// still reflects an older query
	stale bool

	logger    *logger.Logger
	searchLog *logger.Logger
}

// Load reads history and favorites and builds every view
func Load(src HistorySource, store ListStore, favKey string, opts *Options) (*Model, error) {
	if opts == nil {
		opts = &Options{View: Ranked}
	}
	start := time.Now()

	raw, err := src.ReadHistory()
	if err != nil {
		return nil, &LoadError{Source: "history", Err: err}
	}

	favorites, err := store.ReadList(favKey)
	if err != nil {
		return nil, &LoadError{Source: "favorites", Err: err}
	}

	m := &Model{
		src:       src,
		store:     store,
		favKey:    favKey,
		raw:       cloneEntries(raw),
		favorites: cloneEntries(favorites),
		view:      opts.View,
		state: search.State{
			RegexMode:     opts.RegexMode,
			CaseSensitive: opts.CaseSensitive,
		},
		logger:    logger.GetLogger().History(),
		searchLog: logger.GetLogger().Search(),
	}

	// An empty query always compiles.
	m.matcher, _ = search.Compile(m.state)
	m.buildTables()

	m.logger.Debug().
		Int("raw", len(m.raw)).
		Int("ranked", len(m.table[Ranked])).
		Int("favorites", len(m.favorites)).
		Msg("History model loaded")
	m.logger.Performance("load", time.Since(start))

	return m, nil
}

func (m *Model) buildTables() {
	m.table = ViewTable{
		Ranked:        rank.Rank(m.raw),
		Favorites:     cloneEntries(m.favorites),
		Chronological: rank.Unique(m.raw),
	}
	m.snapshot = m.table.Clone()
}

// Reload re-derives every view from the in-memory raw history and
// favorites, then re-applies the current query to the active view
func (m *Model) Reload() {
	m.buildTables()
	if m.state.Query != "" {
		m.applyFrom(m.snapshot[m.view], m.matcher)
	}
}

func (m *Model) applyFrom(entries []string, matcher *search.Matcher) {
	if matcher == nil || matcher.State().Query == "" {
		m.table[m.view] = cloneEntries(entries)
		return
	}
	m.table[m.view] = search.Filter(entries, matcher)
}

// View returns the active view
func (m *Model) View() View {
	return m.view
}

// ActiveEntries returns the current, possibly filtered, entries of the
// active view. Callers must not modify the returned slice.
func (m *Model) ActiveEntries() []string {
	return m.table[m.view]
}

// Entries returns the current entries of v
func (m *Model) Entries(v View) []string {
	return m.table[v]
}

// Raw returns a copy of the raw history
func (m *Model) Raw() []string {
	return cloneEntries(m.raw)
}

// Favorites returns a copy of the persisted favorites
func (m *Model) Favorites() []string {
	return cloneEntries(m.favorites)
}

// IsFavorite reports whether entry is in the favorites list
func (m *Model) IsFavorite(entry string) bool {
	return contains(m.favorites, entry)
}

// SearchState returns the current search parameters
func (m *Model) SearchState() search.State {
	return m.state
}

// Matcher returns the last matcher that compiled successfully
func (m *Model) Matcher() *search.Matcher {
	return m.matcher
}

// ToggleView activates the next view, restores it from the snapshot and
// filters it with the current query
func (m *Model) ToggleView() View {
	m.table[m.view] = cloneEntries(m.snapshot[m.view])
	m.view = m.view.Next()
	m.applyFrom(m.snapshot[m.view], m.matcher)

	m.logger.Debug().Str("view", m.view.String()).Msg("View toggled")
	return m.view
}

// ToggleCase flips case sensitivity. The active view is not re-filtered.
func (m *Model) ToggleCase() bool {
	m.state.CaseSensitive = !m.state.CaseSensitive
	return m.state.CaseSensitive
}

// ToggleRegexMode flips between literal and regex matching. The active
// view is not re-filtered.
func (m *Model) ToggleRegexMode() bool {
	m.state.RegexMode = !m.state.RegexMode
	return m.state.RegexMode
}

// AppendQuery extends the query and narrows the active view from its
// current contents
func (m *Model) AppendQuery(s string) error {
	if s == "" {
		return nil
	}
	m.state.Query += s

	if m.stale {
		return m.Search()
	}
	return m.filterFrom(m.table[m.view])
}

// TrimQuery drops the last character of the query, restores the active
// view from the snapshot and filters it again
func (m *Model) TrimQuery() error {
	if m.state.Query == "" {
		return nil
	}
	_, size := utf8.DecodeLastRuneInString(m.state.Query)
	m.state.Query = m.state.Query[:len(m.state.Query)-size]

	return m.Search()
}

// SetQuery replaces the query and filters the active view from the snapshot
func (m *Model) SetQuery(query string) error {
	m.state.Query = query
	return m.Search()
}

// Search filters the active view from the snapshot with the current state
func (m *Model) Search() error {
	return m.filterFrom(m.snapshot[m.view])
}

// filterFrom compiles the current state and filters entries into the
// active view. On an invalid pattern the active view is left untouched.
func (m *Model) filterFrom(entries []string) error {
	matcher, err := search.Compile(m.state)
	if err != nil {
		m.stale = true
		m.searchLog.Debug().Err(err).
			Str("query", m.state.Query).
			Bool("regex", m.state.RegexMode).
			Msg("Pattern did not compile, keeping last results")
		return err
	}

	m.matcher = matcher
	m.stale = false
	m.applyFrom(entries, matcher)
	return nil
}

// FavoriteToggle adds entry to the favorites, or removes it if present.
// The store is written first; memory changes only once it succeeds.
func (m *Model) FavoriteToggle(entry string) error {
	updated, removed := removeAll(m.favorites, entry)
	if !removed {
		updated = append(cloneEntries(m.favorites), entry)
	}

	if err := m.store.WriteList(m.favKey, updated); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}

	m.favorites = updated
	m.snapshot[Favorites] = cloneEntries(updated)
	if m.view == Favorites {
		m.applyFrom(m.snapshot[Favorites], m.matcher)
	} else {
		m.table[Favorites] = cloneEntries(updated)
	}

	m.logger.Debug().Bool("added", !removed).Msg("Favorite toggled")
	return nil
}

// Delete removes every occurrence of entry from the raw history and every
// view, persists the new history (and favorites when they held the entry)
// and reloads the views
func (m *Model) Delete(entry string) error {
	raw, inHistory := removeAll(m.raw, entry)
	favorites, inFavorites := removeAll(m.favorites, entry)
	if !inHistory && !inFavorites {
		return nil
	}

	if inHistory {
		if err := m.src.WriteHistory(raw); err != nil {
			return fmt.Errorf("failed to save history: %w", err)
		}
		m.raw = raw
	}

	var favErr error
	if inFavorites {
		if err := m.store.WriteList(m.favKey, favorites); err != nil {
			favErr = fmt.Errorf("failed to save favorites: %w", err)
		} else {
			m.favorites = favorites
		}
	}

	m.Reload()

	m.logger.Info().
		Bool("history", inHistory).
		Bool("favorites", inFavorites && favErr == nil).
		Msg("Entry deleted")

	return favErr
}

// IsInvalidPattern reports whether err came from a query that failed to compile
func IsInvalidPattern(err error) bool {
	var pe *search.InvalidPatternError
	return errors.As(err, &pe)
}
