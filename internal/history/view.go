package history

import (
	"fmt"
	"strings"
)

// View selects which derived sequence of history is active
type View int

const (
	Ranked View = iota
	Favorites
	Chronological
)

// Views lists every view in cycling order
var Views = []View{Ranked, Favorites, Chronological}

func (v View) String() string {
	switch v {
	case Ranked:
		return "ranked"
	case Favorites:
		return "favorites"
	case Chronological:
		return "chronological"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// Next returns the view that follows v: ranked, favorites, chronological, ranked
func (v View) Next() View {
	return Views[(int(v)+1)%len(Views)]
}

// ParseView maps a view name back to its View
func ParseView(name string) (View, error) {
	for _, v := range Views {
		if strings.EqualFold(name, v.String()) {
			return v, nil
		}
	}
	return Ranked, fmt.Errorf("unknown view %q", name)
}

// ViewTable holds one ordered entry sequence per view
type ViewTable map[View][]string

// Clone returns a deep copy sharing no backing arrays with t
func (t ViewTable) Clone() ViewTable {
	out := make(ViewTable, len(t))
	for v, entries := range t {
		out[v] = cloneEntries(entries)
	}
	return out
}

func cloneEntries(entries []string) []string {
	out := make([]string, len(entries))
	copy(out, entries)
	return out
}

func removeAll(entries []string, entry string) ([]string, bool) {
	out := make([]string, 0, len(entries))
	removed := false
	for _, e := range entries {
		if e == entry {
			removed = true
			continue
		}
		out = append(out, e)
	}
	return out, removed
}

func contains(entries []string, entry string) bool {
	for _, e := range entries {
		if e == entry {
			return true
		}
	}
	return false
}
