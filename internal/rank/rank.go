// Package rank orders raw shell history into the "most used first" sequence
// shown by the ranked view.
package rank

import "sort"

// score describes one distinct command within a history slice
type score struct {
	entry string
	count int
}

// Rank deduplicates entries and orders them by occurrence count (descending).
// Entries with the same count keep the order in which they first appeared,
// so ranking an already ranked slice returns it unchanged.
func Rank(entries []string) []string {
	if len(entries) == 0 {
		return []string{}
	}

	index := make(map[string]int, len(entries))
	scores := make([]score, 0, len(entries))

	for _, entry := range entries {
		if i, ok := index[entry]; ok {
			scores[i].count++
			continue
		}
		index[entry] = len(scores)
		scores = append(scores, score{entry: entry, count: 1})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].count > scores[j].count
	})

	ranked := make([]string, len(scores))
	for i, s := range scores {
		ranked[i] = s.entry
	}
	return ranked
}

// Unique returns entries with duplicates removed, keeping the first occurrence
// of each command in its original position.
func Unique(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	unique := make([]string, 0, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		unique = append(unique, entry)
	}
	return unique
}
