package note

import (
	"sort"
	"strings"
)

type SortField int

const (
	ByModified SortField = iota
	ByTitle
)

// Sort returns a sorted copy of notes. Titles compare case-insensitively and
// ties fall back to the id so the order is stable across listings.
func Sort(notes []Note, field SortField, ascending bool) []Note {
	sorted := make([]Note, len(notes))
	copy(sorted, notes)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		var cmp int
		switch field {
		case ByTitle:
			cmp = strings.Compare(strings.ToLower(a.Title()), strings.ToLower(b.Title()))
		default:
			switch {
			case a.Modified.Before(b.Modified):
				cmp = -1
			case a.Modified.After(b.Modified):
				cmp = 1
			}
		}

		if cmp == 0 {
			return a.ID < b.ID
		}
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})

	return sorted
}
