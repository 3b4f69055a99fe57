package notes

import (
	"github.com/Paintersrp/colecto/internal/config"
	"github.com/Paintersrp/colecto/internal/note"
)

type sortField int

const (
	sortByModifiedAt sortField = iota
	sortByTitle
)

type sortOrder int

const (
	descending sortOrder = iota
	ascending
)

func (f sortField) String() string {
	if f == sortByTitle {
		return config.SortTitle
	}
	return config.SortModified
}

func (o sortOrder) String() string {
	if o == ascending {
		return config.OrderAsc
	}
	return config.OrderDesc
}

func parseSortField(s string) sortField {
	if s == config.SortTitle {
		return sortByTitle
	}
	return sortByModifiedAt
}

func parseSortOrder(s string) sortOrder {
	if s == config.OrderAsc {
		return ascending
	}
	return descending
}

func sortNotes(notes []note.Note, field sortField, order sortOrder) []note.Note {
	by := note.ByModified
	if field == sortByTitle {
		by = note.ByTitle
	}
	return note.Sort(notes, by, order == ascending)
}
