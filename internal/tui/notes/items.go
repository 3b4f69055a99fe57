package notes

import (
	"github.com/Paintersrp/colecto/internal/note"
	"github.com/Paintersrp/colecto/internal/parser"
)

const snippetLength = 60

type ListItem struct {
	note     note.Note
	snippet  string
	selected bool
}

func newListItem(n note.Note, selected bool) ListItem {
	return ListItem{
		note:     n,
		snippet:  parser.Snippet(n.Content, snippetLength),
		selected: selected,
	}
}

func (i ListItem) Title() string {
	if i.selected {
		return "● " + i.note.Title()
	}
	return i.note.Title()
}

func (i ListItem) Description() string {
	description := i.note.Modified.Format("Jan 02 15:04")
	if i.snippet != "" {
		description += " · " + i.snippet
	}
	return description
}

// FilterValue covers both the title and the full body so the search box
// matches content too.
func (i ListItem) FilterValue() string {
	return i.note.Title() + "\n" + i.note.Content
}
