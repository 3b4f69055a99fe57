package fzf

import (
	"errors"
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/colecto/internal/note"
	"github.com/Paintersrp/colecto/internal/parser"
)

// ErrNoSelection is returned when the user aborts the finder.
var ErrNoSelection = errors.New("no note selected")

// FuzzyFinder picks a note from an already listed folder.
type FuzzyFinder struct {
	Header string
	notes  []note.Note
	find   findFunc
}

type findFunc func(
	slice interface{},
	itemFunc func(i int) string,
	opts ...fuzzyfinder.Option,
) (int, error)

func NewFuzzyFinder(notes []note.Note, header string) *FuzzyFinder {
	return &FuzzyFinder{Header: header, notes: notes, find: fuzzyfinder.Find}
}

// Run returns the id of the chosen note.
func (f *FuzzyFinder) Run(query string) (string, error) {
	if len(f.notes) == 0 {
		return "", fmt.Errorf("folder has no notes")
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderMarkdownPreview),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := f.find(f.notes, f.label, options...)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return "", ErrNoSelection
	}
	if err != nil {
		return "", fmt.Errorf("error selecting note: %w", err)
	}

	return f.notes[idx].ID, nil
}

func (f *FuzzyFinder) label(i int) string {
	n := f.notes[i]
	return fmt.Sprintf("%s  [%s]", n.Title(), n.Modified.Format("2006-01-02 15:04"))
}

func (f *FuzzyFinder) renderMarkdownPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}
	return parser.RenderMarkdown(f.notes[i].Content, w)
}
