package parser

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

const defaultWrap = 100

// RenderMarkdown styles content for a terminal of the given width. Rendering
// errors fall back to the raw content.
func RenderMarkdown(content string, width int) string {
	if width <= 0 || width > defaultWrap {
		width = defaultWrap
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return content
	}

	markdown, err := r.Render(content)
	if err != nil {
		return content
	}

	return markdown
}
