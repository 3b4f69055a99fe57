package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// PlainText flattens markdown into readable text: markup is dropped, code
// blocks are skipped, and whitespace collapses to single spaces.
func PlainText(content string) string {
	source := []byte(content)
	document := goldmark.DefaultParser().Parse(text.NewReader(source))

	var b strings.Builder
	ast.Walk(
		document,
		func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				if n.Type() == ast.TypeBlock {
					b.WriteByte(' ')
				}
				return ast.WalkContinue, nil
			}

			switch n := n.(type) {
			case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
				return ast.WalkSkipChildren, nil
			case *ast.Text:
				b.Write(n.Segment.Value(source))
				if n.SoftLineBreak() || n.HardLineBreak() {
					b.WriteByte(' ')
				}
			case *ast.String:
				b.Write(n.Value)
			case *ast.AutoLink:
				b.Write(n.URL(source))
			}
			return ast.WalkContinue, nil
		},
	)

	return strings.Join(strings.Fields(b.String()), " ")
}

// Snippet returns at most limit runes of the note's plain text, marking
// truncation with an ellipsis.
func Snippet(content string, limit int) string {
	plain := PlainText(content)
	if limit <= 0 || utf8.RuneCountInString(plain) <= limit {
		return plain
	}

	runes := []rune(plain)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
