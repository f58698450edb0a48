// Package preview derives short plain-text excerpts from markdown summaries
// for note list views.
package preview

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DefaultLength is the excerpt length used in note list previews.
const DefaultLength = 150

// Fallback is shown when a note has no summary to excerpt.
const Fallback = "No summary available"

var parser = goldmark.New()

// PlainText strips markdown formatting and returns the readable text content,
// with block boundaries collapsed to single spaces.
func PlainText(markdown string) string {
	if strings.TrimSpace(markdown) == "" {
		return ""
	}

	source := []byte(markdown)
	doc := parser.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.Paragraph, *ast.Heading, *ast.ListItem:
			if b.Len() > 0 && !strings.HasSuffix(b.String(), " ") {
				b.WriteByte(' ')
			}
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				b.Write(line.Value(source))
				b.WriteByte(' ')
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(b.String()), " ")
}

// Excerpt returns the first max runes of the summary's plain text, or
// Fallback when the summary is empty.
func Excerpt(summary string, max int) string {
	plain := PlainText(summary)
	if plain == "" {
		return Fallback
	}
	if utf8.RuneCountInString(plain) <= max {
		return plain
	}
	return string([]rune(plain)[:max])
}
