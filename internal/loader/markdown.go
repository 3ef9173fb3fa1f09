// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdownExtractor parses Markdown and returns the document's plain text:
// heading and paragraph text, list items, and code block contents, with
// formatting syntax stripped.
type markdownExtractor struct{}

func (markdownExtractor) Extensions() []string { return []string{".md"} }

func (markdownExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	source := []byte(strings.ToValidUTF8(string(data), "�"))
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var b strings.Builder
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			// Separate block-level nodes so headings and paragraphs do
			// not run together.
			if n.Type() == ast.TypeBlock && b.Len() > 0 {
				b.WriteString("\n")
			}
			return ast.WalkContinue, nil
		}

		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteString("\n")
			}
		case *ast.FencedCodeBlock:
			writeCodeLines(&b, t, source)
		case *ast.CodeBlock:
			writeCodeLines(&b, t, source)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", fmt.Errorf("walking markdown %s: %w", path, err)
	}

	return strings.TrimSpace(b.String()), nil
}

func writeCodeLines(b *strings.Builder, block ast.Node, source []byte) {
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
}
