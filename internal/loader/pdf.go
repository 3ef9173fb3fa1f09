// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfExtractor recovers text from PDF files using pdfcpu. Extraction is
// best-effort: pdfcpu exposes page content streams rather than laid-out
// text, so the extractor pulls the string operands of text-show operators
// from each page, in page order.
type pdfExtractor struct{}

func (pdfExtractor) Extensions() []string { return []string{".pdf"} }

func (pdfExtractor) Extract(path string) (string, error) {
	conf := model.NewDefaultConfiguration()

	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return "", fmt.Errorf("reading PDF: %w", err)
	}
	pageCount := pdfCtx.PageCount

	outDir, err := os.MkdirTemp("", "rag-engine-pdf-")
	if err != nil {
		return "", fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	if err := api.ExtractContentFile(path, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("extracting PDF content: %w", err)
	}

	pageTexts := make(map[int]string)
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("reading extracted content: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		pageNum, ok := contentPageNumber(entry.Name())
		if !ok {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			continue
		}
		pageTexts[pageNum] = contentStreamText(raw)
	}

	var b strings.Builder
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		text := strings.TrimSpace(pageTexts[pageNum])
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(text)
	}

	return b.String(), nil
}

// contentPageNumber parses the page number from an extracted content
// filename. pdfcpu names these files "<stem>_Content_page_<N>.txt", where
// stem is the source PDF's base name.
func contentPageNumber(name string) (int, bool) {
	name = strings.TrimSuffix(name, ".txt")
	const marker = "_Content_page_"
	i := strings.LastIndex(name, marker)
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(name[i+len(marker):])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// contentStreamText pulls the parenthesized string literals out of a PDF
// content stream. These are the operands of Tj/TJ text-show operators;
// everything else in the stream is positioning and graphics operators.
func contentStreamText(stream []byte) string {
	var b strings.Builder
	depth := 0
	escaped := false

	for i := 0; i < len(stream); i++ {
		c := stream[i]

		if depth == 0 {
			if c == '(' {
				depth = 1
			}
			continue
		}

		if escaped {
			switch c {
			case 'n', 'r', 't':
				b.WriteByte(' ')
			case '(', ')', '\\':
				b.WriteByte(c)
			}
			escaped = false
			continue
		}

		switch c {
		case '\\':
			escaped = true
		case '(':
			depth++
			b.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}

	return strings.ToValidUTF8(b.String(), "")
}
