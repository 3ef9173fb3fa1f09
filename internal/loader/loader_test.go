// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// --- test helpers ---

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// --- scan tests ---

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", []byte("text"))
	writeFile(t, dir, "a.md", []byte("# md"))
	writeFile(t, dir, "c.PDF", []byte("%PDF"))
	writeFile(t, dir, "ignored.jpg", []byte{0xff, 0xd8})
	writeFile(t, dir, "ignored.docx", []byte("zip"))
	writeFile(t, dir, filepath.Join("nested", "d.txt"), []byte("nested text"))

	paths, err := New().Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "c.PDF"),
		filepath.Join(dir, "nested", "d.txt"),
	}
	if len(paths) != len(want) {
		t.Fatalf("got %d paths %v, want %d", len(paths), paths, len(want))
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := New().Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

// --- extraction tests ---

func TestExtractText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "note.txt", []byte("The recycler mower is a lawn tool"))

	doc, err := New().Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if doc.Content != "The recycler mower is a lawn tool" {
		t.Errorf("Content = %q", doc.Content)
	}
	if doc.Filename != "note.txt" {
		t.Errorf("Filename = %q, want note.txt", doc.Filename)
	}
	if doc.ID == "" {
		t.Error("ID is empty")
	}
	if doc.ExtractedAt.IsZero() {
		t.Error("ExtractedAt is zero")
	}
}

func TestExtractTextReplacesInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.txt", []byte{'h', 'i', 0xff, 0xfe, '!'})

	doc, err := New().Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(doc.Content, "hi") || !strings.Contains(doc.Content, "!") {
		t.Errorf("valid bytes lost: %q", doc.Content)
	}
	if !strings.Contains(doc.Content, "\uFFFD") {
		t.Errorf("invalid bytes not replaced: %q", doc.Content)
	}
}

func TestExtractMarkdownStripsFormatting(t *testing.T) {
	dir := t.TempDir()
	content := "# The Mower Manual\n\nSome *important* text about blades.\n\n```\nblade height: 22\n```\n"
	path := writeFile(t, dir, "manual.md", []byte(content))

	doc, err := New().Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for _, want := range []string{"The Mower Manual", "Some important text about blades.", "blade height: 22"} {
		if !strings.Contains(doc.Content, want) {
			t.Errorf("Content missing %q:\n%s", want, doc.Content)
		}
	}
	for _, unwanted := range []string{"#", "*", "```"} {
		if strings.Contains(doc.Content, unwanted) {
			t.Errorf("Content retains markdown syntax %q:\n%s", unwanted, doc.Content)
		}
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "image.png", []byte{0x89, 'P', 'N', 'G'})

	_, err := New().Extract(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtractPDF(t *testing.T) {
	dir := t.TempDir()
	pageJSON := `{
		"pages": {
			"1": {
				"content": {
					"text": [
						{
							"value": "recycler mower manual",
							"pos": [72, 700],
							"font": {"name": "Helvetica", "size": 12}
						}
					]
				}
			}
		}
	}`
	jsonPath := writeFile(t, dir, "manual.json", []byte(pageJSON))
	pdfPath := filepath.Join(dir, "manual.pdf")
	if err := api.CreateFile("", jsonPath, pdfPath, model.NewDefaultConfiguration()); err != nil {
		t.Fatalf("creating test PDF: %v", err)
	}

	doc, err := New().Extract(pdfPath)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(doc.Content, "recycler mower manual") {
		t.Errorf("PDF text lost, Content = %q", doc.Content)
	}
}

func TestContentPageNumber(t *testing.T) {
	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"manual_Content_page_1.txt", 1, true},
		{"manual_Content_page_12.txt", 12, true},
		{"my_doc_Content_page_3.txt", 3, true},
		{"manual_Content_page_.txt", 0, false},
		{"manual_Content_page_0.txt", 0, false},
		{"page_1.txt", 0, false},
		{"manual.txt", 0, false},
	}

	for _, tt := range tests {
		got, ok := contentPageNumber(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("contentPageNumber(%q) = %d, %v; want %d, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestContentStreamText(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "plain text-show operands",
			stream: "BT /F1 12 Tf (Hello) Tj (World) Tj ET",
			want:   "Hello World ",
		},
		{
			name:   "escaped parentheses",
			stream: `(a\(b\)c) Tj`,
			want:   "a(b)c ",
		},
		{
			name:   "escaped newline becomes space",
			stream: `(line one\nline two) Tj`,
			want:   "line one line two ",
		},
		{
			name:   "no strings",
			stream: "q 1 0 0 1 0 0 cm Q",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contentStreamText([]byte(tt.stream)); got != tt.want {
				t.Errorf("contentStreamText(%q) = %q, want %q", tt.stream, got, tt.want)
			}
		})
	}
}

// --- batch tests ---

func TestExtractAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", []byte("second document text"))
	writeFile(t, dir, "a.txt", []byte("first document text"))
	// Claims to be a PDF but is not; extraction fails and the batch
	// continues.
	writeFile(t, dir, "broken.pdf", []byte("not a real pdf"))

	l := New()
	paths, err := l.Scan(dir)
	if err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	docs, failures := l.ExtractAll(context.Background(), paths, 4, &buf)

	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2; output:\n%s", len(docs), buf.String())
	}
	if docs[0].Filename != "a.txt" || docs[1].Filename != "b.txt" {
		t.Errorf("documents not sorted by path: %s, %s", docs[0].Filename, docs[1].Filename)
	}
	if len(failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(failures))
	}
	if filepath.Base(failures[0].Path) != "broken.pdf" {
		t.Errorf("failure path = %s", failures[0].Path)
	}
	if !strings.Contains(buf.String(), "failed") {
		t.Errorf("failure not reported in output:\n%s", buf.String())
	}
}

func TestExtractAllDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"e.txt", "a.txt", "c.txt", "b.txt", "d.txt"} {
		paths = append(paths, writeFile(t, dir, name, []byte("content of "+name)))
	}

	l := New()
	var buf strings.Builder
	docs, failures := l.ExtractAll(context.Background(), paths, 3, &buf)

	if len(failures) != 0 {
		t.Fatalf("failures: %v", failures)
	}
	for i := 1; i < len(docs); i++ {
		if docs[i-1].Path >= docs[i].Path {
			t.Errorf("documents out of order: %s before %s", docs[i-1].Path, docs[i].Path)
		}
	}
}

func TestExtractAllCancelled(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 20; i++ {
		paths = append(paths, writeFile(t, dir, filepath.Join("f", "doc"+string(rune('a'+i))+".txt"), []byte("text")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf strings.Builder
	docs, _ := New().ExtractAll(ctx, paths, 2, &buf)

	// A cancelled context stops feeding work; at most the in-flight
	// documents come back.
	if len(docs) == len(paths) {
		t.Errorf("cancelled batch still processed all %d files", len(paths))
	}
}
