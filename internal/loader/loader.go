// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package loader discovers source documents and extracts their text.
// Each supported format (PDF, plain text, Markdown) is handled by an
// Extractor; adding a format means registering a new Extractor, not
// touching the chunker or indexer.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/rag-engine/pkg/types"
)

// ErrUnsupportedFormat reports a file whose extension no Extractor claims.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extractor recovers plain text from one document format.
type Extractor interface {
	// Extensions returns the lowercase file extensions this extractor
	// handles, including the leading dot.
	Extensions() []string

	// Extract reads the file at path and returns its text content.
	Extract(path string) (string, error)
}

// Loader scans a directory tree and extracts text from supported files.
type Loader struct {
	extractors map[string]Extractor
}

// New returns a Loader with the built-in extractors registered.
func New() *Loader {
	l := &Loader{extractors: make(map[string]Extractor)}
	l.Register(&textExtractor{})
	l.Register(&markdownExtractor{})
	l.Register(&pdfExtractor{})
	return l
}

// Register adds an extractor for each extension it claims. Later
// registrations win on conflict.
func (l *Loader) Register(e Extractor) {
	for _, ext := range e.Extensions() {
		l.extractors[strings.ToLower(ext)] = e
	}
}

// Scan walks root and returns the paths of all supported files in
// deterministic (sorted) order. Files with unsupported extensions are
// silently excluded.
func (l *Loader) Scan(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := l.extractors[strings.ToLower(filepath.Ext(path))]; ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Extract produces a Document from a single file. The document ID is
// generated fresh; ExtractedAt is set to the current UTC time.
func (l *Loader) Extract(path string) (types.Document, error) {
	e, ok := l.extractors[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return types.Document{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	content, err := e.Extract(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("extracting %s: %w", path, err)
	}

	return types.Document{
		ID:          uuid.New().String(),
		Path:        path,
		Filename:    filepath.Base(path),
		Content:     content,
		ExtractedAt: time.Now().UTC(),
	}, nil
}

// ExtractError records a single file's extraction failure.
type ExtractError struct {
	Path string
	Err  error
}

func (e ExtractError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ExtractAll extracts every path using a bounded pool of workers. A single
// file's failure does not abort the batch: failures are collected and the
// file is excluded from the returned corpus. Documents come back sorted by
// path so concurrency never changes the output order. Per-file status is
// printed to w.
func (l *Loader) ExtractAll(ctx context.Context, paths []string, workers int, w io.Writer) ([]types.Document, []ExtractError) {
	if workers <= 0 {
		workers = 4
	}

	type outcome struct {
		doc types.Document
		err *ExtractError
	}

	jobs := make(chan string)
	results := make(chan outcome, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				doc, err := l.Extract(path)
				if err != nil {
					results <- outcome{err: &ExtractError{Path: path, Err: err}}
					continue
				}
				results <- outcome{doc: doc}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range paths {
			select {
			case <-ctx.Done():
				return
			case jobs <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var docs []types.Document
	var failures []ExtractError
	for out := range results {
		if out.err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", out.err.Path, out.err.Err)
			failures = append(failures, *out.err)
			continue
		}
		fmt.Fprintf(w, "loaded  %s\n", out.doc.Path)
		docs = append(docs, out.doc)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	sort.Slice(failures, func(i, j int) bool { return failures[i].Path < failures[j].Path })
	return docs, failures
}
