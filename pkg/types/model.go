// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model and configuration shared across
// the rag-engine stages.
package types

import (
	"fmt"
	"time"
)

// Document is a source file admitted to the knowledge base. Documents are
// created during build, replaced wholesale on rebuild, and deleted on remove.
type Document struct {
	// ID is a unique identifier generated fresh for each build.
	ID string `json:"id" yaml:"id"`

	// Path is the source file path the text was extracted from.
	Path string `json:"path" yaml:"path"`

	// Filename is the display name (base name of Path).
	Filename string `json:"filename" yaml:"filename"`

	// Content is the full extracted text.
	Content string `json:"content" yaml:"content"`

	// ExtractedAt records when extraction ran, in UTC.
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"`
}

// DocumentChunk is a bounded, ordered passage of a document's text. Chunks
// are the unit of indexing and retrieval and are immutable once created.
type DocumentChunk struct {
	// ID is a unique identifier generated fresh for each build.
	ID string `json:"id" yaml:"id"`

	// DocumentID references the owning Document in the same build.
	DocumentID string `json:"document_id" yaml:"document_id"`

	// Text is the chunk's passage text.
	Text string `json:"text" yaml:"text"`

	// Position is the chunk's sequence index within its document,
	// monotonically increasing from zero.
	Position int `json:"position" yaml:"position"`

	// WordCount is the number of whitespace-separated words in Text.
	WordCount int `json:"word_count" yaml:"word_count"`
}

// Posting records one chunk's occurrence data for a term.
type Posting struct {
	// ChunkID identifies the chunk containing the term.
	ChunkID string `json:"chunk_id" yaml:"chunk_id"`

	// Frequency is the term's occurrence count within that chunk.
	Frequency int `json:"frequency" yaml:"frequency"`
}

// WordIndex is the inverted index over the chunk collection. It is derived
// data: always fully recomputable from the chunks and the tokenization rule.
type WordIndex struct {
	// TotalChunks is the number of chunks in the indexed corpus.
	TotalChunks int `json:"total_chunks" yaml:"total_chunks"`

	// DocumentFrequency maps each term to the count of distinct chunks
	// containing it at least once.
	DocumentFrequency map[string]int `json:"document_frequency_by_term" yaml:"document_frequency_by_term"`

	// Postings maps each term to its postings list, ordered by chunk
	// sequence (document order, then position).
	Postings map[string][]Posting `json:"postings" yaml:"postings"`
}

// TermCount returns the vocabulary size.
func (ix WordIndex) TermCount() int {
	return len(ix.Postings)
}

// Model is the complete persisted state of the knowledge base. The three
// collections are created together during build, persisted together, and
// loaded together for query and status.
type Model struct {
	Documents []Document      `json:"documents" yaml:"documents"`
	Chunks    []DocumentChunk `json:"chunks" yaml:"chunks"`
	Index     WordIndex       `json:"index" yaml:"index"`
}

// Validate checks the model's structural invariants: unique chunk IDs,
// chunk-to-document references that resolve, postings that reference known
// chunks, and non-negative statistics. Load uses it to reject corrupt
// artifacts.
func (m *Model) Validate() error {
	docs := make(map[string]bool, len(m.Documents))
	for _, d := range m.Documents {
		if d.ID == "" {
			return fmt.Errorf("document %q has empty id", d.Filename)
		}
		if docs[d.ID] {
			return fmt.Errorf("duplicate document id %s", d.ID)
		}
		docs[d.ID] = true
	}

	chunks := make(map[string]bool, len(m.Chunks))
	for _, c := range m.Chunks {
		if c.ID == "" {
			return fmt.Errorf("chunk at position %d has empty id", c.Position)
		}
		if chunks[c.ID] {
			return fmt.Errorf("duplicate chunk id %s", c.ID)
		}
		chunks[c.ID] = true
		if !docs[c.DocumentID] {
			return fmt.Errorf("chunk %s references unknown document %s", c.ID, c.DocumentID)
		}
		if c.Position < 0 {
			return fmt.Errorf("chunk %s has negative position %d", c.ID, c.Position)
		}
	}

	if m.Index.TotalChunks < 0 {
		return fmt.Errorf("index total_chunks is negative: %d", m.Index.TotalChunks)
	}
	for term, df := range m.Index.DocumentFrequency {
		if df < 0 {
			return fmt.Errorf("term %q has negative document frequency %d", term, df)
		}
	}
	for term, postings := range m.Index.Postings {
		for _, p := range postings {
			if !chunks[p.ChunkID] {
				return fmt.Errorf("term %q posting references unknown chunk %s", term, p.ChunkID)
			}
			if p.Frequency < 0 {
				return fmt.Errorf("term %q has negative frequency %d in chunk %s", term, p.Frequency, p.ChunkID)
			}
		}
	}

	return nil
}

// DocumentByID returns the document with the given ID, or nil.
func (m *Model) DocumentByID(id string) *Document {
	for i := range m.Documents {
		if m.Documents[i].ID == id {
			return &m.Documents[i]
		}
	}
	return nil
}
