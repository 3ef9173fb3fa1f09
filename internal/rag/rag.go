// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rag composes the loader, chunker, indexer, and store into the
// build, status, remove, and query operations of the knowledge base.
package rag

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/rag-engine/internal/chunker"
	"github.com/pdiddy/rag-engine/internal/index"
	"github.com/pdiddy/rag-engine/internal/loader"
	"github.com/pdiddy/rag-engine/internal/search"
	"github.com/pdiddy/rag-engine/internal/store"
	"github.com/pdiddy/rag-engine/pkg/types"
)

// Engine orchestrates the knowledge base lifecycle. It holds no model
// state between operations; query and status load fresh from the store.
type Engine struct {
	cfg    types.EngineConfig
	loader *loader.Loader
	store  *store.Store
}

// New returns an Engine for the given configuration.
func New(cfg types.EngineConfig) *Engine {
	return &Engine{
		cfg:    cfg,
		loader: loader.New(),
		store:  store.NewStore(cfg.Store),
	}
}

// BuildSummary holds counts from a build run.
type BuildSummary struct {
	Documents int
	Chunks    int
	Terms     int
	Failed    int
}

// Build rebuilds the model from the data directory: scan, extract
// (concurrently), chunk, index, save. Individual extraction failures are
// reported and skipped; a persistence failure aborts the build and leaves
// any previous model untouched. The new model only replaces the old one
// once it is durably saved.
func (e *Engine) Build(ctx context.Context, w io.Writer) (BuildSummary, error) {
	paths, err := e.loader.Scan(e.cfg.Loader.DataDir)
	if err != nil {
		return BuildSummary{}, err
	}

	docs, failures := e.loader.ExtractAll(ctx, paths, e.cfg.Loader.Workers, w)
	if err := ctx.Err(); err != nil {
		return BuildSummary{}, err
	}

	maxWords := e.cfg.Chunker.MaxChunkWords
	if maxWords <= 0 {
		maxWords = chunker.DefaultMaxWords
	}

	var chunks []types.DocumentChunk
	for _, doc := range docs {
		chunks = append(chunks, chunker.Chunk(doc, maxWords)...)
	}

	model := &types.Model{
		Documents: docs,
		Chunks:    chunks,
		Index:     index.Build(chunks),
	}

	if err := e.store.Save(model, maxWords); err != nil {
		return BuildSummary{}, fmt.Errorf("saving model: %w", err)
	}

	summary := BuildSummary{
		Documents: len(docs),
		Chunks:    len(chunks),
		Terms:     model.Index.TermCount(),
		Failed:    len(failures),
	}
	fmt.Fprintf(w, "\nBuilt model: %d documents, %d chunks, %d terms",
		summary.Documents, summary.Chunks, summary.Terms)
	if summary.Failed > 0 {
		fmt.Fprintf(w, " (%d files failed extraction)", summary.Failed)
	}
	fmt.Fprintln(w)

	return summary, nil
}

// AnswerResult is one ranked passage with source attribution.
type AnswerResult struct {
	// Rank is the 1-based position in the ranked results.
	Rank int `json:"rank" yaml:"rank"`

	// Filename names the source document the passage came from.
	Filename string `json:"filename" yaml:"filename"`

	// Score is the passage's TF-IDF relevance score.
	Score float64 `json:"score" yaml:"score"`

	// Text is the passage text.
	Text string `json:"text" yaml:"text"`
}

// Answer is the payload of a successful query.
type Answer struct {
	Query   string         `json:"query" yaml:"query"`
	Results []AnswerResult `json:"results" yaml:"results"`
}

// Query loads the persisted model and runs a ranked search. It returns
// store.ErrNoModel when no model exists, search.ErrEmptyQuery for a blank
// query, and search.ErrNoConfidentMatch when the best candidate falls
// below the confidence floor.
func (e *Engine) Query(query string) (Answer, error) {
	model, err := e.store.Load()
	if err != nil {
		return Answer{}, err
	}

	results, err := search.Search(query, model, e.cfg.Search)
	if err != nil {
		return Answer{}, err
	}

	answer := Answer{Query: query}
	for i, r := range results {
		answer.Results = append(answer.Results, AnswerResult{
			Rank:     i + 1,
			Filename: r.Document.Filename,
			Score:    r.Score,
			Text:     r.Chunk.Text,
		})
	}
	return answer, nil
}

// Status prints the model state: summary counts when a model is present,
// or guidance to run build when absent.
func (e *Engine) Status(w io.Writer) error {
	manifest, err := e.store.Status()
	if err != nil {
		if errors.Is(err, store.ErrNoModel) {
			fmt.Fprintln(w, "No model found. Run 'rag-engine build' to create one.")
			return nil
		}
		return err
	}

	fmt.Fprintf(w, "Model ready: %d documents, %d chunks, %d terms\n",
		manifest.DocumentCount, manifest.ChunkCount, manifest.TermCount)
	if !manifest.BuiltAt.IsZero() {
		fmt.Fprintf(w, "Built at: %s\n", manifest.BuiltAt.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

// Remove deletes the persisted model. Removing an absent model is not an
// error.
func (e *Engine) Remove(w io.Writer) error {
	if err := e.store.Remove(); err != nil {
		return err
	}
	fmt.Fprintln(w, "Model removed.")
	return nil
}
