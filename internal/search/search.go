// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search ranks document chunks against a free-text query using
// TF-IDF scoring over the inverted index.
package search

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/pdiddy/rag-engine/internal/index"
	"github.com/pdiddy/rag-engine/pkg/types"
)

// ErrEmptyQuery reports a query that tokenizes to no terms.
var ErrEmptyQuery = errors.New("query is empty")

// ErrNoConfidentMatch reports that the best candidate scored below the
// confidence floor. It is a successful query outcome carrying a negative
// answer, not a failure to search.
var ErrNoConfidentMatch = errors.New("no confident match in the knowledge base")

const (
	defaultTopK  = 3
	defaultBonus = 2.0
)

// Result pairs a matching chunk with its owning document and score.
type Result struct {
	Chunk    types.DocumentChunk `json:"chunk" yaml:"chunk"`
	Document types.Document      `json:"-" yaml:"-"`
	Score    float64             `json:"score" yaml:"score"`
}

// Search tokenizes the query with the indexing rule, scores every chunk
// containing at least one query term, and returns the top results ordered
// by score. Chunks matching no term are excluded, not scored as zero.
//
// Score(chunk) = Σ over query terms t of TF(t, chunk) × IDF(t), with
// IDF(t) = ln((1+N)/(1+df(t))) + 1. The smoothing keeps IDF positive even
// for terms present in every chunk. A term that also appears in the owning
// document's filename has its contribution multiplied by the configured
// title-term bonus.
//
// Ties are broken by document order in the corpus and then chunk position,
// so results are deterministic. If the best score is below the confidence
// floor, Search returns ErrNoConfidentMatch.
func Search(query string, m *types.Model, cfg types.SearchConfig) ([]Result, error) {
	terms := index.Tokenize(query)
	if len(terms) == 0 {
		return nil, ErrEmptyQuery
	}

	topK := cfg.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	bonus := cfg.TitleTermBonus
	if bonus <= 0 {
		bonus = defaultBonus
	}

	chunks := make(map[string]*types.DocumentChunk, len(m.Chunks))
	docOrder := make(map[string]int, len(m.Documents))
	for i := range m.Chunks {
		chunks[m.Chunks[i].ID] = &m.Chunks[i]
	}
	for i := range m.Documents {
		docOrder[m.Documents[i].ID] = i
	}

	// Terms of each document's filename, for the title bonus.
	titleTerms := make(map[string]map[string]bool, len(m.Documents))
	for _, d := range m.Documents {
		titleTerms[d.ID] = filenameTerms(d.Filename)
	}

	total := float64(m.Index.TotalChunks)
	scores := make(map[string]float64)

	for _, term := range terms {
		postings, ok := m.Index.Postings[term]
		if !ok {
			continue
		}
		df := float64(m.Index.DocumentFrequency[term])
		idf := math.Log((1+total)/(1+df)) + 1

		for _, p := range postings {
			chunk, ok := chunks[p.ChunkID]
			if !ok {
				continue
			}
			contribution := float64(p.Frequency) * idf
			if titleTerms[chunk.DocumentID][term] {
				contribution *= bonus
			}
			scores[p.ChunkID] += contribution
		}
	}

	if len(scores) == 0 {
		return nil, ErrNoConfidentMatch
	}

	results := make([]Result, 0, len(scores))
	for chunkID, score := range scores {
		chunk := chunks[chunkID]
		var doc types.Document
		if d := m.DocumentByID(chunk.DocumentID); d != nil {
			doc = *d
		}
		results = append(results, Result{Chunk: *chunk, Document: doc, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		oi, oj := docOrder[results[i].Chunk.DocumentID], docOrder[results[j].Chunk.DocumentID]
		if oi != oj {
			return oi < oj
		}
		return results[i].Chunk.Position < results[j].Chunk.Position
	})

	if results[0].Score < cfg.ConfidenceFloor {
		return nil, ErrNoConfidentMatch
	}

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// filenameTerms extracts the lowercase terms of a filename. Unlike body
// text, filenames separate words with punctuation ("mower-manual.txt"),
// so any non-alphanumeric rune is a boundary.
func filenameTerms(name string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
