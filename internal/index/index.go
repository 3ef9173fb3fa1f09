// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index tokenizes chunks and builds the inverted index with
// term and chunk statistics. The index is a pure function of the chunk
// collection and the tokenization rule; rebuilding always replaces it.
package index

import (
	"strings"
	"unicode"

	"github.com/pdiddy/rag-engine/pkg/types"
)

// Tokenize normalizes text into terms: lowercase, non-alphanumeric runes
// stripped from each whitespace-separated token, empty tokens discarded.
// Indexing and querying share this rule.
func Tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		var b strings.Builder
		for _, r := range f {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			terms = append(terms, b.String())
		}
	}
	return terms
}

// TermFrequencies counts term occurrences within a single chunk's text.
func TermFrequencies(text string) map[string]int {
	freq := make(map[string]int)
	for _, term := range Tokenize(text) {
		freq[term]++
	}
	return freq
}

// Build constructs the inverted index over the chunk collection. Per-chunk
// term counts are merged in chunk order (document order, then position), so
// postings lists come out ordered by chunk sequence and two builds over
// identical chunks yield an identical index. Document frequency is the
// number of distinct chunks containing a term.
func Build(chunks []types.DocumentChunk) types.WordIndex {
	ix := types.WordIndex{
		TotalChunks:       len(chunks),
		DocumentFrequency: make(map[string]int),
		Postings:          make(map[string][]types.Posting),
	}

	for _, chunk := range chunks {
		for term, freq := range TermFrequencies(chunk.Text) {
			ix.Postings[term] = append(ix.Postings[term], types.Posting{
				ChunkID:   chunk.ID,
				Frequency: freq,
			})
			ix.DocumentFrequency[term]++
		}
	}

	return ix
}
