// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunker splits document text into bounded, ordered passages.
package chunker

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/rag-engine/pkg/types"
)

// DefaultMaxWords is the chunk size used when the config leaves it unset.
const DefaultMaxWords = 500

// sentenceEnd matches sentence boundaries: runs of terminal punctuation
// followed by whitespace.
var sentenceEnd = regexp.MustCompile(`[.!?]+\s+`)

// Chunk splits a document's text into non-overlapping chunks of at most
// maxWords words each, preferring sentence boundaries. A sentence longer
// than maxWords is hard-split at word boundaries so no chunk ever exceeds
// the limit. Positions increase monotonically from zero; empty text
// produces no chunks.
func Chunk(doc types.Document, maxWords int) []types.DocumentChunk {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	var chunks []types.DocumentChunk
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		text := strings.Join(current, " ")
		chunks = append(chunks, types.DocumentChunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Text:       text,
			Position:   len(chunks),
			WordCount:  len(current),
		})
		current = nil
	}

	for _, sentence := range splitSentences(doc.Content) {
		words := strings.Fields(sentence)

		if len(words) > maxWords {
			flush()
			for len(words) > maxWords {
				current = words[:maxWords]
				flush()
				words = words[maxWords:]
			}
			current = words
			continue
		}

		if len(current)+len(words) > maxWords {
			flush()
		}
		current = append(current, words...)
	}
	flush()

	return chunks
}

// splitSentences breaks text on terminal punctuation, keeping the
// punctuation with its sentence. Whitespace-only fragments are dropped.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		// loc[0] is where the punctuation run starts; keep it.
		punctEnd := loc[0]
		for punctEnd < loc[1] && !isSpace(text[punctEnd]) {
			punctEnd++
		}
		if s := strings.TrimSpace(text[start:punctEnd]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
