// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"testing"
)

func validModel() Model {
	return Model{
		Documents: []Document{
			{ID: "d1", Path: "data/guide.txt", Filename: "guide.txt"},
		},
		Chunks: []DocumentChunk{
			{ID: "c1", DocumentID: "d1", Text: "the mower", Position: 0, WordCount: 2},
			{ID: "c2", DocumentID: "d1", Text: "cuts grass", Position: 1, WordCount: 2},
		},
		Index: WordIndex{
			TotalChunks:       2,
			DocumentFrequency: map[string]int{"mower": 1, "grass": 1},
			Postings: map[string][]Posting{
				"mower": {{ChunkID: "c1", Frequency: 1}},
				"grass": {{ChunkID: "c2", Frequency: 1}},
			},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Model)
		wantErr string
	}{
		{
			name:   "valid model",
			mutate: func(m *Model) {},
		},
		{
			name:   "empty model",
			mutate: func(m *Model) { *m = Model{} },
		},
		{
			name:    "empty document id",
			mutate:  func(m *Model) { m.Documents[0].ID = "" },
			wantErr: "empty id",
		},
		{
			name: "duplicate document id",
			mutate: func(m *Model) {
				m.Documents = append(m.Documents, Document{ID: "d1", Filename: "dup.txt"})
			},
			wantErr: "duplicate document id",
		},
		{
			name:    "duplicate chunk id",
			mutate:  func(m *Model) { m.Chunks[1].ID = "c1" },
			wantErr: "duplicate chunk id",
		},
		{
			name:    "chunk references unknown document",
			mutate:  func(m *Model) { m.Chunks[0].DocumentID = "ghost" },
			wantErr: "unknown document",
		},
		{
			name:    "negative chunk position",
			mutate:  func(m *Model) { m.Chunks[0].Position = -1 },
			wantErr: "negative position",
		},
		{
			name:    "negative total chunks",
			mutate:  func(m *Model) { m.Index.TotalChunks = -1 },
			wantErr: "total_chunks is negative",
		},
		{
			name:    "negative document frequency",
			mutate:  func(m *Model) { m.Index.DocumentFrequency["mower"] = -3 },
			wantErr: "negative document frequency",
		},
		{
			name: "posting references unknown chunk",
			mutate: func(m *Model) {
				m.Index.Postings["mower"] = []Posting{{ChunkID: "ghost", Frequency: 1}}
			},
			wantErr: "unknown chunk",
		},
		{
			name: "negative posting frequency",
			mutate: func(m *Model) {
				m.Index.Postings["mower"] = []Posting{{ChunkID: "c1", Frequency: -1}}
			},
			wantErr: "negative frequency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validModel()
			tt.mutate(&m)
			err := m.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestDocumentByID(t *testing.T) {
	m := validModel()

	if d := m.DocumentByID("d1"); d == nil || d.Filename != "guide.txt" {
		t.Errorf("DocumentByID(d1) = %+v", d)
	}
	if d := m.DocumentByID("missing"); d != nil {
		t.Errorf("DocumentByID(missing) = %+v, want nil", d)
	}
}

func TestWordIndexTermCount(t *testing.T) {
	m := validModel()
	if got := m.Index.TermCount(); got != 2 {
		t.Errorf("TermCount = %d, want 2", got)
	}
	if got := (WordIndex{}).TermCount(); got != 0 {
		t.Errorf("empty TermCount = %d, want 0", got)
	}
}
