// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the knowledge base model and reports its status.
//
// A model is a directory of three independently-readable artifacts —
// documents.json, chunks.json, word_index.json — plus a manifest.yaml
// summary. Saves are staged in a sibling directory and swapped in by
// rename, so a failed save never damages the previous model and a
// concurrent load never sees a mix of old and new artifacts. The swap is
// two renames, not one atomic exchange, so a load racing a save can
// transiently observe ErrNoModel between them.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rag-engine/pkg/types"
)

const (
	documentsFile = "documents.json"
	chunksFile    = "chunks.json"
	indexFile     = "word_index.json"
	manifestFile  = "manifest.yaml"
)

// ErrNoModel reports that no persisted model exists at the configured
// location.
var ErrNoModel = errors.New("no model found")

// ErrCorruptModel reports persisted artifacts that are present but
// structurally invalid. There is no repair path; the remedy is a rebuild.
var ErrCorruptModel = errors.New("model is corrupt")

// Manifest summarizes a saved model.
type Manifest struct {
	// DocumentCount is the number of documents in the model.
	DocumentCount int `yaml:"document_count"`

	// ChunkCount is the number of chunks in the model.
	ChunkCount int `yaml:"chunk_count"`

	// TermCount is the vocabulary size of the inverted index.
	TermCount int `yaml:"term_count"`

	// BuiltAt records when the model was built, in UTC.
	BuiltAt time.Time `yaml:"built_at"`

	// MaxChunkWords is the chunk size the model was built with.
	MaxChunkWords int `yaml:"max_chunk_words"`
}

// Store manages the persisted model directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at cfg.ModelDir.
func NewStore(cfg types.StoreConfig) *Store {
	return &Store{dir: cfg.ModelDir}
}

// Save persists the model atomically. The artifact set is written to a
// staging directory first; only after every artifact is durably written is
// the staging directory swapped into place. On any failure the previous
// model is left untouched.
func (s *Store) Save(m *types.Model, maxChunkWords int) error {
	staging := s.dir + ".staging"
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("clearing staging directory: %w", err)
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := writeJSON(filepath.Join(staging, documentsFile), m.Documents); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(staging, chunksFile), m.Chunks); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(staging, indexFile), m.Index); err != nil {
		return err
	}

	manifest := Manifest{
		DocumentCount: len(m.Documents),
		ChunkCount:    len(m.Chunks),
		TermCount:     m.Index.TermCount(),
		BuiltAt:       time.Now().UTC(),
		MaxChunkWords: maxChunkWords,
	}
	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(staging, manifestFile), data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	return s.swap(staging)
}

// swap replaces the current model directory with the staged one. The old
// model is moved aside first and restored if the swap fails.
func (s *Store) swap(staging string) error {
	old := s.dir + ".old"
	if err := os.RemoveAll(old); err != nil {
		return fmt.Errorf("clearing old model: %w", err)
	}

	hadModel := true
	if err := os.Rename(s.dir, old); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("moving previous model aside: %w", err)
		}
		hadModel = false
	}

	if err := os.Rename(staging, s.dir); err != nil {
		err = fmt.Errorf("activating new model: %w", err)
		if hadModel {
			if rerr := os.Rename(old, s.dir); rerr != nil {
				err = fmt.Errorf("%w (previous model stranded at %s: %v)", err, old, rerr)
			}
		}
		return err
	}

	if hadModel {
		os.RemoveAll(old)
	}
	return nil
}

// Load reads and validates the persisted model. It returns ErrNoModel if
// the artifacts are absent and ErrCorruptModel if they are present but
// cannot be decoded or fail integrity checks.
func (s *Store) Load() (*types.Model, error) {
	if _, err := os.Stat(s.dir); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoModel
		}
		return nil, fmt.Errorf("checking model directory: %w", err)
	}

	var m types.Model
	if err := readJSON(filepath.Join(s.dir, documentsFile), &m.Documents); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(s.dir, chunksFile), &m.Chunks); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(s.dir, indexFile), &m.Index); err != nil {
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	return &m, nil
}

// Status reports summary counts for the persisted model without loading
// the full collections when a manifest is available. Models saved by older
// versions without a manifest fall back to a full load.
func (s *Store) Status() (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, manifestFile))
	if err == nil {
		var manifest Manifest
		if err := yaml.Unmarshal(data, &manifest); err != nil {
			return Manifest{}, fmt.Errorf("%w: manifest: %v", ErrCorruptModel, err)
		}
		return manifest, nil
	}
	if !os.IsNotExist(err) {
		return Manifest{}, fmt.Errorf("reading manifest: %w", err)
	}

	m, err := s.Load()
	if err != nil {
		return Manifest{}, err
	}
	return Manifest{
		DocumentCount: len(m.Documents),
		ChunkCount:    len(m.Chunks),
		TermCount:     m.Index.TermCount(),
	}, nil
}

// Remove deletes all persisted artifacts, including any leftover staging
// state. Removing an absent model is not an error.
func (s *Store) Remove() error {
	for _, dir := range []string{s.dir, s.dir + ".staging", s.dir + ".old"} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return nil
}

// writeJSON writes v to path as indented JSON.
func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	return nil
}

// readJSON decodes path into v. A missing artifact means no model; a
// malformed one means corruption.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoModel
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptModel, filepath.Base(path), err)
	}
	return nil
}
