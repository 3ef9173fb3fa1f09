package types

// LoaderConfig holds settings for document discovery and text extraction.
type LoaderConfig struct {
	// DataDir is the root directory scanned for source documents.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Workers is the number of concurrent extraction workers (default 4).
	Workers int `json:"workers" yaml:"workers"`
}

// ChunkerConfig holds settings for splitting documents into passages.
type ChunkerConfig struct {
	// MaxChunkWords is the maximum number of words per chunk (default 500).
	MaxChunkWords int `json:"max_chunk_words" yaml:"max_chunk_words"`
}

// SearchConfig holds settings for query ranking.
type SearchConfig struct {
	// TopK is the maximum number of results to return (default 3).
	TopK int `json:"top_k" yaml:"top_k"`

	// ConfidenceFloor is the minimum best-candidate score below which a
	// query reports no confident match (default 0.001).
	ConfidenceFloor float64 `json:"confidence_floor" yaml:"confidence_floor"`

	// TitleTermBonus multiplies the contribution of query terms that also
	// appear in the owning document's filename (default 2.0).
	TitleTermBonus float64 `json:"title_term_bonus" yaml:"title_term_bonus"`
}

// StoreConfig holds settings for model persistence.
type StoreConfig struct {
	// ModelDir is the directory holding the persisted model artifacts.
	ModelDir string `json:"model_dir" yaml:"model_dir"`
}

// OutputConfig holds settings for query result files.
type OutputConfig struct {
	// OutputDir is the directory where query answers are written.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// EngineConfig groups all stage configurations.
type EngineConfig struct {
	Loader  LoaderConfig  `json:"loader" yaml:"loader"`
	Chunker ChunkerConfig `json:"chunker" yaml:"chunker"`
	Search  SearchConfig  `json:"search" yaml:"search"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Output  OutputConfig  `json:"output" yaml:"output"`
}
