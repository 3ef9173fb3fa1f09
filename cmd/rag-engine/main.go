// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rag-engine CLI.
//
// rag-engine builds a searchable knowledge base from local documents and
// answers free-text queries against it. Each lifecycle operation is a
// subcommand: build, status, remove, and query.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rag-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the rag-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "rag-engine",
	Short: "Local document retrieval over a TF-IDF knowledge base",
	Long: `rag-engine builds a searchable knowledge base from the PDF, text, and
Markdown files in a documents directory, and answers free-text queries by
ranking relevant passages with TF-IDF scoring.

Use 'build' to (re)build the model, 'status' to inspect it, 'query' to
search it, and 'remove' to delete it.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rag-engine.yaml or ~/.config/rag-engine/config.yaml)")
	rootCmd.PersistentFlags().String("model-dir", "", "directory holding the model artifacts")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rag-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rag-engine"))
		}
	}

	viper.SetEnvPrefix("RAG_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("loader.data_dir", "data")
	viper.SetDefault("loader.workers", 4)
	viper.SetDefault("chunker.max_chunk_words", 500)
	viper.SetDefault("search.top_k", 3)
	viper.SetDefault("search.confidence_floor", 0.001)
	viper.SetDefault("search.title_term_bonus", 2.0)
	viper.SetDefault("store.model_dir", "agentic")
	viper.SetDefault("output.output_dir", "0_out")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// engineConfig assembles the engine configuration from the config file,
// environment, and defaults. Flags win when set.
func engineConfig(cmd *cobra.Command) types.EngineConfig {
	cfg := types.EngineConfig{
		Loader: types.LoaderConfig{
			DataDir: viper.GetString("loader.data_dir"),
			Workers: viper.GetInt("loader.workers"),
		},
		Chunker: types.ChunkerConfig{
			MaxChunkWords: viper.GetInt("chunker.max_chunk_words"),
		},
		Search: types.SearchConfig{
			TopK:            viper.GetInt("search.top_k"),
			ConfidenceFloor: viper.GetFloat64("search.confidence_floor"),
			TitleTermBonus:  viper.GetFloat64("search.title_term_bonus"),
		},
		Store: types.StoreConfig{
			ModelDir: viper.GetString("store.model_dir"),
		},
		Output: types.OutputConfig{
			OutputDir: viper.GetString("output.output_dir"),
		},
	}

	if v, _ := cmd.Flags().GetString("model-dir"); v != "" {
		cfg.Store.ModelDir = v
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
