// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rag-engine/internal/rag"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the knowledge base model from the documents directory",
	Long: `Build scans the documents directory for PDF, text, and Markdown files,
extracts their text, splits it into chunks, builds a TF-IDF inverted index,
and saves the model. Any previous model is replaced atomically: it stays
intact until the new model is durably saved.

Individual files that fail extraction are reported and skipped; they do not
abort the build.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := engineConfig(cmd)

	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.Loader.DataDir = v
	}
	if v, _ := cmd.Flags().GetInt("max-chunk-words"); v > 0 {
		cfg.Chunker.MaxChunkWords = v
	}
	if v, _ := cmd.Flags().GetInt("workers"); v > 0 {
		cfg.Loader.Workers = v
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	engine := rag.New(cfg)
	_, err := engine.Build(ctx, os.Stdout)
	return err
}

func init() {
	buildCmd.Flags().String("data-dir", "", "directory containing the source documents")
	buildCmd.Flags().Int("max-chunk-words", 0, "maximum words per chunk (0 = use config default)")
	buildCmd.Flags().Int("workers", 0, "concurrent extraction workers (0 = use config default)")

	rootCmd.AddCommand(buildCmd)
}
