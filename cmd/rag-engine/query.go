// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rag-engine/internal/rag"
	"github.com/pdiddy/rag-engine/internal/search"
	"github.com/pdiddy/rag-engine/internal/store"
)

var queryCmd = &cobra.Command{
	Use:   "query <text>...",
	Short: "Search the knowledge base and return ranked passages",
	Long: `Query loads the model and ranks chunks against the given text using
TF-IDF scoring. Results carry the source filename and relevance score.

With --output, the answer payload is also written to a file in the output
directory; the format follows the extension (.json for JSON, YAML
otherwise) and name collisions get an incrementing numeric suffix.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := engineConfig(cmd)

	if v, _ := cmd.Flags().GetInt("top-k"); v > 0 {
		cfg.Search.TopK = v
	}
	if cmd.Flags().Changed("min-score") {
		cfg.Search.ConfidenceFloor, _ = cmd.Flags().GetFloat64("min-score")
	}

	engine := rag.New(cfg)
	answer, err := engine.Query(strings.Join(args, " "))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoModel):
			return fmt.Errorf("no model found: run 'rag-engine build' first")
		case errors.Is(err, search.ErrNoConfidentMatch):
			fmt.Println("No confident match in the knowledge base.")
			return nil
		default:
			return err
		}
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if err := rag.FormatJSON(answer, os.Stdout); err != nil {
			return err
		}
	} else {
		rag.FormatText(answer, os.Stdout)
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		path, err := rag.WriteAnswerFile(answer, cfg.Output.OutputDir, output)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Answer written to %s\n", path)
	}

	return nil
}

func init() {
	queryCmd.Flags().Int("top-k", 0, "maximum results to return (0 = use config default)")
	queryCmd.Flags().Float64("min-score", 0, "confidence floor for the best result")
	queryCmd.Flags().String("output", "", "write the answer to this file in the output directory")
	queryCmd.Flags().Bool("json", false, "print the answer as JSON")

	rootCmd.AddCommand(queryCmd)
}
