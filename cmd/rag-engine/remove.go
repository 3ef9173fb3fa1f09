// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rag-engine/internal/rag"
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Delete the persisted model",
	Long: `Remove deletes all persisted model artifacts. Removing an already-absent
model is not an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := rag.New(engineConfig(cmd))
		return engine.Remove(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
