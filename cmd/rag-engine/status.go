// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rag-engine/internal/rag"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether a model exists and its summary counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := rag.New(engineConfig(cmd))
		return engine.Status(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
