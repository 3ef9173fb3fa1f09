// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rag

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"
)

// FormatText writes the answer as ranked passages with source attribution.
func FormatText(answer Answer, w io.Writer) {
	if len(answer.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	for _, r := range answer.Results {
		fmt.Fprintf(w, "%d. %s (relevance: %.4f)\n", r.Rank, r.Filename, r.Score)
		fmt.Fprintf(w, "   %s\n\n", strings.TrimSpace(r.Text))
	}

	fmt.Fprintln(w, "Sources used:")
	for _, r := range answer.Results {
		fmt.Fprintf(w, "  %d. %s (relevance: %.4f)\n", r.Rank, r.Filename, r.Score)
	}
}

// FormatJSON writes the answer as indented JSON.
func FormatJSON(answer Answer, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(answer)
}

// FormatYAML writes the answer as YAML.
func FormatYAML(answer Answer, w io.Writer) error {
	data, err := yaml.Marshal(&answer)
	if err != nil {
		return fmt.Errorf("marshaling answer: %w", err)
	}
	_, err = w.Write(data)
	return err
}
