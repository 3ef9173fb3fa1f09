// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"fmt"
	"os"
	"strings"
)

// textExtractor reads plain-text files. Invalid UTF-8 byte sequences are
// replaced with U+FFFD rather than skipped, so byte offsets of the
// surrounding text survive.
type textExtractor struct{}

func (textExtractor) Extensions() []string { return []string{".txt"} }

func (textExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}
