// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rag

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxSuffix bounds the collision-suffix search so a pathological directory
// cannot loop forever.
const maxSuffix = 10000

// WriteAnswerFile writes the answer to dir/name, choosing the format by
// extension (.json for JSON, anything else YAML). On a name collision an
// incrementing numeric suffix is appended before the extension. Files are
// created with O_EXCL so concurrent invocations cannot race each other
// onto the same target; the loser of a race simply moves to the next
// suffix. The chosen path is returned.
func WriteAnswerFile(answer Answer, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if ext == "" {
		ext = ".yaml"
	}

	for i := 0; i < maxSuffix; i++ {
		candidate := base + ext
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
		}
		path := filepath.Join(dir, candidate)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				continue
			}
			return "", fmt.Errorf("creating %s: %w", path, err)
		}

		var writeErr error
		if ext == ".json" {
			writeErr = FormatJSON(answer, f)
		} else {
			writeErr = FormatYAML(answer, f)
		}
		if closeErr := f.Close(); writeErr == nil {
			writeErr = closeErr
		}
		if writeErr != nil {
			os.Remove(path)
			return "", fmt.Errorf("writing %s: %w", path, writeErr)
		}
		return path, nil
	}

	return "", fmt.Errorf("no free output filename for %s in %s", name, dir)
}
