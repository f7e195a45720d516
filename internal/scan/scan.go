// Package scan locates candidate vCon files on disk for the lint and
// migrate tooling.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vcon-dev/fake-vcons/vcon"
)

// Candidates walks root recursively and returns the paths of JSON files
// whose top-level shape looks like a vCon in any form. Unreadable files and
// non-vCon JSON are skipped silently, matching scanner behavior: linting
// decides validity, scanning only decides relevance.
func Candidates(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if vcon.IsCandidate(data) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return paths, nil
}
