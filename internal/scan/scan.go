// Package scan lists candidate document files in a directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Directory returns the paths of regular files directly under dir whose
// extension matches ext (leading dot optional, case-insensitive). The
// listing is not recursive. Results are sorted lexicographically so the
// first document — the divisor of the score normalization downstream — is
// stable across runs and filesystems.
func Directory(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}
	want := normalizeExt(ext)
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if normalizeExt(filepath.Ext(e.Name())) != want {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
