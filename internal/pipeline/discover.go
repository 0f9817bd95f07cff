// Package pipeline orchestrates FASTA discovery, unit splitting, the
// completion check, per-unit job execution, and batch summary reporting.
package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Recognized FASTA file extensions (lowercase, with leading dot).
var fastaExtensions = map[string]bool{
	".fa":    true,
	".fna":   true,
	".fasta": true,
	".fas":   true,
}

// Discover walks inputDir, collects files with FASTA extensions, applies the
// optional case-insensitive keyword whitelist on the filename, and returns
// the paths sorted lexicographically for deterministic processing order.
// An empty whitelist keeps every FASTA.
func Discover(inputDir string, include []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !fastaExtensions[ext] {
			return nil
		}
		if !matchesKeywords(d.Name(), include) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// matchesKeywords reports whether name contains any whitelist keyword,
// case-insensitively. An empty whitelist matches everything.
func matchesKeywords(name string, include []string) bool {
	if len(include) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, kw := range include {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
