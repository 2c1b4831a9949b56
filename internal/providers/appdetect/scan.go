package appdetect

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"

	"github.com/contextkit/nativebridge/internal/shared/types"
)

// Scanner walks filesystem roots looking for installed applications. Each
// platform detector supplies its own roots, match patterns, and record
// extractor; the walk itself is shared.
type Scanner struct {
	// Roots to walk. Entries starting with "~/" are expanded against the
	// current user's home directory. Missing roots are skipped.
	Roots []string

	// Patterns are doublestar globs matched against the slash-separated
	// path relative to the root.
	Patterns []string

	// Extract resolves a matched path to an application record. Returning
	// false omits the entry (partially installed, unreadable, no id).
	Extract func(path string, d os.DirEntry) (types.AppRecord, bool)
}

// Scan walks all roots and collects the records of matched entries.
// Unreadable directories and failed extractions are skipped silently; the
// enumeration is best-effort by contract.
func (s *Scanner) Scan() []types.AppRecord {
	var (
		mu      sync.Mutex
		records []types.AppRecord
	)

	conf := fastwalk.Config{Follow: false}

	for _, root := range s.Roots {
		root = expandHome(root)
		if root == "" {
			continue
		}

		// fastwalk runs the callback concurrently; records is guarded.
		_ = fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil // Skip errors
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil || rel == "." {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if !s.matches(rel) {
				return nil
			}

			if rec, ok := s.Extract(path, d); ok && rec.Valid() {
				mu.Lock()
				records = append(records, rec)
				mu.Unlock()
			}

			// A matched directory is an application bundle; don't descend
			// into its internals.
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		})
	}

	return records
}

func (s *Scanner) matches(rel string) bool {
	for _, pattern := range s.Patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
