package patterns

import (
	"path/filepath"
	"strings"
)

// MatchPath reports whether path matches any of the globs. A glob may be
// matched against the whole path, and a leading "**/" also matches against
// the base name so "**/.env" catches .env in any directory. Malformed globs
// never match.
func MatchPath(path string, globs []string) bool {
	for _, g := range globs {
		if matched, err := filepath.Match(g, path); err == nil && matched {
			return true
		}
		if rest, ok := strings.CutPrefix(g, "**/"); ok {
			if matched, err := filepath.Match(rest, filepath.Base(path)); err == nil && matched {
				return true
			}
		}
	}
	return false
}
