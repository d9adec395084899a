package util

import (
	"strings"

	"github.com/gobwas/glob"
)

// IsPattern reports whether s contains glob metacharacters and should be
// expanded rather than treated as a literal name.
func IsPattern(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// MatchesPattern reports whether s matches the glob pattern. Patterns
// support `*`, `?`, `[seq]`, and `[!seq]`; `*` crosses separators.
// Invalid patterns match nothing.
func MatchesPattern(s, pattern string) bool {
	g, err := glob.Compile(pattern)
	if err != nil {
		return false
	}
	return g.Match(s)
}

// MatchesAny reports whether s matches any of the patterns.
func MatchesAny(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if MatchesPattern(s, pattern) {
			return true
		}
	}
	return false
}

// FilterByPattern returns the items matching the glob pattern or, with
// exclude set, the items that do not match. Input order is preserved.
func FilterByPattern(items []string, pattern string, exclude bool) []string {
	g, err := glob.Compile(pattern)
	if err != nil {
		// An unusable pattern selects nothing and excludes nothing.
		if exclude {
			return append([]string(nil), items...)
		}
		return nil
	}
	var out []string
	for _, item := range items {
		if g.Match(item) != exclude {
			out = append(out, item)
		}
	}
	return out
}
