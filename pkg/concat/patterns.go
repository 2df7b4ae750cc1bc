// File: pkg/concat/patterns.go
package concat

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DefaultGlob is the name glob used when a pattern has no name component.
const DefaultGlob = "*"

// Pattern is a parsed selection pattern: a literal directory and a name glob
// matched against the direct children of that directory.
type Pattern struct {
	Dir  string // Directory component; "." when the pattern has none.
	Glob string // Name component; DefaultGlob when the pattern has none.

	raw string
}

// ParsePattern splits s into its directory and name-glob parts.
// "src/*.go" -> ("src", "*.go"), "*.md" -> (".", "*.md"), "docs/" -> ("docs", "*").
func ParsePattern(s string) Pattern {
	dir, glob := ".", DefaultGlob
	switch {
	case s == "":
	case strings.HasSuffix(s, "/") || strings.HasSuffix(s, string(filepath.Separator)):
		dir = filepath.Clean(s)
	default:
		dir = filepath.Dir(s)
		glob = filepath.Base(s)
	}
	return Pattern{Dir: dir, Glob: glob, raw: s}
}

// String returns the pattern as it was supplied.
func (p Pattern) String() string {
	return p.raw
}

// MatchName reports whether a bare file name matches the pattern's glob.
// The directory component never takes part in matching.
func (p Pattern) MatchName(name string) bool {
	return matchGlob(p.Glob, name)
}

// matchGlob matches name against glob byte by byte. '*' matches any run of
// characters, '?' exactly one character (one byte for invalid UTF-8), and
// every other byte only itself. A failed literal after a '*' backtracks by
// letting the star absorb one more character.
func matchGlob(glob, name string) bool {
	g, n := 0, 0
	star, starName := -1, 0
	for n < len(name) {
		if g < len(glob) {
			switch c := glob[g]; {
			case c == '*':
				star, starName = g, n
				g++
				continue
			case c == '?':
				_, width := utf8.DecodeRuneInString(name[n:])
				g++
				n += width
				continue
			case c == name[n]:
				g++
				n++
				continue
			}
		}
		if star < 0 {
			return false
		}
		_, width := utf8.DecodeRuneInString(name[starName:])
		starName += width
		g, n = star+1, starName
	}
	for g < len(glob) && glob[g] == '*' {
		g++
	}
	return g == len(glob)
}

// compileExcludes parses exclude globs; they are always name-only.
func compileExcludes(globs []string) []Pattern {
	patterns := make([]Pattern, 0, len(globs))
	for _, g := range globs {
		if g == "" {
			continue
		}
		patterns = append(patterns, Pattern{Dir: ".", Glob: g, raw: g})
	}
	return patterns
}

func matchesAny(patterns []Pattern, name string) (Pattern, bool) {
	for _, p := range patterns {
		if p.MatchName(name) {
			return p, true
		}
	}
	return Pattern{}, false
}
