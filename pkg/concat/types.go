// Package concat selects files by name pattern and concatenates them into a
// single output file with a marker line before each one.
package concat

import (
	"path/filepath"
)

// DefaultOutput is the output file used when none is requested.
const DefaultOutput = "concatenated.txt"

// RunOptions holds the resolved options for a single run. It is built once
// by the command layer and never modified by the core.
type RunOptions struct {
	Patterns    []string // Selection patterns; empty selects every file in the working directory.
	Output      string   // Destination path; DefaultOutput when empty.
	Interactive bool     // Prompt for a pattern (when none given) and confirm each file.
	Describe    bool     // Add a size description line before each file's content.
	Exclude     []string // Name globs removed from the selection.
}

// OutputTarget is the destination path together with its canonical form.
type OutputTarget struct {
	Path      string // Path as requested.
	Canonical string // Absolute, symlink-resolved form used for self-reference checks.
}

// ResolveOutput computes the OutputTarget for path. It works whether or not
// the path, or any of its parents, exists yet.
func ResolveOutput(path string) (OutputTarget, error) {
	if path == "" {
		path = DefaultOutput
	}
	canonical, err := Canonicalize(path)
	if err != nil {
		return OutputTarget{}, err
	}
	return OutputTarget{Path: path, Canonical: canonical}, nil
}

// FileEntry is a matched file. Path is kept exactly as matched and is what
// appears in the output; Canonical is used only for identity.
type FileEntry struct {
	Path      string
	Canonical string
}

// FileSet is an ordered sequence of unique entries.
type FileSet []FileEntry

// Paths returns the raw paths in order.
func (s FileSet) Paths() []string {
	paths := make([]string, len(s))
	for i, e := range s {
		paths[i] = e.Path
	}
	return paths
}

// Summary reports what a run did.
type Summary struct {
	Matched           int   // Unique files after deduplication, exclusion and self-exclusion.
	Selected          int   // Files left after interactive confirmation.
	Declined          int   // Files declined interactively.
	Written           int   // Files copied into the output.
	SkippedSelf       int   // Entries skipped because they resolve to the output file.
	SkippedUnreadable int   // Entries that could not be read at write time.
	Partial           int   // Entries whose copy stopped on a read error after the START marker.
	Bytes             int64 // Content bytes copied, markers excluded.
}

// Canonicalize returns the absolute, symlink-resolved form of path. When the
// path cannot be resolved (it does not exist yet, or a parent is not a
// directory) its nearest resolvable ancestor is used and the remaining
// components are joined back on.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	parent := filepath.Dir(abs)
	if parent == abs {
		return abs, nil
	}
	resolvedParent, err := Canonicalize(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedParent, filepath.Base(abs)), nil
}
