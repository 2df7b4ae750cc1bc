// File: pkg/concat/fileset.go
package concat

import (
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// BuildStats counts what FileSetBuilder dropped.
type BuildStats struct {
	Duplicates   int
	Excluded     int
	SelfExcluded int
}

// FileSetBuilder turns per-pattern match results into a FileSet.
type FileSetBuilder struct {
	output   OutputTarget
	excludes []Pattern
	logger   *zap.Logger
}

// NewFileSetBuilder returns a builder that drops output's canonical path and
// any file whose name matches one of the exclude globs.
func NewFileSetBuilder(output OutputTarget, exclude []string, logger *zap.Logger) *FileSetBuilder {
	return &FileSetBuilder{
		output:   output,
		excludes: compileExcludes(exclude),
		logger:   orNop(logger),
	}
}

// Build flattens groups, sorts by raw path and keeps the first occurrence of
// each canonical path. The result does not depend on the order of groups.
// An empty result fails with ErrEmptySelection.
func (b *FileSetBuilder) Build(groups ...[]string) (FileSet, BuildStats, error) {
	var stats BuildStats

	var all []string
	for _, g := range groups {
		all = append(all, g...)
	}
	sort.Strings(all)

	seen := make(map[string]bool, len(all))
	set := make(FileSet, 0, len(all))
	for _, path := range all {
		canonical, err := Canonicalize(path)
		if err != nil {
			// Identity falls back to the cleaned absolute path; readability is
			// re-checked when writing.
			b.logger.Warn("Failed to canonicalize path", zap.String("path", path), zap.Error(err))
			if canonical, err = filepath.Abs(path); err != nil {
				canonical = filepath.Clean(path)
			}
		}

		if seen[canonical] {
			stats.Duplicates++
			b.logger.Debug("Dropping duplicate", zap.String("path", path), zap.String("canonical", canonical))
			continue
		}
		seen[canonical] = true

		if canonical == b.output.Canonical {
			stats.SelfExcluded++
			b.logger.Debug("Dropping output file from selection", zap.String("path", path))
			continue
		}
		if p, ok := matchesAny(b.excludes, filepath.Base(path)); ok {
			stats.Excluded++
			b.logger.Debug("Dropping excluded file", zap.String("path", path), zap.String("exclude", p.String()))
			continue
		}

		set = append(set, FileEntry{Path: path, Canonical: canonical})
	}

	if len(set) == 0 {
		return nil, stats, newError(ErrEmptySelection, "", nil, "no files matched")
	}
	b.logger.Debug("Built file set",
		zap.Int("files", len(set)),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("excluded", stats.Excluded),
		zap.Int("selfExcluded", stats.SelfExcluded))
	return set, stats, nil
}
