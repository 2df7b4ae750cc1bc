// File: pkg/concat/matcher.go
package concat

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// MatchPattern returns the regular files directly inside p.Dir whose names
// match p's glob. Subdirectories are never descended into. A missing or
// unreadable directory yields no paths and a coded error the caller should
// surface as a warning.
func MatchPattern(p Pattern, logger *zap.Logger) ([]string, error) {
	logger = orNop(logger)
	logger.Debug("Matching pattern", zap.String("pattern", p.String()), zap.String("dir", p.Dir), zap.String("glob", p.Glob))

	entries, err := os.ReadDir(p.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ErrPatternDirMissing, p.Dir, err, "directory %q of pattern %q does not exist", p.Dir, p.String())
		}
		return nil, newError(ErrPatternDirUnreadable, p.Dir, err, "cannot read directory %q of pattern %q", p.Dir, p.String())
	}

	var paths []string
	for _, entry := range entries {
		if !p.MatchName(entry.Name()) {
			continue
		}
		path := filepath.Join(p.Dir, entry.Name())
		if !isRegularEntry(path, entry) {
			logger.Debug("Skipping non-regular entry", zap.String("path", path))
			continue
		}
		paths = append(paths, path)
	}

	logger.Debug("Pattern matched", zap.String("pattern", p.String()), zap.Int("count", len(paths)))
	return paths, nil
}

// ListAll returns every regular file directly inside the working directory.
// It is the "no patterns" path and does not go through glob matching.
func ListAll(logger *zap.Logger) ([]string, error) {
	logger = orNop(logger)

	entries, err := os.ReadDir(".")
	if err != nil {
		return nil, newError(ErrPatternDirUnreadable, ".", err, "cannot read working directory")
	}

	var paths []string
	for _, entry := range entries {
		if isRegularEntry(entry.Name(), entry) {
			paths = append(paths, entry.Name())
		}
	}
	logger.Debug("Listed working directory", zap.Int("count", len(paths)))
	return paths, nil
}

// isRegularEntry reports whether entry is a regular file. Symlinks count
// when their target is one.
func isRegularEntry(path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
