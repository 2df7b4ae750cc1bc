// File: pkg/concat/writer.go
package concat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

// Output format.
const (
	startMarkerFormat = "--- START: %s ---\n"
	descriptionFormat = "Description: %s (size: %d bytes)\n"
	entrySeparator    = "\n"

	// EndMarker closes every output file, whether or not any entry was written.
	EndMarker = "--- END ---\n"
)

// WriteStats counts the outcome of a write pass.
type WriteStats struct {
	Written           int
	SkippedSelf       int
	SkippedUnreadable int
	Partial           int
	Bytes             int64
}

// ConcatWriter owns the output file. All filesystem mutation happens here:
// parent directory creation, creating the output, writing, and removing it
// again on Abort.
type ConcatWriter struct {
	target   OutputTarget
	describe bool
	sink     MessageSink
	logger   *zap.Logger

	file *os.File
	lock *flock.Flock
}

// NewConcatWriter returns a writer for target. Preflight must succeed before
// Write is called.
func NewConcatWriter(target OutputTarget, describe bool, sink MessageSink, logger *zap.Logger) *ConcatWriter {
	if sink == nil {
		sink = discardSink{}
	}
	return &ConcatWriter{
		target:   target,
		describe: describe,
		sink:     sink,
		logger:   orNop(logger),
	}
}

// Preflight fails with ErrOutputConflict if anything already exists at the
// output path, creates missing parent directories, then creates the output
// file exclusively and locks it for the rest of the run.
func (w *ConcatWriter) Preflight() error {
	path := w.target.Path
	if _, err := os.Lstat(path); err == nil {
		return newError(ErrOutputConflict, path, nil, "output %s already exists", path)
	}

	dir := filepath.Dir(path)
	if err := ensureDirectory(dir, w.logger); err != nil {
		return newError(ErrDirectoryCreate, dir, err, "failed to create output directory %s", dir)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return newError(ErrOutputConflict, path, err, "output %s already exists", path)
		}
		return newError(ErrOutputWrite, path, err, "failed to create output %s", path)
	}

	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil || !locked {
		_ = file.Close()
		_ = os.Remove(path)
		return newError(ErrOutputLocked, path, err, "output %s is locked by another process", path)
	}

	w.file = file
	w.lock = lock
	w.logger.Debug("Output prepared", zap.String("path", path), zap.String("canonical", w.target.Canonical))
	return nil
}

// Write truncates the output and streams every entry of set into it, followed
// by EndMarker. Entries that resolve to the output file or cannot be opened
// are skipped and counted. An entry whose read fails midway keeps what was
// copied, is closed with the separator and is counted as Partial. Each entry is flushed as soon as it is complete, so an
// interruption leaves only whole entries behind; the entry being copied when
// the process is killed is best-effort.
func (w *ConcatWriter) Write(ctx context.Context, set FileSet) (WriteStats, error) {
	var stats WriteStats
	if w.file == nil {
		return stats, newError(ErrOutputWrite, w.target.Path, nil, "output %s was not prepared", w.target.Path)
	}
	if err := w.file.Truncate(0); err != nil {
		return stats, newError(ErrOutputWrite, w.target.Path, err, "failed to truncate output %s", w.target.Path)
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return stats, newError(ErrOutputWrite, w.target.Path, err, "failed to rewind output %s", w.target.Path)
	}

	out := bufio.NewWriter(w.file)
	for _, entry := range set {
		if err := ctx.Err(); err != nil {
			return stats, newError(ErrInterrupted, w.target.Path, err, "interrupted after %d files", stats.Written)
		}

		// The output exists now even if it did not at match time.
		if canonical, err := Canonicalize(entry.Path); err == nil && canonical == w.target.Canonical {
			stats.SkippedSelf++
			w.sink.Info(fmt.Sprintf("Skipping %s: it is the output file", entry.Path))
			w.logger.Debug("Skipped self reference", zap.String("path", entry.Path))
			continue
		}

		n, err := w.writeEntry(out, entry.Path)
		if fatal := w.record(&stats, entry.Path, n, err); fatal != nil {
			return stats, fatal
		}
	}

	if _, err := out.WriteString(EndMarker); err != nil {
		return stats, newError(ErrOutputWrite, w.target.Path, err, "failed to write end marker")
	}
	if err := out.Flush(); err != nil {
		return stats, newError(ErrOutputWrite, w.target.Path, err, "failed to flush output")
	}

	w.logger.Info("Output written",
		zap.String("path", w.target.Path),
		zap.Int("written", stats.Written),
		zap.Int("skippedSelf", stats.SkippedSelf),
		zap.Int("skippedUnreadable", stats.SkippedUnreadable),
		zap.Int("partial", stats.Partial),
		zap.Int64("bytes", stats.Bytes))
	return stats, nil
}

// record counts the outcome of one entry. Read failures are reported and
// counted; anything else is returned as fatal.
func (w *ConcatWriter) record(stats *WriteStats, path string, n int64, err error) error {
	switch {
	case err == nil:
		stats.Written++
		stats.Bytes += n
	case IsCode(err, ErrReadPartial):
		stats.Partial++
		stats.Bytes += n
		w.sink.Warn(fmt.Sprintf("%s was only partially copied (%d bytes): %v", path, n, errors.Unwrap(err)))
		w.logger.Warn("Partially copied file", zap.String("path", path), zap.Int64("bytes", n), zap.Error(err))
	case IsCode(err, ErrReadDenied):
		stats.SkippedUnreadable++
		w.sink.Warn(fmt.Sprintf("Skipping %s: %v", path, errors.Unwrap(err)))
		w.logger.Warn("Skipped unreadable file", zap.String("path", path), zap.Error(err))
	default:
		return err
	}
	return nil
}

// writeEntry opens path and appends its block. Failures before anything is
// written are ErrReadDenied; see copyEntry for the rest.
func (w *ConcatWriter) writeEntry(out *bufio.Writer, path string) (int64, error) {
	src, err := os.Open(path)
	if err != nil {
		return 0, newError(ErrReadDenied, path, err, "cannot open %s", path)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return 0, newError(ErrReadDenied, path, err, "cannot stat %s", path)
	}
	if !info.Mode().IsRegular() {
		return 0, newError(ErrReadDenied, path, fmt.Errorf("%s is no longer a regular file", path), "cannot read %s", path)
	}
	return w.copyEntry(out, path, src, info.Size())
}

// copyEntry writes the START marker, the description in describe mode, the
// content of src and the separator, then flushes. A read error after the
// marker is ErrReadPartial and the returned count is what reached the output;
// write errors are ErrOutputWrite.
func (w *ConcatWriter) copyEntry(out *bufio.Writer, path string, src io.Reader, size int64) (int64, error) {
	fmt.Fprintf(out, startMarkerFormat, path)

	dst := &trackingWriter{w: out}
	var n int64
	var err error
	if w.describe {
		fmt.Fprintf(out, descriptionFormat, path, size)
		n, err = io.CopyN(dst, src, size)
		if errors.Is(err, io.EOF) {
			w.logger.Warn("File shrank while copying", zap.String("path", path), zap.Int64("expected", size), zap.Int64("copied", n))
			err = nil
		}
	} else {
		n, err = io.Copy(dst, src)
	}

	if err != nil && dst.err != nil {
		return n, newError(ErrOutputWrite, w.target.Path, err, "failed to write %s into output", path)
	}

	// Close the block even after a read failure so later entries stay intact.
	out.WriteString(entrySeparator)
	if flushErr := out.Flush(); flushErr != nil {
		return n, newError(ErrOutputWrite, w.target.Path, flushErr, "failed to flush output")
	}
	if err != nil {
		return n, newError(ErrReadPartial, path, err, "read of %s failed after %d bytes", path, n)
	}

	w.logger.Debug("Wrote file", zap.String("path", path), zap.Int64("bytes", n))
	return n, nil
}

// Close releases the lock and closes the output, keeping its contents.
func (w *ConcatWriter) Close() error {
	if w.file == nil {
		return nil
	}
	var errs []error
	if err := w.file.Sync(); err != nil {
		errs = append(errs, err)
	}
	if err := w.lock.Unlock(); err != nil {
		errs = append(errs, err)
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, err)
	}
	w.file = nil
	return errors.Join(errs...)
}

// Abort closes the output and removes the file Preflight created.
func (w *ConcatWriter) Abort() error {
	if w.file == nil {
		return nil
	}
	_ = w.lock.Unlock()
	_ = w.file.Close()
	w.file = nil
	if err := os.Remove(w.target.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		w.logger.Error("Failed to remove output", zap.String("path", w.target.Path), zap.Error(err))
		return err
	}
	w.logger.Debug("Removed output", zap.String("path", w.target.Path))
	return nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}

// trackingWriter remembers the last write error so a failed copy can be
// attributed to the destination rather than the source.
type trackingWriter struct {
	w   io.Writer
	err error
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil {
		t.err = err
	}
	return n, err
}
