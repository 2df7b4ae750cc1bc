package concat

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// FilterSelection asks once per entry whether to include it and returns the
// accepted entries in their original order, plus the number declined.
// Declining everything returns an empty set and no error.
func FilterSelection(set FileSet, prompter LinePrompter, logger *zap.Logger) (FileSet, int, error) {
	logger = orNop(logger)

	kept := make(FileSet, 0, len(set))
	declined := 0
	for _, entry := range set {
		answer, err := prompter.Prompt(fmt.Sprintf("Include %s? [y/N]: ", entry.Path))
		if err != nil {
			return nil, declined, promptError(err, entry.Path, "failed to read answer for "+entry.Path)
		}
		if IsAffirmative(answer) {
			kept = append(kept, entry)
			continue
		}
		declined++
		logger.Debug("File declined", zap.String("path", entry.Path), zap.String("answer", answer))
	}
	return kept, declined, nil
}

// promptError classifies a prompt failure; a cancelled context means the
// user interrupted the run.
func promptError(err error, path, msg string) *Error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return newError(ErrInterrupted, path, err, "%s", msg)
	}
	return newError(ErrPromptFailed, path, err, "%s", msg)
}
