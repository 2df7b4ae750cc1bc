// File: pkg/concat/errors.go
package concat

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of failure so callers and tests can match on
// it without comparing messages.
type ErrorCode string

const (
	// Fatal conditions.
	ErrOutputConflict  ErrorCode = "OUTPUT_CONFLICT"
	ErrDirectoryCreate ErrorCode = "DIR_CREATE_FAILED"
	ErrEmptySelection  ErrorCode = "EMPTY_SELECTION"
	ErrOutputLocked    ErrorCode = "OUTPUT_LOCKED"
	ErrOutputWrite     ErrorCode = "OUTPUT_WRITE"
	ErrPromptFailed    ErrorCode = "PROMPT_FAILED"
	ErrInterrupted     ErrorCode = "INTERRUPTED"

	// Per-item conditions, logged and counted.
	ErrReadDenied           ErrorCode = "READ_DENIED"
	ErrReadPartial          ErrorCode = "READ_PARTIAL"
	ErrPatternDirMissing    ErrorCode = "PATTERN_DIR_MISSING"
	ErrPatternDirUnreadable ErrorCode = "PATTERN_DIR_UNREADABLE"
)

// Error is a coded error carrying the path it concerns.
type Error struct {
	Code    ErrorCode
	Message string
	Path    string
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func newError(code ErrorCode, path string, wrapped error, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
		Wrapped: wrapped,
	}
}

// IsCode reports whether err, or anything it wraps, is an *Error with code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
