package concat

import (
	"strings"
)

// LinePrompter shows a prompt and returns one line of input without its
// line terminator. End of input is reported as an empty answer, not an error.
type LinePrompter interface {
	Prompt(message string) (string, error)
}

// MessageSink receives human-readable status lines.
type MessageSink interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Success(msg string)
}

// IsAffirmative reports whether answer is "y" or "yes", ignoring case and
// surrounding whitespace.
func IsAffirmative(answer string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	return a == "y" || a == "yes"
}

// IsAllSentinel reports whether a pattern answer asks for every file.
func IsAllSentinel(answer string) bool {
	a := strings.TrimSpace(answer)
	return a == "" || strings.EqualFold(a, "all")
}

type discardSink struct{}

func (discardSink) Info(string)    {}
func (discardSink) Warn(string)    {}
func (discardSink) Error(string)   {}
func (discardSink) Success(string) {}
