// Package report renders run status for a human at a terminal and reads
// their answers to prompts.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ColorMode selects when console output is colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a color setting. The empty string means ColorAuto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// Enabled decides, once, whether output to f gets color.
func (m ColorMode) Enabled(f *os.File) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return f != nil && term.IsTerminal(int(f.Fd()))
	}
}

// Config is fixed at startup and never consulted again by the core.
type Config struct {
	Color bool      // Colorize output.
	Out   io.Writer // Info and success lines; os.Stdout when nil.
	Err   io.Writer // Warnings and errors; os.Stderr when nil.
}

// colorScheme keeps one color per message kind.
type colorScheme struct {
	info    *color.Color
	warn    *color.Color
	fail    *color.Color
	success *color.Color
}

func newColorScheme(enabled bool) *colorScheme {
	s := &colorScheme{
		info:    color.New(color.FgCyan),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed, color.Bold),
		success: color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{s.info, s.warn, s.fail, s.success} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// Console is a line-oriented message sink.
type Console struct {
	out    io.Writer
	err    io.Writer
	scheme *colorScheme
}

// NewConsole builds a Console from cfg.
func NewConsole(cfg Config) *Console {
	out, errOut := cfg.Out, cfg.Err
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Console{out: out, err: errOut, scheme: newColorScheme(cfg.Color)}
}

func (c *Console) Info(msg string) {
	fmt.Fprintln(c.out, c.scheme.info.Sprint(msg))
}

func (c *Console) Warn(msg string) {
	fmt.Fprintln(c.err, c.scheme.warn.Sprint("warning: ")+msg)
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.err, c.scheme.fail.Sprint("error: ")+msg)
}

func (c *Console) Success(msg string) {
	fmt.Fprintln(c.out, c.scheme.success.Sprint(msg))
}
