package report

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter reads one line of input per prompt.
type Prompter struct {
	ctx    context.Context
	out    io.Writer
	reader *bufio.Reader
}

// NewPrompter writes prompts to out and reads answers from in. The same
// reader is kept across prompts so buffered input is not lost. A pending
// prompt returns ctx.Err() once ctx is done.
func NewPrompter(ctx context.Context, in io.Reader, out io.Writer) *Prompter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Prompter{ctx: ctx, out: out, reader: bufio.NewReader(in)}
}

type readResult struct {
	line string
	err  error
}

// Prompt displays message and returns the next input line without its line
// terminator. At end of input it returns whatever was read, possibly "".
func (p *Prompter) Prompt(message string) (string, error) {
	if err := p.ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, message)

	// The read cannot be interrupted; it is abandoned on cancellation.
	done := make(chan readResult, 1)
	go func() {
		line, err := p.reader.ReadString('\n')
		done <- readResult{line: line, err: err}
	}()

	var r readResult
	select {
	case <-p.ctx.Done():
		fmt.Fprintln(p.out)
		return "", p.ctx.Err()
	case r = <-done:
	}

	if r.err != nil && !errors.Is(r.err, io.EOF) {
		return "", r.err
	}
	if errors.Is(r.err, io.EOF) {
		fmt.Fprintln(p.out)
	}
	return strings.TrimRight(r.line, "\r\n"), nil
}
