package report

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompterReadsLines(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(context.Background(), strings.NewReader("y\r\n*.go\nlast"), &out)

	for _, want := range []string{"y", "*.go", "last", ""} {
		got, err := p.Prompt("? ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.True(t, strings.HasPrefix(out.String(), "? ? ? "))
}

func TestPrompterCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPrompter(ctx, strings.NewReader("y\n"), io.Discard).Prompt("? ")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrompterCancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r, w := io.Pipe()
	defer w.Close()

	p := NewPrompter(ctx, r, io.Discard)
	done := make(chan error, 1)
	go func() {
		_, err := p.Prompt("? ")
		done <- err
	}()
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestPrompterReadError(t *testing.T) {
	_, err := NewPrompter(context.Background(), failingReader{}, io.Discard).Prompt("? ")
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
