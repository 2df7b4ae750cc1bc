package concat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedPrompter answers prompts from a fixed script; once the script runs
// out it behaves like end of input.
type scriptedPrompter struct {
	answers []string
	prompts []string
	err     error
}

func (p *scriptedPrompter) Prompt(message string) (string, error) {
	p.prompts = append(p.prompts, message)
	if p.err != nil {
		return "", p.err
	}
	if len(p.answers) == 0 {
		return "", nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

type recordingSink struct {
	infos     []string
	warnings  []string
	errors    []string
	successes []string
}

func (s *recordingSink) Info(msg string)    { s.infos = append(s.infos, msg) }
func (s *recordingSink) Warn(msg string)    { s.warnings = append(s.warnings, msg) }
func (s *recordingSink) Error(msg string)   { s.errors = append(s.errors, msg) }
func (s *recordingSink) Success(msg string) { s.successes = append(s.successes, msg) }

// inTempDir switches the test into a fresh working directory.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func writeFiles(t *testing.T, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
		require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
