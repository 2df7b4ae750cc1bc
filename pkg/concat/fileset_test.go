package concat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTarget(t *testing.T, path string) OutputTarget {
	t.Helper()
	target, err := ResolveOutput(path)
	require.NoError(t, err)
	return target
}

func TestFileSetBuilderSortsAndDeduplicates(t *testing.T) {
	inTempDir(t)
	writeFiles(t, map[string]string{"a.txt": "a", "b.txt": "b", "c.txt": "c"})

	set, stats, err := NewFileSetBuilder(mustTarget(t, "out.o"), nil, nil).
		Build([]string{"c.txt", "b.txt"}, []string{"b.txt", "a.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, set.Paths())
	assert.Equal(t, 1, stats.Duplicates)
}

func TestFileSetBuilderIgnoresPatternOrder(t *testing.T) {
	inTempDir(t)
	writeFiles(t, map[string]string{"a.txt": "a", "b.md": "b", "c.txt": "c"})
	builder := NewFileSetBuilder(mustTarget(t, "out.o"), nil, nil)

	txt := []string{"a.txt", "c.txt"}
	md := []string{"b.md"}
	first, _, err := builder.Build(txt, md)
	require.NoError(t, err)
	second, _, err := builder.Build(md, txt)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFileSetBuilderDeduplicatesSymlinks(t *testing.T) {
	inTempDir(t)
	writeFiles(t, map[string]string{"a.txt": "a"})
	require.NoError(t, os.Symlink("a.txt", "link.txt"))

	set, stats, err := NewFileSetBuilder(mustTarget(t, "out.o"), nil, nil).
		Build([]string{"link.txt", "a.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, set.Paths())
	assert.Equal(t, 1, stats.Duplicates)
}

func TestFileSetBuilderExcludesOutput(t *testing.T) {
	inTempDir(t)
	// The target is resolved before the output exists, as in a real run.
	target := mustTarget(t, "out.txt")
	writeFiles(t, map[string]string{"a.txt": "a", "out.txt": ""})

	set, stats, err := NewFileSetBuilder(target, nil, nil).Build([]string{"a.txt", "out.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, set.Paths())
	assert.Equal(t, 1, stats.SelfExcluded)
}

func TestFileSetBuilderExcludesOutputWithDotSegments(t *testing.T) {
	inTempDir(t)
	target := mustTarget(t, filepath.Join("build", "..", "all.txt"))
	writeFiles(t, map[string]string{"all.txt": "", "b.txt": "b"})
	require.NoError(t, os.Mkdir("build", 0o755))

	set, _, err := NewFileSetBuilder(target, nil, nil).Build([]string{"all.txt", "b.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt"}, set.Paths())
}

func TestFileSetBuilderExcludeGlobs(t *testing.T) {
	inTempDir(t)
	writeFiles(t, map[string]string{"a.go": "a", "a_test.go": "t", "sub/b_test.go": "t", "README.md": "r"})

	set, stats, err := NewFileSetBuilder(mustTarget(t, "out.o"), []string{"*_test.go", "", "*.md"}, nil).
		Build([]string{"a.go", "a_test.go", filepath.Join("sub", "b_test.go"), "README.md"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go"}, set.Paths())
	assert.Equal(t, 3, stats.Excluded)
}

func TestFileSetBuilderEmptySelection(t *testing.T) {
	inTempDir(t)

	t.Run("no matches", func(t *testing.T) {
		_, _, err := NewFileSetBuilder(mustTarget(t, "out.o"), nil, nil).Build(nil, []string{})
		require.Error(t, err)
		assert.True(t, IsCode(err, ErrEmptySelection))
	})

	t.Run("only the output matched", func(t *testing.T) {
		writeFiles(t, map[string]string{"out.o": ""})
		_, stats, err := NewFileSetBuilder(mustTarget(t, "out.o"), nil, nil).Build([]string{"out.o"})
		require.Error(t, err)
		assert.True(t, IsCode(err, ErrEmptySelection))
		assert.Equal(t, 1, stats.SelfExcluded)
	})
}

func TestCanonicalize(t *testing.T) {
	dir := inTempDir(t)
	root, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	writeFiles(t, map[string]string{"real/file.txt": "x"})
	require.NoError(t, os.Symlink("real", "alias"))

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "existing file", path: "real/file.txt", want: filepath.Join(root, "real", "file.txt")},
		{name: "through symlink", path: "alias/file.txt", want: filepath.Join(root, "real", "file.txt")},
		{name: "missing file", path: "alias/new.txt", want: filepath.Join(root, "real", "new.txt")},
		{name: "missing parents", path: "x/y/z.txt", want: filepath.Join(root, "x", "y", "z.txt")},
		{name: "dot segments", path: "real/../real/file.txt", want: filepath.Join(root, "real", "file.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
