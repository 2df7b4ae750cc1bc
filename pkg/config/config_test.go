package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "concatenated.txt", cfg.Output)
	assert.Equal(t, "auto", cfg.Color)
	assert.False(t, cfg.Describe)
	assert.False(t, cfg.Interactive)
	assert.Empty(t, cfg.Exclude)
}

func TestLoadMissingFilesReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "nope.yaml"), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	user := writeConfig(t, dir, "user.yaml", `
output: bundle.txt
describe: true
exclude:
  - "*.log"
color: never
`)
	project := writeConfig(t, dir, "project.yaml", `
describe: false
interactive: true
exclude: ["*.tmp"]
log_file: globcat.log
`)

	cfg, err := Load(user, project)
	require.NoError(t, err)

	assert.Equal(t, "bundle.txt", cfg.Output)
	assert.False(t, cfg.Describe, "an explicit false in a later file wins")
	assert.True(t, cfg.Interactive)
	assert.Equal(t, []string{"*.log", "*.tmp"}, cfg.Exclude)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "globcat.log", cfg.LogFile)
	assert.False(t, cfg.Debug)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "bad.yaml", "output: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadUnreadablePath(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestUserConfigPath(t *testing.T) {
	t.Run("environment override", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/etc/globcat.yaml")
		assert.Equal(t, "/etc/globcat.yaml", UserConfigPath())
	})

	t.Run("xdg location", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		assert.Equal(t, filepath.Join(AppDirName, UserFileName), lastTwo(UserConfigPath()))
	})
}

func lastTwo(path string) string {
	return filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path))
}

func TestLoadDefaultReadsUserAndProjectFiles(t *testing.T) {
	userDir := t.TempDir()
	user := writeConfig(t, userDir, "config.yaml", "output: user.txt\ndescribe: true\nexclude: [\"*.log\"]\n")
	t.Setenv(EnvConfigPath, user)

	project := t.TempDir()
	writeConfig(t, project, ProjectFileName, "output: project.txt\nexclude: [\"*.tmp\"]\n")
	chdir(t, project)

	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, "project.txt", cfg.Output)
	assert.True(t, cfg.Describe)
	assert.Equal(t, []string{"*.log", "*.tmp"}, cfg.Exclude)
}
