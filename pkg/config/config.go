// Package config loads globcat settings from YAML files.
//
// Settings are layered: built-in defaults, then the user file
// ($XDG_CONFIG_HOME/globcat/config.yaml, or the file named by GLOBCAT_CONFIG),
// then .globcat.yaml in the working directory. Command-line flags are applied
// on top by the caller. Missing files are skipped.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"globcat/pkg/concat"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	// AppDirName is the directory under the XDG config home.
	AppDirName = "globcat"
	// UserFileName is the file name inside AppDirName.
	UserFileName = "config.yaml"
	// ProjectFileName is read from the working directory.
	ProjectFileName = ".globcat.yaml"
	// EnvConfigPath overrides the user config location.
	EnvConfigPath = "GLOBCAT_CONFIG"
)

// Config holds the settings a run can take from files.
type Config struct {
	Output      string   `yaml:"output"`
	Describe    bool     `yaml:"describe"`
	Interactive bool     `yaml:"interactive"`
	Exclude     []string `yaml:"exclude"`
	Color       string   `yaml:"color"`
	LogFile     string   `yaml:"log_file"`
	Debug       bool     `yaml:"debug"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Output: concat.DefaultOutput,
		Color:  "auto",
	}
}

// fileConfig uses pointers so an explicit false or "" in a file still
// overrides an earlier layer.
type fileConfig struct {
	Output      *string  `yaml:"output"`
	Describe    *bool    `yaml:"describe"`
	Interactive *bool    `yaml:"interactive"`
	Exclude     []string `yaml:"exclude"`
	Color       *string  `yaml:"color"`
	LogFile     *string  `yaml:"log_file"`
	Debug       *bool    `yaml:"debug"`
}

// UserConfigPath returns the user-level config file location.
func UserConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, AppDirName, UserFileName)
}

// Load returns Default() merged with each existing file in paths, in order.
// Exclude lists accumulate across files; every other key is replaced.
func Load(paths ...string) (*Config, error) {
	cfg := Default()
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadDefault loads the user file and the project file.
func LoadDefault() (*Config, error) {
	return Load(UserConfigPath(), ProjectFileName)
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.Output != nil {
		c.Output = *fc.Output
	}
	if fc.Describe != nil {
		c.Describe = *fc.Describe
	}
	if fc.Interactive != nil {
		c.Interactive = *fc.Interactive
	}
	c.Exclude = append(c.Exclude, fc.Exclude...)
	if fc.Color != nil {
		c.Color = *fc.Color
	}
	if fc.LogFile != nil {
		c.LogFile = *fc.LogFile
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	return nil
}
