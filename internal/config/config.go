// Package config loads the optional .addbraces.yml project file.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arjunmahishi/addbraces/braces"
)

// FileNames are the project config names searched for, in order.
var FileNames = []string{".addbraces.yml", ".addbraces.yaml"}

var vcsRootMarkers = []string{".git", ".hg", ".svn", ".jj"}

// Config is the project configuration. Zero values mean "not set".
type Config struct {
	Style      string   `yaml:"style"`
	Defines    []string `yaml:"defines"`
	Jobs       int      `yaml:"jobs"`
	MaxBytes   int64    `yaml:"max_bytes"`
	IgnoreDirs []string `yaml:"ignore_dirs"`
	LogLevel   string   `yaml:"log_level"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Load reads and validates the config file at path. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve returns the config named by explicit, or the project config
// found above workDir, or an empty Config when there is none.
func Resolve(ctx context.Context, explicit, workDir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, err := Discover(ctx, workDir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return &Config{}, nil
	}
	return Load(path)
}

// Validate checks values that cannot be caught by the YAML decoder.
func (c *Config) Validate() error {
	if _, err := braces.ParseStyle(c.Style); err != nil {
		return err
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Discover searches upward from startDir for a project config file and
// returns its path, or "" when none is found. The search stops at a VCS
// root, the home directory, or the filesystem root.
func Discover(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, _ := os.UserHomeDir()

	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path, nil
			}
		}

		if isVCSRoot(dir) || (homeDir != "" && dir == homeDir) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
