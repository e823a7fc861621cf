// Package config loads and validates the optional .anvil YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/deixis/anvil"
)

// Config holds the parsed .anvil configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version int `yaml:"version"`

	// Log controls diagnostic output for the build driver.
	Log LogConfig `yaml:"log"`

	// Compiler overrides the platform-default C compiler.
	Compiler string `yaml:"compiler"`
	// Flags are appended to every default compile command.
	Flags []string `yaml:"flags"`

	// Targets are the named build targets, in declaration order.
	Targets []Target `yaml:"targets"`
}

// LogConfig controls the driver's logger.
type LogConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error (default: info)
	Color      bool   `yaml:"color"`
	Timestamps bool   `yaml:"timestamps"`
	File       string `yaml:"file"` // optional additional log sink
}

// Target is one buildable artifact.
type Target struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Output string   `yaml:"output"` // default: source name without extension
	Flags  []string `yaml:"flags"`  // override Config.Flags for this target
	// Async places the target in the shared async group instead of
	// waiting for it inline.
	Async bool `yaml:"async"`
}

// Level maps the configured log level name to a logger level,
// falling back to info.
func (c *Config) Level() slog.Level {
	switch c.Log.Level {
	case "debug":
		return anvil.LevelDebug
	case "warn":
		return anvil.LevelWarn
	case "error":
		return anvil.LevelError
	default:
		return anvil.LevelInfo
	}
}

// TargetFlags returns the flags for t, falling back to the global flags.
func (c *Config) TargetFlags(t Target) []string {
	if len(t.Flags) > 0 {
		return t.Flags
	}
	return c.Flags
}

// FindTarget returns the target named name.
func (c *Config) FindTarget(name string) (Target, bool) {
	for _, t := range c.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// Validate rejects configs the pipeline cannot act on.
func (c *Config) Validate() error {
	seen := map[string]bool{}
	for _, t := range c.Targets {
		if t.Name == "" {
			return fmt.Errorf("target with source %q has no name", t.Source)
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate target name %q", t.Name)
		}
		seen[t.Name] = true
		if t.Source == "" {
			return fmt.Errorf("target %q has no source", t.Name)
		}
	}
	return nil
}

// LoadResult holds the parsed config and the discovered project root.
type LoadResult struct {
	Config *Config
	Root   string // directory containing .anvil; falls back to workspace
}

// Load reads the .anvil file for workspace. The project root is
// discovered by walking upward from workspace looking for a .anvil
// file. If none exists, a default Config rooted at workspace is
// returned.
func Load(workspace string) (*LoadResult, error) {
	root, err := findRoot(workspace)
	if err != nil {
		abs, aerr := filepath.Abs(workspace)
		if aerr != nil {
			return nil, aerr
		}
		return &LoadResult{Config: &Config{}, Root: abs}, nil
	}

	data, err := os.ReadFile(filepath.Join(root, ".anvil"))
	if err != nil {
		return nil, fmt.Errorf("reading .anvil: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing .anvil: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid .anvil: %w", err)
	}
	return &LoadResult{Config: cfg, Root: root}, nil
}

// findRoot walks upward from dir looking for a directory containing a
// .anvil file.
func findRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".anvil")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf(".anvil not found")
		}
		dir = parent
	}
}
