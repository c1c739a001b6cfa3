// Package config loads mlc settings from mlc.toml, pyproject.toml
// ([tool.mlc]) or .mlc.yaml, with environment overrides on top.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"mlc/internal/diag"
)

const (
	FileName      = "mlc.toml"
	PyProjectName = "pyproject.toml"
	YAMLName      = ".mlc.yaml"
)

//go:embed default.toml
var defaultTemplate string

// Formats lists the accepted values of Config.Format.
var Formats = []string{"pretty", "short", "json", "sarif"}

// Config holds the mlc configuration.
type Config struct {
	Select           []string `toml:"select" yaml:"select,omitempty"`
	Ignore           []string `toml:"ignore" yaml:"ignore,omitempty"`
	Exclude          []string `toml:"exclude" yaml:"exclude,omitempty"`
	Extensions       []string `toml:"extensions" yaml:"extensions,omitempty"`
	Jobs             int      `toml:"jobs" yaml:"jobs,omitempty"`
	MaxDiagnostics   int      `toml:"max_diagnostics" yaml:"max_diagnostics,omitempty"`
	Format           string   `toml:"format" yaml:"format,omitempty"`
	Cache            bool     `toml:"cache" yaml:"cache"`
	RespectGitignore bool     `toml:"respect_gitignore" yaml:"respect_gitignore"`

	// Path is the file the values came from, empty for built-in defaults.
	Path string `toml:"-" yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Exclude:          []string{".venv/**", "build/**", "dist/**"},
		Extensions:       []string{".py", ".pyi"},
		Format:           "pretty",
		Cache:            true,
		RespectGitignore: true,
	}
}

// Root is the directory exclude globs are relative to.
func (c *Config) Root() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// Validate checks field values.
func (c *Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("format must be one of %s, got %q", strings.Join(Formats, ", "), c.Format)
	}
	if c.Jobs < 0 {
		return errors.New("jobs must not be negative")
	}
	if c.MaxDiagnostics < 0 {
		return errors.New("max_diagnostics must not be negative")
	}
	if len(c.Extensions) == 0 {
		return errors.New("extensions must not be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

// LoadFromEnv applies MLC_* environment overrides.
// Variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() error {
	if format := os.Getenv("MLC_FORMAT"); format != "" {
		c.Format = format
	}
	if jobs := os.Getenv("MLC_JOBS"); jobs != "" {
		n, err := strconv.Atoi(jobs)
		if err != nil {
			return fmt.Errorf("MLC_JOBS: %w", err)
		}
		c.Jobs = n
	}
	if cache := os.Getenv("MLC_CACHE"); cache != "" {
		on, err := strconv.ParseBool(cache)
		if err != nil {
			return fmt.Errorf("MLC_CACHE: %w", err)
		}
		c.Cache = on
	}
	return nil
}

// Selector builds the code filter from Select and Ignore.
func (c *Config) Selector() diag.Selector {
	return diag.NewSelector(c.Select, c.Ignore)
}

// HasExtension reports whether path should be checked by extension.
func (c *Config) HasExtension(path string) bool {
	return slices.Contains(c.Extensions, filepath.Ext(path))
}

// Excluded reports whether rel (slash or OS separated, relative to Root)
// matches an exclude glob. Patterns without a slash are tried against
// every path element as well.
func (c *Config) Excluded(rel string) bool {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")
	if rel == "" || rel == "." {
		return false
	}
	for _, pattern := range c.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if strings.Contains(pattern, "/") {
			continue
		}
		for part := range strings.SplitSeq(rel, "/") {
			if ok, err := doublestar.Match(pattern, part); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// Template returns the commented mlc.toml written by `mlc init`.
func Template() string {
	return defaultTemplate
}

// WriteTemplate creates dir/mlc.toml unless it exists and force is false.
func WriteTemplate(dir string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.WriteString(defaultTemplate); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Save writes c to path as TOML or YAML, chosen by extension.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	var data []byte
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		out, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		data = out
	default:
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(c); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		data = []byte(sb.String())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
