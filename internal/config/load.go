package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrNoTable is returned when a pyproject.toml has no [tool.mlc] table.
var ErrNoTable = errors.New("missing [tool.mlc]")

type pyproject struct {
	Tool struct {
		Mlc Config `toml:"mlc"`
	} `toml:"tool"`
}

// Discover walks up from startDir and returns the first config file found.
// Per directory the order is mlc.toml, pyproject.toml with [tool.mlc],
// .mlc.yaml. A pyproject.toml without the table is skipped.
func Discover(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		for _, name := range []string{FileName, PyProjectName, YAMLName} {
			candidate := filepath.Join(dir, name)
			ok, err := exists(candidate)
			if err != nil {
				return "", false, err
			}
			if !ok {
				continue
			}
			if name == PyProjectName {
				defined, err := pyprojectHasTable(candidate)
				if err != nil {
					return "", false, err
				}
				if !defined {
					continue
				}
			}
			return candidate, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func exists(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return true, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	return false, nil
}

func pyprojectHasTable(path string) (bool, error) {
	var doc map[string]any
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return false, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return meta.IsDefined("tool", "mlc"), nil
}

// Load reads the configuration from path. Fields the file leaves out keep
// their Default values.
func Load(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch {
	case filepath.Base(path) == PyProjectName:
		cfg, err = loadPyProject(path)
	case filepath.Ext(path) == ".yaml" || filepath.Ext(path) == ".yml":
		cfg, err = loadYAML(path)
	default:
		cfg, err = loadTOML(path)
	}
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func loadTOML(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

func loadPyProject(path string) (*Config, error) {
	var doc pyproject
	doc.Tool.Mlc = *Default()
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("tool", "mlc") {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTable)
	}
	cfg := doc.Tool.Mlc
	return &cfg, nil
}

func loadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse config file: %w", path, err)
	}
	return cfg, nil
}

// Resolve picks the configuration for a run: explicit wins, otherwise the
// nearest discovered file above startDir, otherwise Default. Environment
// overrides are applied last.
func Resolve(startDir, explicit string) (*Config, error) {
	var cfg *Config
	switch {
	case explicit != "":
		loaded, err := Load(explicit)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		path, ok, err := Discover(startDir)
		if err != nil {
			return nil, err
		}
		if ok {
			loaded, err := Load(path)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		} else {
			cfg = Default()
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
