// Package config loads tolkfmt project settings.
//
// Назначение:
//   - поиск tolkfmt.toml / .tolkfmt.yaml вверх по дереву каталогов;
//   - декодирование и проверка значений.
//
// Не делает:
//   - не знает о флагах CLI, слияние делает cmd/tolkfmt.
//
// Зависимости: BurntSushi/toml, gopkg.in/yaml.v3.
package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Names lists config file names in lookup order within one directory.
var Names = []string{"tolkfmt.toml", ".tolkfmt.yaml", ".tolkfmt.yml"}

// ErrNotFound is returned by Find when no config file exists up to the root.
var ErrNotFound = errors.New("config file not found")

// Config holds the settings of one config file. Nil pointers mean "not set".
type Config struct {
	// Path is the file the values came from; empty for Default.
	Path        string   `toml:"-" yaml:"-"`
	MaxWidth    *int     `toml:"max_width" yaml:"max_width"`
	SortImports *bool    `toml:"sort_imports" yaml:"sort_imports"`
	Jobs        *int     `toml:"jobs" yaml:"jobs"`
	Exclude     []string `toml:"exclude" yaml:"exclude"`
	Cache       *bool    `toml:"cache" yaml:"cache"`
}

// Find walks up from start (a file or directory) and returns the first config path.
func Find(start string) (string, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		for _, name := range Names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load decodes the file at p; the format follows the extension.
func Load(p string) (*Config, error) {
	cfg := &Config{Path: p}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".toml":
		if _, err := toml.DecodeFile(p, cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", p, err)
		}
	case ".yaml", ".yml":
		// #nosec G304 -- path comes from Find or the command line
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%s: failed to parse YAML: %w", p, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config format", p)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return cfg, nil
}

// Discover finds and loads the config nearest to start. A missing file
// yields an empty Config and no error.
func Discover(start string) (*Config, error) {
	p, err := Find(start)
	if errors.Is(err, ErrNotFound) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	return Load(p)
}

func (c *Config) validate() error {
	if c.MaxWidth != nil && *c.MaxWidth <= 0 {
		return fmt.Errorf("max_width must be positive, got %d", *c.MaxWidth)
	}
	if c.Jobs != nil && *c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", *c.Jobs)
	}
	for _, pattern := range c.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// Excluded reports whether rel (relative to the config directory) matches
// an exclude pattern. Patterns are matched against the slash path and
// against every trailing sub-path, so "gen/*.tolk" also hits "a/gen/x.tolk".
func (c *Config) Excluded(rel string) bool {
	if c == nil || len(c.Exclude) == 0 {
		return false
	}
	rel = filepath.ToSlash(rel)
	parts := strings.Split(rel, "/")
	for _, pattern := range c.Exclude {
		for i := range parts {
			if ok, _ := path.Match(pattern, strings.Join(parts[i:], "/")); ok {
				return true
			}
		}
	}
	return false
}

// Dir returns the directory exclude patterns are relative to.
func (c *Config) Dir() string {
	if c == nil || c.Path == "" {
		return "."
	}
	return filepath.Dir(c.Path)
}

// MaxWidthOr returns the configured width or def.
func (c *Config) MaxWidthOr(def int) int {
	if c == nil || c.MaxWidth == nil {
		return def
	}
	return *c.MaxWidth
}

// SortImportsOr returns the configured flag or def.
func (c *Config) SortImportsOr(def bool) bool {
	if c == nil || c.SortImports == nil {
		return def
	}
	return *c.SortImports
}

// JobsOr returns the configured job count or def.
func (c *Config) JobsOr(def int) int {
	if c == nil || c.Jobs == nil {
		return def
	}
	return *c.Jobs
}

// CacheOr returns the configured cache switch or def.
func (c *Config) CacheOr(def bool) bool {
	if c == nil || c.Cache == nil {
		return def
	}
	return *c.Cache
}
