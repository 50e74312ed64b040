// Package config provides the persisted gitly configuration: which
// repository holds the redirect log, which branch tracks it, and which
// remote it syncs with.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file is absent or partial.
const (
	DefaultBranch   = "main"
	DefaultRemote   = "origin"
	DefaultPagesDir = "public"
)

// Config holds the store location. It is constructed once per invocation
// and passed into the store explicitly; nothing reads it from global state.
type Config struct {
	// Repository is the filesystem path of the redirect repository.
	Repository string `yaml:"repository"`
	// Branch is the tracked branch carrying record commits.
	Branch string `yaml:"branch"`
	// Remote is the named remote used by sync.
	Remote string `yaml:"remote"`
	// PagesDir is the output directory for published redirect pages.
	PagesDir string `yaml:"pages_dir,omitempty"`
}

// Dir returns the gitly configuration directory.
//
// Resolution:
//   - $GITLY_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/gitly if set (respects XDG on any platform)
//   - %AppData%/gitly on Windows
//   - ~/.config/gitly on macOS and Linux
func Dir() string {
	if dir := os.Getenv("GITLY_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitly")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "gitly")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gitly")
}

// Path returns the location of the config file.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file at path. A missing file is not an error: it
// yields the defaults with the current directory as the repository.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config file, creating the directory if needed.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// applyDefaults fills empty fields.
func (c *Config) applyDefaults() {
	if c.Repository == "" {
		c.Repository = "."
	}
	if c.Branch == "" {
		c.Branch = DefaultBranch
	}
	if c.Remote == "" {
		c.Remote = DefaultRemote
	}
	if c.PagesDir == "" {
		c.PagesDir = DefaultPagesDir
	}
}
