// Package config loads the per-user depscout configuration and resolves the
// projects root directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnvProjectsDir overrides the projects root when the config file does not
// set one.
const EnvProjectsDir = "DEPSCOUT_PROJECTS_DIR"

// fallbackDirs are tried relative to the home directory, in order, when
// neither the config file nor the environment names a projects root.
var fallbackDirs = []string{"Projects", "projects", "dev", "code", "src"}

// Config is the on-disk configuration file shape.
type Config struct {
	ProjectsDir     string   `json:"projectsDir,omitempty"`
	IgnoredPackages []string `json:"ignoredPackages,omitempty"`
	AutoUpdate      []string `json:"autoUpdate,omitempty"`
}

// DefaultPath returns ~/.depscout/config.json, creating the directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	dir := filepath.Join(home, ".depscout")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create depscout directory: %w", err)
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file at path. A missing file yields an empty config;
// a malformed file is an error the caller should surface.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// ResolveProjectsDir returns the directory to scan: the config value, then
// the environment variable, then the first existing fallback directory.
func (c *Config) ResolveProjectsDir() (string, error) {
	if c.ProjectsDir != "" {
		return c.ProjectsDir, nil
	}
	if dir := os.Getenv(EnvProjectsDir); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	for _, name := range fallbackDirs {
		dir := filepath.Join(home, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("no projects directory configured; set projectsDir in the config file or %s", EnvProjectsDir)
}

// IsIgnored reports whether a package name is excluded by configuration.
func (c *Config) IsIgnored(name string) bool {
	for _, ignored := range c.IgnoredPackages {
		if ignored == name {
			return true
		}
	}
	return false
}
