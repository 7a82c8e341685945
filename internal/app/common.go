package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/depscout/internal/cache"
	"github.com/blackwell-systems/depscout/internal/config"
	"github.com/blackwell-systems/depscout/internal/project"
	"github.com/blackwell-systems/depscout/internal/runner"
	"github.com/blackwell-systems/depscout/internal/scan"
	"github.com/blackwell-systems/depscout/internal/store"
)

// getConfig loads configuration from the --config flag or the default path.
// The --projects-dir flag overrides whatever the config resolved.
func getConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if projectsFlag != "" {
		cfg.ProjectsDir = projectsFlag
	}
	return cfg, nil
}

// getCache returns the snapshot store at the --cache flag path or the
// default location.
func getCache() (*cache.Store, error) {
	return cache.NewStore(cachePath)
}

// getHistory opens the scan history database, creating the schema if needed.
// The caller owns the returned store and must Close it.
func getHistory() (*store.Store, error) {
	path := dbPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		dir := filepath.Join(home, ".depscout")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create depscout directory: %w", err)
		}
		path = filepath.Join(dir, "depscout.db")
	}

	db, err := store.New(path)
	if err != nil {
		return nil, err
	}
	if err := db.CreateSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// getScanner wires a Scanner from the global flags. The history store is
// returned so the caller can Close it; it is nil when opening the database
// failed (scanning still works, history is just skipped).
func getScanner() (*scan.Scanner, *store.Store, error) {
	cfg, err := getConfig()
	if err != nil {
		return nil, nil, err
	}
	cacheStore, err := getCache()
	if err != nil {
		return nil, nil, err
	}
	history, err := getHistory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "depscout: scan history unavailable: %v\n", err)
		history = nil
	}
	return scan.New(cfg, runner.New(), cacheStore, history), history, nil
}

// findProject discovers projects under the configured root and returns the
// one matching name.
func findProject(cfg *config.Config, name string) (*project.Project, error) {
	root, err := cfg.ResolveProjectsDir()
	if err != nil {
		return nil, err
	}
	projects, err := project.Discover(root)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no project named %q under %s", name, root)
}
