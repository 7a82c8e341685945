// Package cache persists the periodic scan snapshot to a single JSON file so
// interactive status queries can answer instantly.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blackwell-systems/depscout/internal/project"
)

// Version is the cache file format version.
const Version = 1

// MaxAge is how long a snapshot stays valid. Readers treat an older file as
// absent, which pushes callers onto the fresh-scan path.
const MaxAge = 6 * time.Hour

// Entry is the slim per-project record the scanner persists.
type Entry struct {
	Name      string            `json:"name"`
	Path      string            `json:"path"`
	Ecosystem project.Ecosystem `json:"ecosystem"`
	Framework string            `json:"framework"`
	Outdated  int               `json:"outdated"`
	Major     int               `json:"major"`
	Security  int               `json:"security"`
	Score     int               `json:"score"`
	CheckedAt time.Time         `json:"checkedAt"`
}

// File is the full on-disk snapshot.
type File struct {
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
	Projects  []Entry   `json:"projects"`
}

// Store reads and writes the snapshot at a fixed path. Writers fully replace
// the file; concurrent writers race and last-writer-wins is accepted.
type Store struct {
	Path string
}

// NewStore returns a Store for the given path, or the per-user default when
// path is empty.
func NewStore(path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &Store{Path: path}, nil
}

// DefaultPath returns ~/.depscout/cache.json, creating the directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	dir := filepath.Join(home, ".depscout")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create depscout directory: %w", err)
	}
	return filepath.Join(dir, "cache.json"), nil
}

// Write replaces the snapshot with the given entries.
func (s *Store) Write(entries []Entry) error {
	file := File{
		Version:   Version,
		UpdatedAt: time.Now().UTC(),
		Projects:  entries,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Read returns the snapshot, or (nil, nil) when the file is missing,
// unreadable, or older than MaxAge.
func (s *Store) Read() (*File, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		// A corrupt cache is the same as no cache.
		return nil, nil
	}
	if time.Since(file.UpdatedAt) > MaxAge {
		return nil, nil
	}
	return &file, nil
}

// Replace updates the entry matching e.Name in place and rewrites the whole
// file. Used by the auto-update pass after rescanning a single project; a
// missing or expired cache becomes a one-entry snapshot.
func (s *Store) Replace(e Entry) error {
	file, err := s.Read()
	if err != nil {
		return err
	}

	var entries []Entry
	if file != nil {
		entries = file.Projects
	}

	replaced := false
	for i := range entries {
		if entries[i].Name == e.Name {
			entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, e)
	}

	return s.Write(entries)
}
