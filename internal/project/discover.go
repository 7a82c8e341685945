package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ignoredDirs are subdirectory names that are never projects themselves.
var ignoredDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
}

// Discover classifies the immediate subdirectories of root and returns the
// recognized projects sorted by name. Hidden and ignored directory names are
// skipped; a subdirectory with no marker file is simply not a project. Only a
// failure to list root itself is an error.
func Discover(root string) ([]*Project, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects directory %s: %w", root, err)
	}

	var projects []*Project
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name[0] == '.' || ignoredDirs[name] {
			continue
		}
		if p := Classify(filepath.Join(root, name)); p != nil {
			projects = append(projects, p)
		}
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Name < projects[j].Name
	})
	return projects, nil
}
