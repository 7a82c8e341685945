package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestGetConfig_FlagPathAndProjectsOverride(t *testing.T) {
	tmpDir := t.TempDir()
	cfgFile := filepath.Join(tmpDir, "config.json")
	data, _ := json.Marshal(map[string]any{
		"projectsDir":     "/from/config",
		"ignoredPackages": []string{"lodash"},
	})
	if err := os.WriteFile(cfgFile, data, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	origConfig, origProjects := configPath, projectsFlag
	defer func() { configPath, projectsFlag = origConfig, origProjects }()
	configPath = cfgFile
	projectsFlag = ""

	cfg, err := getConfig()
	if err != nil {
		t.Fatalf("getConfig failed: %v", err)
	}
	if cfg.ProjectsDir != "/from/config" {
		t.Errorf("ProjectsDir = %q, want /from/config", cfg.ProjectsDir)
	}
	if !cfg.IsIgnored("lodash") {
		t.Error("expected lodash to be ignored")
	}

	// The --projects-dir flag wins over the config value.
	projectsFlag = "/from/flag"
	cfg, err = getConfig()
	if err != nil {
		t.Fatalf("getConfig failed: %v", err)
	}
	if cfg.ProjectsDir != "/from/flag" {
		t.Errorf("ProjectsDir = %q, want /from/flag", cfg.ProjectsDir)
	}
}

func TestFindProject(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "svc")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/svc\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	origConfig, origProjects := configPath, projectsFlag
	defer func() { configPath, projectsFlag = origConfig, origProjects }()
	configPath = filepath.Join(t.TempDir(), "missing.json")
	projectsFlag = root

	cfg, err := getConfig()
	if err != nil {
		t.Fatalf("getConfig failed: %v", err)
	}

	p, err := findProject(cfg, "svc")
	if err != nil {
		t.Fatalf("findProject failed: %v", err)
	}
	if p.Name != "svc" {
		t.Errorf("found wrong project: %+v", p)
	}

	if _, err := findProject(cfg, "nope"); err == nil {
		t.Error("expected an error for an unknown project name")
	}
}
