package project

import (
	"os"
	"path/filepath"
	"testing"
)

func mkProject(t *testing.T, root, name, marker, content string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	if marker != "" {
		writeFile(t, dir, marker, content)
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	mkProject(t, root, "zeta", "go.mod", "module example.com/zeta\n")
	mkProject(t, root, "alpha", "package.json", `{"name":"alpha"}`)
	mkProject(t, root, "notes", "", "")              // no marker: not a project
	mkProject(t, root, ".hidden", "go.mod", "")      // hidden: skipped
	mkProject(t, root, "node_modules", "go.mod", "") // ignored name: skipped
	writeFile(t, root, "stray.txt", "not a directory")

	projects, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].Name != "alpha" || projects[1].Name != "zeta" {
		t.Errorf("expected name-sorted order [alpha zeta], got [%s %s]",
			projects[0].Name, projects[1].Name)
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected an error for a missing root directory")
	}
}
