package scan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/depscout/internal/cache"
	"github.com/blackwell-systems/depscout/internal/config"
	"github.com/blackwell-systems/depscout/internal/project"
	"github.com/blackwell-systems/depscout/internal/store"
)

type fakeRunner struct {
	binaries map[string]bool
	outputs  map[string]string
}

func (f *fakeRunner) Run(dir, command string) (string, error) {
	for prefix, out := range f.outputs {
		if strings.HasPrefix(command, prefix) {
			return out, nil
		}
	}
	return "", nil
}

func (f *fakeRunner) LookPath(name string) bool {
	return f.binaries[name]
}

func writeProject(t *testing.T, root, name, marker, content string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, marker), []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestRun_ScansAndPersists(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "gosvc", "go.mod", "module example.com/gosvc\n")
	writeProject(t, root, "web", "package.json", `{"name":"web"}`)

	history, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	defer history.Close()
	if err := history.CreateSchema(); err != nil {
		t.Fatalf("schema failed: %v", err)
	}

	cacheStore := &cache.Store{Path: filepath.Join(t.TempDir(), "cache.json")}
	cfg := &config.Config{ProjectsDir: root}

	// No tooling installed: every resolution degrades to empty, scores
	// reflect only the missing lockfiles.
	s := New(cfg, &fakeRunner{binaries: map[string]bool{}}, cacheStore, history)

	entries, err := s.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Discovery order is name-sorted.
	if entries[0].Name != "gosvc" || entries[1].Name != "web" {
		t.Errorf("unexpected order: %s, %s", entries[0].Name, entries[1].Name)
	}
	for _, e := range entries {
		if e.Outdated != 0 {
			t.Errorf("expected 0 outdated without tooling, got %+v", e)
		}
		if e.Score != 85 { // no lockfile present
			t.Errorf("expected score 85, got %+v", e)
		}
	}

	file, err := cacheStore.Read()
	if err != nil {
		t.Fatalf("cache read failed: %v", err)
	}
	if file == nil || len(file.Projects) != 2 {
		t.Fatalf("expected persisted cache with 2 entries, got %+v", file)
	}

	scans, err := history.RecentScans(5)
	if err != nil {
		t.Fatalf("RecentScans failed: %v", err)
	}
	if len(scans) != 1 || scans[0].ProjectCount != 2 {
		t.Errorf("expected one recorded scan of 2 projects, got %+v", scans)
	}
}

func TestResolve_FiltersIgnoredPackages(t *testing.T) {
	fake := &fakeRunner{
		binaries: map[string]bool{"npm": true},
		outputs: map[string]string{
			"npm outdated": `{
				"left-pad": {"current": "1.0.0", "wanted": "1.0.0", "latest": "1.3.0"},
				"react": {"current": "17.0.2", "wanted": "17.0.2", "latest": "18.2.0"}
			}`,
		},
	}
	cfg := &config.Config{IgnoredPackages: []string{"left-pad"}}
	s := New(cfg, fake, nil, nil)

	p := &project.Project{Name: "web", Path: "/tmp/web", Ecosystem: project.Node, PackageManager: "npm"}
	packages := s.Resolve(p)

	if _, ok := packages["left-pad"]; ok {
		t.Error("ignored package must be filtered out")
	}
	if _, ok := packages["react"]; !ok {
		t.Error("non-ignored package must survive")
	}
}

func TestRun_MissingRootIsAnError(t *testing.T) {
	cfg := &config.Config{ProjectsDir: filepath.Join(t.TempDir(), "nope")}
	s := New(cfg, &fakeRunner{}, nil, nil)

	if _, err := s.Run(); err == nil {
		t.Fatal("expected an error for a missing projects directory")
	}
}
