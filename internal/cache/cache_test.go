package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blackwell-systems/depscout/internal/project"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return &Store{Path: filepath.Join(t.TempDir(), "cache.json")}
}

func sampleEntries() []Entry {
	now := time.Now().UTC().Truncate(time.Second)
	return []Entry{
		{Name: "api", Path: "/p/api", Ecosystem: project.Go, Framework: "Unknown", Outdated: 2, Major: 1, Score: 84, CheckedAt: now},
		{Name: "web", Path: "/p/web", Ecosystem: project.Node, Framework: "Next.js", Outdated: 5, Security: 1, Score: 80, CheckedAt: now},
		{Name: "cli", Path: "/p/cli", Ecosystem: project.Rust, Framework: "Unknown", Score: 100, CheckedAt: now},
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	s := testStore(t)
	entries := sampleEntries()

	if err := s.Write(entries); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	file, err := s.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if file == nil {
		t.Fatal("expected a fresh cache to be readable")
	}
	if file.Version != Version {
		t.Errorf("expected version %d, got %d", Version, file.Version)
	}
	if len(file.Projects) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(file.Projects))
	}
	for i, want := range entries {
		got := file.Projects[i]
		if got.Name != want.Name || got.Path != want.Path || got.Ecosystem != want.Ecosystem ||
			got.Framework != want.Framework || got.Outdated != want.Outdated ||
			got.Major != want.Major || got.Security != want.Security || got.Score != want.Score {
			t.Errorf("entry %d mismatch: got %+v, want %+v", i, got, want)
		}
	}
}

func TestRead_MissingFile(t *testing.T) {
	file, err := testStore(t).Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if file != nil {
		t.Errorf("expected nil for a missing cache, got %+v", file)
	}
}

func TestRead_ExpiredCacheIsAbsent(t *testing.T) {
	s := testStore(t)

	stale := File{
		Version:   Version,
		UpdatedAt: time.Now().Add(-MaxAge - time.Minute),
		Projects:  sampleEntries(),
	}
	data, err := json.Marshal(stale)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	file, err := s.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if file != nil {
		t.Error("a cache older than MaxAge must read as absent")
	}
}

func TestRead_CorruptCacheIsAbsent(t *testing.T) {
	s := testStore(t)
	if err := os.WriteFile(s.Path, []byte("{truncated"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	file, err := s.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if file != nil {
		t.Error("a corrupt cache must read as absent")
	}
}

func TestReplace_UpdatesMatchingEntryOnly(t *testing.T) {
	s := testStore(t)
	if err := s.Write(sampleEntries()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	updated := Entry{Name: "web", Path: "/p/web", Ecosystem: project.Node, Framework: "Next.js", Outdated: 0, Score: 100, CheckedAt: time.Now()}
	if err := s.Replace(updated); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	file, err := s.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(file.Projects) != 3 {
		t.Fatalf("expected 3 entries after replace, got %d", len(file.Projects))
	}
	for _, e := range file.Projects {
		switch e.Name {
		case "web":
			if e.Score != 100 || e.Outdated != 0 {
				t.Errorf("web entry not replaced: %+v", e)
			}
		case "api":
			if e.Score != 84 {
				t.Errorf("api entry must be untouched: %+v", e)
			}
		}
	}
}

func TestReplace_AppendsWhenNameUnknown(t *testing.T) {
	s := testStore(t)
	if err := s.Replace(Entry{Name: "fresh", Score: 90, CheckedAt: time.Now()}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	file, err := s.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(file.Projects) != 1 || file.Projects[0].Name != "fresh" {
		t.Errorf("expected single appended entry, got %+v", file)
	}
}
