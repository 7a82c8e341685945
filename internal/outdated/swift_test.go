package outdated

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/depscout/internal/project"
)

func swiftProject(t *testing.T, resolved string) *project.Project {
	t.Helper()
	dir := t.TempDir()
	if resolved != "" {
		if err := os.WriteFile(filepath.Join(dir, "Package.resolved"), []byte(resolved), 0644); err != nil {
			t.Fatalf("failed to write Package.resolved: %v", err)
		}
	}
	return &project.Project{Name: "pkg", Path: dir, Ecosystem: project.Swift}
}

func TestResolveSwift_V1Schema(t *testing.T) {
	p := swiftProject(t, `{
		"object": {
			"pins": [
				{"package": "Alamofire", "state": {"version": "5.8.1"}}
			]
		},
		"version": 1
	}`)

	res := New(&fakeRunner{}).Resolve(p)
	if res.Status != StatusOK {
		t.Fatalf("expected ok, got %s", res.Status)
	}
	pin := res.Packages["Alamofire"]
	// Pins report their pinned version as current, wanted, and latest
	// alike; true latest is unknowable without per-repository network
	// calls.
	if pin.Current != "5.8.1" || pin.Wanted != "5.8.1" || pin.Latest != "5.8.1" {
		t.Errorf("unexpected pin entry: %+v", pin)
	}
}

func TestResolveSwift_V2Schema(t *testing.T) {
	p := swiftProject(t, `{
		"pins": [
			{"identity": "swift-nio", "state": {"version": "2.63.0"}},
			{"identity": "branch-pin", "state": {"branch": "main"}}
		],
		"version": 2
	}`)

	res := New(&fakeRunner{}).Resolve(p)
	if res.Status != StatusOK {
		t.Fatalf("expected ok, got %s", res.Status)
	}
	if len(res.Packages) != 1 {
		t.Fatalf("expected versionless pins to be skipped, got %v", res.Packages)
	}
	if res.Packages["swift-nio"].Current != "2.63.0" {
		t.Errorf("unexpected entry: %+v", res.Packages["swift-nio"])
	}
}

func TestResolveSwift_MissingResolvedFile(t *testing.T) {
	res := New(&fakeRunner{}).Resolve(swiftProject(t, ""))
	if res.Status != StatusOK {
		t.Errorf("expected ok for a project with no pins file, got %s", res.Status)
	}
	if len(res.Packages) != 0 {
		t.Errorf("expected empty mapping, got %v", res.Packages)
	}
}

func TestResolveSwift_MalformedResolvedFile(t *testing.T) {
	res := New(&fakeRunner{}).Resolve(swiftProject(t, "{broken"))
	if res.Status != StatusParseFailed {
		t.Errorf("expected parse-failed, got %s", res.Status)
	}
	if len(res.Packages) != 0 {
		t.Errorf("expected empty mapping, got %v", res.Packages)
	}
}
