package outdated

import (
	"errors"
	"strings"
	"testing"

	"github.com/blackwell-systems/depscout/internal/project"
)

// fakeRunner satisfies runner.Runner without spawning subprocesses. Outputs
// are keyed by command prefix.
type fakeRunner struct {
	binaries map[string]bool
	outputs  map[string]string
	failWith map[string]error
	calls    []string
}

func (f *fakeRunner) Run(dir, command string) (string, error) {
	f.calls = append(f.calls, command)
	for prefix, err := range f.failWith {
		if strings.HasPrefix(command, prefix) {
			return "", err
		}
	}
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

func nodeProject(pm string) *project.Project {
	return &project.Project{
		Name:           "app",
		Path:           "/tmp/app",
		Ecosystem:      project.Node,
		PackageManager: pm,
	}
}

func TestResolve_ToolAbsent(t *testing.T) {
	r := New(&fakeRunner{binaries: map[string]bool{}})

	res := r.Resolve(nodeProject("npm"))
	if res.Status != StatusToolAbsent {
		t.Errorf("expected tool-absent, got %s", res.Status)
	}
	if len(res.Packages) != 0 {
		t.Errorf("expected empty mapping, got %v", res.Packages)
	}
}

func TestResolve_ToolFailure(t *testing.T) {
	fake := &fakeRunner{
		binaries: map[string]bool{"npm": true},
		failWith: map[string]error{"npm outdated": errors.New("exit 7")},
	}
	r := New(fake)

	res := r.Resolve(nodeProject("npm"))
	if res.Status != StatusToolFailed {
		t.Errorf("expected tool-failed, got %s", res.Status)
	}
	if len(res.Packages) != 0 {
		t.Errorf("expected empty mapping, got %v", res.Packages)
	}
}

func TestResolve_EmptyOutputIsUpToDate(t *testing.T) {
	fake := &fakeRunner{binaries: map[string]bool{"npm": true}}
	r := New(fake)

	res := r.Resolve(nodeProject("npm"))
	if res.Status != StatusOK {
		t.Errorf("expected ok for empty output, got %s", res.Status)
	}
	if len(res.Packages) != 0 {
		t.Errorf("expected empty mapping, got %v", res.Packages)
	}
}

func TestResolve_NodeUsesDetectedPackageManager(t *testing.T) {
	fake := &fakeRunner{
		binaries: map[string]bool{"pnpm": true},
		outputs:  map[string]string{"pnpm outdated": `{}`},
	}
	r := New(fake)

	res := r.Resolve(nodeProject("pnpm"))
	if res.Status != StatusOK {
		t.Fatalf("expected ok, got %s (%s)", res.Status, res.Reason)
	}
	if len(fake.calls) != 1 || !strings.HasPrefix(fake.calls[0], "pnpm outdated") {
		t.Errorf("expected a pnpm outdated invocation, got %v", fake.calls)
	}
}

func TestResolve_PythonPrefersPip3(t *testing.T) {
	fake := &fakeRunner{
		binaries: map[string]bool{"pip3": true, "pip": true},
		outputs:  map[string]string{"pip3 list": `[]`},
	}
	r := New(fake)

	res := r.Resolve(&project.Project{Ecosystem: project.Python, Path: "/tmp/py"})
	if res.Status != StatusOK {
		t.Fatalf("expected ok, got %s", res.Status)
	}
	if len(fake.calls) != 1 || !strings.HasPrefix(fake.calls[0], "pip3 ") {
		t.Errorf("expected pip3 invocation, got %v", fake.calls)
	}
}

func TestResolve_PythonSkipsWhenNoPip(t *testing.T) {
	fake := &fakeRunner{binaries: map[string]bool{}}
	r := New(fake)

	res := r.Resolve(&project.Project{Ecosystem: project.Python, Path: "/tmp/py"})
	if res.Status != StatusToolAbsent {
		t.Errorf("expected tool-absent, got %s", res.Status)
	}
	if len(fake.calls) != 0 {
		t.Errorf("expected no invocation without a pip binary, got %v", fake.calls)
	}
}

func TestResolve_RustRequiresCargoOutdated(t *testing.T) {
	fake := &fakeRunner{binaries: map[string]bool{"cargo": true}}
	r := New(fake)

	res := r.Resolve(&project.Project{Ecosystem: project.Rust, Path: "/tmp/rs"})
	if res.Status != StatusToolAbsent {
		t.Errorf("expected tool-absent without cargo-outdated, got %s", res.Status)
	}
	if len(fake.calls) != 0 {
		t.Errorf("expected no invocation, got %v", fake.calls)
	}
}

func TestResolve_GoToolAbsent(t *testing.T) {
	// A go.mod project on a machine without the go toolchain: empty
	// mapping, no error. The health scorer then sees zero outdated.
	fake := &fakeRunner{binaries: map[string]bool{}}
	r := New(fake)

	res := r.Resolve(&project.Project{Ecosystem: project.Go, Path: "/tmp/gomod"})
	if res.Status != StatusToolAbsent {
		t.Errorf("expected tool-absent, got %s", res.Status)
	}
	if len(res.Packages) != 0 {
		t.Errorf("expected empty mapping, got %v", res.Packages)
	}
}

func TestResolve_DartPrefersFlutterWrapper(t *testing.T) {
	fake := &fakeRunner{
		binaries: map[string]bool{"flutter": true, "dart": true},
		outputs:  map[string]string{"flutter pub outdated": `{"packages":[]}`},
	}
	r := New(fake)

	res := r.Resolve(&project.Project{Ecosystem: project.Dart, Path: "/tmp/app"})
	if res.Status != StatusOK {
		t.Fatalf("expected ok, got %s", res.Status)
	}
	if len(fake.calls) != 1 || !strings.HasPrefix(fake.calls[0], "flutter pub outdated") {
		t.Errorf("expected flutter invocation, got %v", fake.calls)
	}
}
