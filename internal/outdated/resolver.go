// Package outdated resolves the set of outdated dependencies for a classified
// project by invoking the ecosystem's native listing tool and normalizing its
// output.
//
// Nine ecosystems mean nine output shapes: JSON arrays, JSON objects keyed by
// package name, back-to-back JSON objects (go list), free-text lines (bundle
// outdated), on-disk report files (gradle), and lockfile pins (Swift). Every
// parser degrades to an empty result on missing tools, empty output, or
// malformed payloads; resolution never fails a batch.
package outdated

import (
	"github.com/blackwell-systems/depscout/internal/project"
	"github.com/blackwell-systems/depscout/internal/runner"
)

// Entry is one package with a newer version available. Current differing from
// Latest is the membership condition; ecosystems with no separate "wanted"
// concept set Wanted = Latest.
type Entry struct {
	Current string `json:"current"`
	Wanted  string `json:"wanted"`
	Latest  string `json:"latest"`
	Type    string `json:"type,omitempty"` // e.g. "dev"
}

// Status says how a resolution ended. Callers that only need the mapping can
// ignore it; an empty mapping with StatusOK means "confirmed up to date" while
// the failure statuses mean "could not determine".
type Status string

const (
	StatusOK          Status = "ok"
	StatusToolAbsent  Status = "tool-absent"
	StatusToolFailed  Status = "tool-failed"
	StatusParseFailed Status = "parse-failed"
)

// Result carries the normalized mapping plus the resolution status.
type Result struct {
	Packages map[string]Entry
	Status   Status
	Reason   string
}

func ok(packages map[string]Entry) *Result {
	if packages == nil {
		packages = map[string]Entry{}
	}
	return &Result{Packages: packages, Status: StatusOK}
}

func failed(status Status, reason string) *Result {
	return &Result{Packages: map[string]Entry{}, Status: status, Reason: reason}
}

// Resolver shells out through the injected Runner.
type Resolver struct {
	Runner runner.Runner
}

// New returns a Resolver backed by the given runner.
func New(r runner.Runner) *Resolver {
	return &Resolver{Runner: r}
}

// Resolve returns the outdated mapping for a project. It never returns an
// error; any failure shows up as an empty mapping with a non-OK status.
func (r *Resolver) Resolve(p *project.Project) *Result {
	switch p.Ecosystem {
	case project.Node:
		return r.resolveNode(p)
	case project.Python:
		return r.resolvePython(p)
	case project.Rust:
		return r.resolveRust(p)
	case project.Go:
		return r.resolveGo(p)
	case project.PHP:
		return r.resolvePHP(p)
	case project.Ruby:
		return r.resolveRuby(p)
	case project.Dart:
		return r.resolveDart(p)
	case project.Swift:
		return r.resolveSwift(p)
	case project.JVM:
		return r.resolveJVM(p)
	}
	return failed(StatusToolAbsent, "unsupported ecosystem")
}
