// Package scan orchestrates a full pass over the projects directory:
// discover, resolve outdated sets, score, persist.
package scan

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/blackwell-systems/depscout/internal/cache"
	"github.com/blackwell-systems/depscout/internal/config"
	"github.com/blackwell-systems/depscout/internal/health"
	"github.com/blackwell-systems/depscout/internal/outdated"
	"github.com/blackwell-systems/depscout/internal/project"
	"github.com/blackwell-systems/depscout/internal/runner"
	"github.com/blackwell-systems/depscout/internal/store"
)

// Scanner runs full scan cycles. Cache and History are optional; a nil
// handle skips that persistence step.
type Scanner struct {
	Config  *config.Config
	Runner  runner.Runner
	Cache   *cache.Store
	History *store.Store

	// OnProject, when set, is called before each project is scanned.
	// Commands use it to drive progress output.
	OnProject func(name string, index, total int)

	resolver *outdated.Resolver
	scorer   *health.Scorer
}

// New returns a Scanner wired to the given runner.
func New(cfg *config.Config, r runner.Runner, cacheStore *cache.Store, history *store.Store) *Scanner {
	return &Scanner{
		Config:   cfg,
		Runner:   r,
		Cache:    cacheStore,
		History:  history,
		resolver: outdated.New(r),
		scorer:   health.New(r),
	}
}

// Run scans every project under the configured root and persists the
// snapshot. Per-project failures degrade to empty results; only a failure to
// list the root directory itself is an error.
func (s *Scanner) Run() ([]cache.Entry, error) {
	root, err := s.Config.ResolveProjectsDir()
	if err != nil {
		return nil, err
	}

	projects, err := project.Discover(root)
	if err != nil {
		return nil, err
	}

	started := time.Now().UTC()
	entries := make([]cache.Entry, 0, len(projects))
	for i, p := range projects {
		if s.OnProject != nil {
			s.OnProject(p.Name, i, len(projects))
		}
		entries = append(entries, s.ScanProject(p))
		// Yield between projects so a long batch does not starve
		// concurrent status queries.
		runtime.Gosched()
	}

	if s.Cache != nil {
		if err := s.Cache.Write(entries); err != nil {
			return entries, fmt.Errorf("failed to persist scan cache: %w", err)
		}
	}
	if s.History != nil {
		if _, err := s.History.RecordScan(started, entries); err != nil {
			fmt.Fprintf(os.Stderr, "depscout: failed to record scan history: %v\n", err)
		}
	}

	return entries, nil
}

// ScanProject resolves and scores one project and returns its cache entry.
func (s *Scanner) ScanProject(p *project.Project) cache.Entry {
	packages := s.Resolve(p)
	report := s.scorer.ComputeFrom(p, packages)

	return cache.Entry{
		Name:      p.Name,
		Path:      p.Path,
		Ecosystem: p.Ecosystem,
		Framework: p.Framework,
		Outdated:  report.Outdated,
		Major:     report.Major,
		Security:  report.Security,
		Score:     report.Score,
		CheckedAt: time.Now().UTC(),
	}
}

// Resolve returns the project's outdated mapping with configured ignores
// removed.
func (s *Scanner) Resolve(p *project.Project) map[string]outdated.Entry {
	res := s.resolver.Resolve(p)
	if len(s.Config.IgnoredPackages) == 0 {
		return res.Packages
	}
	filtered := make(map[string]outdated.Entry, len(res.Packages))
	for name, entry := range res.Packages {
		if s.Config.IsIgnored(name) {
			continue
		}
		filtered[name] = entry
	}
	return filtered
}

// Report computes the full health report for one project, ignores applied.
func (s *Scanner) Report(p *project.Project) *health.Report {
	return s.scorer.ComputeFrom(p, s.Resolve(p))
}
