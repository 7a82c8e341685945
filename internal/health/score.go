// Package health derives a bounded 0-100 score and human recommendations
// from a project's outdated set, lockfile presence, and audit findings.
package health

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/depscout/internal/outdated"
	"github.com/blackwell-systems/depscout/internal/project"
	"github.com/blackwell-systems/depscout/internal/runner"
)

// Report is the point-in-time health summary for one project. It is
// recomputed on every request and never persisted verbatim; only the slimmer
// cache entry is written to disk.
type Report struct {
	Project          string
	Ecosystem        project.Ecosystem
	Framework        string
	FrameworkVersion string
	PackageManager   string
	HasLockfile      bool
	Outdated         int
	Major            int
	Security         int
	Score            int
	Recommendations  []string
}

// Scorer computes health reports. The runner is used for audit commands
// only; the resolver supplies the outdated mapping.
type Scorer struct {
	Runner   runner.Runner
	Resolver *outdated.Resolver
}

// New returns a Scorer sharing the given runner with its resolver.
func New(r runner.Runner) *Scorer {
	return &Scorer{Runner: r, Resolver: outdated.New(r)}
}

// Compute resolves the project's outdated set and derives its health report.
func (s *Scorer) Compute(p *project.Project) *Report {
	return s.ComputeFrom(p, s.Resolver.Resolve(p).Packages)
}

// ComputeFrom derives the health report from an already-resolved outdated
// mapping. Callers that filter the mapping first (ignored packages) use this
// directly.
func (s *Scorer) ComputeFrom(p *project.Project, packages map[string]outdated.Entry) *Report {
	outdatedCount := 0
	majorCount := 0
	for _, entry := range packages {
		// Swift pins report current = latest and therefore never count
		// as outdated.
		if entry.Current == entry.Latest {
			continue
		}
		outdatedCount++
		if outdated.IsMajorUpdate(entry.Current, entry.Latest) {
			majorCount++
		}
	}

	hasLockfile := HasLockfile(p.Path)
	security := s.SecurityIssues(p)

	return &Report{
		Project:          p.Name,
		Ecosystem:        p.Ecosystem,
		Framework:        p.Framework,
		FrameworkVersion: FrameworkVersion(p),
		PackageManager:   p.PackageManager,
		HasLockfile:      hasLockfile,
		Outdated:         outdatedCount,
		Major:            majorCount,
		Security:         security,
		Score:            Score(outdatedCount, majorCount, hasLockfile, security),
		Recommendations:  Recommendations(outdatedCount, majorCount, hasLockfile, security),
	}
}

// Score starts at 100 and subtracts: 3 per outdated package capped at 40,
// 10 per major update uncapped, a flat 15 when no lockfile is present, and
// 5 per security issue capped at 30. The result clamps to [0, 100].
func Score(outdatedCount, majorCount int, hasLockfile bool, securityCount int) int {
	score := 100

	outdatedPenalty := outdatedCount * 3
	if outdatedPenalty > 40 {
		outdatedPenalty = 40
	}
	score -= outdatedPenalty

	score -= majorCount * 10

	if !hasLockfile {
		score -= 15
	}

	securityPenalty := securityCount * 5
	if securityPenalty > 30 {
		securityPenalty = 30
	}
	score -= securityPenalty

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Recommendations runs the threshold checks in a fixed order. The checks are
// independent, not mutually exclusive; the all-clear message appears only at
// a perfect score.
func Recommendations(outdatedCount, majorCount int, hasLockfile bool, securityCount int) []string {
	var recs []string

	if !hasLockfile {
		recs = append(recs, "Commit a lockfile so installs are reproducible")
	}
	if majorCount > 0 {
		recs = append(recs, fmt.Sprintf("Review %d major update(s) for breaking changes before upgrading", majorCount))
	}
	if securityCount > 0 {
		recs = append(recs, fmt.Sprintf("Run the ecosystem audit fix for %d known security issue(s)", securityCount))
	}
	if outdatedCount > 10 {
		recs = append(recs, fmt.Sprintf("%d packages are outdated; schedule a dependency update pass", outdatedCount))
	}
	if Score(outdatedCount, majorCount, hasLockfile, securityCount) == 100 {
		recs = append(recs, "Dependencies are healthy; nothing to do")
	}

	return recs
}

// HasLockfile reports whether any recognized lockfile (across all nine
// ecosystems) exists in dir.
func HasLockfile(dir string) bool {
	for _, name := range project.LockfileNames() {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// frameworkPackages maps a detected framework to the dependency that carries
// its version.
var frameworkPackages = map[string]string{
	"Next.js":      "next",
	"Nuxt":         "nuxt",
	"Angular":      "@angular/core",
	"Svelte":       "svelte",
	"Astro":        "astro",
	"Remix":        "@remix-run/react",
	"Gatsby":       "gatsby",
	"React Native": "react-native",
	"Expo":         "expo",
	"Electron":     "electron",
	"Vue":          "vue",
	"React":        "react",
	"Express":      "express",
	"Fastify":      "fastify",
}

// FrameworkVersion returns the declared version of the project's detected
// framework, with any range operator stripped, or "" when unresolvable.
func FrameworkVersion(p *project.Project) string {
	pkg, ok := frameworkPackages[p.Framework]
	if !ok {
		return ""
	}
	constraint, ok := p.AllDependencies()[pkg]
	if !ok {
		return ""
	}
	return strings.TrimLeft(constraint, "^~><= v")
}
