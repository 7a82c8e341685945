package health

import (
	"encoding/json"

	"github.com/blackwell-systems/depscout/internal/project"
)

// SecurityIssues returns the vulnerability count reported by the ecosystem's
// audit tool. Ecosystems without an audit command, missing binaries, failed
// invocations, and unrecognized output shapes all yield 0 — auditing is
// best-effort and never fails a scan.
func (s *Scorer) SecurityIssues(p *project.Project) int {
	switch p.Ecosystem {
	case project.Node:
		if !s.Runner.LookPath(p.PackageManager) {
			return 0
		}
		out, err := s.Runner.Run(p.Path, p.PackageManager+" audit --json")
		if err != nil {
			return 0
		}
		return parseNpmAudit([]byte(out))
	case project.PHP:
		if !s.Runner.LookPath("composer") {
			return 0
		}
		out, err := s.Runner.Run(p.Path, "composer audit --format=json")
		if err != nil {
			return 0
		}
		return parseComposerAudit([]byte(out))
	case project.Python:
		// pip-audit is optional tooling; skip silently when absent.
		if !s.Runner.LookPath("pip-audit") {
			return 0
		}
		out, err := s.Runner.Run(p.Path, "pip-audit -f json")
		if err != nil {
			return 0
		}
		return parsePipAudit([]byte(out))
	}
	return 0
}

// npmAuditReport covers npm and pnpm. npm >= 7 carries per-severity counts
// plus a total; older shapes only have the severities.
type npmAuditReport struct {
	Metadata struct {
		Vulnerabilities map[string]int `json:"vulnerabilities"`
	} `json:"metadata"`
}

func parseNpmAudit(data []byte) int {
	var report npmAuditReport
	if err := json.Unmarshal(data, &report); err != nil {
		return 0
	}
	if total, ok := report.Metadata.Vulnerabilities["total"]; ok {
		return total
	}
	sum := 0
	for severity, count := range report.Metadata.Vulnerabilities {
		if severity == "info" {
			continue
		}
		sum += count
	}
	return sum
}

// composerAuditReport maps package name to its advisory list.
type composerAuditReport struct {
	Advisories map[string]json.RawMessage `json:"advisories"`
}

func parseComposerAudit(data []byte) int {
	var report composerAuditReport
	if err := json.Unmarshal(data, &report); err != nil {
		return 0
	}
	total := 0
	for _, raw := range report.Advisories {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			// Unexpected advisory shape still counts as one finding.
			total++
			continue
		}
		total += len(list)
	}
	return total
}

// pipAuditReport is `pip-audit -f json`: one row per dependency with its
// vulnerability list.
type pipAuditReport struct {
	Dependencies []struct {
		Vulns []json.RawMessage `json:"vulns"`
	} `json:"dependencies"`
}

func parsePipAudit(data []byte) int {
	var report pipAuditReport
	if err := json.Unmarshal(data, &report); err != nil {
		return 0
	}
	total := 0
	for _, dep := range report.Dependencies {
		total += len(dep.Vulns)
	}
	return total
}
