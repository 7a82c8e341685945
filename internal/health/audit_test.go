package health

import (
	"testing"

	"github.com/blackwell-systems/depscout/internal/project"
)

func TestParseNpmAudit_TotalField(t *testing.T) {
	out := `{"metadata": {"vulnerabilities": {"info": 1, "low": 2, "moderate": 1, "high": 3, "critical": 0, "total": 7}}}`
	if got := parseNpmAudit([]byte(out)); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}

func TestParseNpmAudit_SeveritySumFallback(t *testing.T) {
	out := `{"metadata": {"vulnerabilities": {"info": 5, "low": 1, "high": 2}}}`
	if got := parseNpmAudit([]byte(out)); got != 3 {
		t.Errorf("expected info excluded from sum, got %d", got)
	}
}

func TestParseNpmAudit_Malformed(t *testing.T) {
	if got := parseNpmAudit([]byte("yarn audit v1 output")); got != 0 {
		t.Errorf("expected 0 for unparseable output, got %d", got)
	}
}

func TestParseComposerAudit(t *testing.T) {
	out := `{"advisories": {
		"laravel/framework": [{"cve": "CVE-2024-0001"}, {"cve": "CVE-2024-0002"}],
		"guzzlehttp/guzzle": [{"cve": "CVE-2023-0003"}]
	}}`
	if got := parseComposerAudit([]byte(out)); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestParsePipAudit(t *testing.T) {
	out := `{"dependencies": [
		{"name": "requests", "vulns": [{"id": "PYSEC-1"}]},
		{"name": "flask", "vulns": []}
	]}`
	if got := parsePipAudit([]byte(out)); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestSecurityIssues_ToolAbsentYieldsZero(t *testing.T) {
	s := New(&fakeRunner{binaries: map[string]bool{}})
	p := &project.Project{Ecosystem: project.Node, PackageManager: "npm"}
	if got := s.SecurityIssues(p); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestSecurityIssues_EcosystemWithoutAuditYieldsZero(t *testing.T) {
	s := New(&fakeRunner{binaries: map[string]bool{"cargo": true}})
	p := &project.Project{Ecosystem: project.Rust}
	if got := s.SecurityIssues(p); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
