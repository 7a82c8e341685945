package outdated

import (
	"encoding/json"

	"github.com/blackwell-systems/depscout/internal/project"
)

// cargoOutdatedReport is the shape of `cargo outdated --format json`, which
// requires the cargo-outdated companion tool.
type cargoOutdatedReport struct {
	Dependencies []struct {
		Name    string `json:"name"`
		Project string `json:"project"`
		Compat  string `json:"compat"`
		Latest  string `json:"latest"`
		Kind    string `json:"kind"`
	} `json:"dependencies"`
}

func (r *Resolver) resolveRust(p *project.Project) *Result {
	// cargo-outdated is an optional subcommand; without it there is no
	// fallback.
	if !r.Runner.LookPath("cargo-outdated") {
		return failed(StatusToolAbsent, "cargo-outdated not installed")
	}

	out, err := r.Runner.Run(p.Path, "cargo outdated --format json")
	if err != nil {
		return failed(StatusToolFailed, err.Error())
	}

	packages, perr := parseCargoOutdated([]byte(out))
	if perr != nil {
		return failed(StatusParseFailed, perr.Error())
	}
	return ok(packages)
}

func parseCargoOutdated(data []byte) (map[string]Entry, error) {
	if len(data) == 0 {
		return map[string]Entry{}, nil
	}

	var report cargoOutdatedReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}

	packages := make(map[string]Entry, len(report.Dependencies))
	for _, dep := range report.Dependencies {
		if dep.Name == "" {
			continue
		}
		entry := Entry{
			Current: dep.Project,
			Wanted:  dep.Compat,
			Latest:  dep.Latest,
		}
		// cargo-outdated prints "---" when no compatible upgrade exists.
		if entry.Wanted == "" || entry.Wanted == "---" {
			entry.Wanted = entry.Latest
		}
		if dep.Kind == "Development" {
			entry.Type = "dev"
		}
		packages[dep.Name] = entry
	}
	return packages, nil
}
