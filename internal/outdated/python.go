package outdated

import (
	"encoding/json"

	"github.com/blackwell-systems/depscout/internal/project"
)

// pipOutdatedEntry is one row of `pip list --outdated --format=json`.
type pipOutdatedEntry struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	LatestVersion string `json:"latest_version"`
}

func (r *Resolver) resolvePython(p *project.Project) *Result {
	// Prefer pip3; fall back to pip; skip entirely when neither exists.
	bin := ""
	switch {
	case r.Runner.LookPath("pip3"):
		bin = "pip3"
	case r.Runner.LookPath("pip"):
		bin = "pip"
	default:
		return failed(StatusToolAbsent, "pip not installed")
	}

	out, err := r.Runner.Run(p.Path, bin+" list --outdated --format=json")
	if err != nil {
		return failed(StatusToolFailed, err.Error())
	}

	packages, perr := parsePipOutdated([]byte(out))
	if perr != nil {
		return failed(StatusParseFailed, perr.Error())
	}
	return ok(packages)
}

// parsePipOutdated normalizes pip's flat version list. pip has no "wanted"
// concept, so wanted = latest.
func parsePipOutdated(data []byte) (map[string]Entry, error) {
	if len(data) == 0 {
		return map[string]Entry{}, nil
	}

	var rows []pipOutdatedEntry
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	packages := make(map[string]Entry, len(rows))
	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		packages[row.Name] = Entry{
			Current: row.Version,
			Wanted:  row.LatestVersion,
			Latest:  row.LatestVersion,
		}
	}
	return packages, nil
}
