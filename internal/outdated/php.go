package outdated

import (
	"encoding/json"

	"github.com/blackwell-systems/depscout/internal/project"
)

// composerOutdatedReport is the shape of
// `composer outdated --direct --format=json`.
type composerOutdatedReport struct {
	Installed []struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		Latest  string `json:"latest"`
	} `json:"installed"`
}

func (r *Resolver) resolvePHP(p *project.Project) *Result {
	if !r.Runner.LookPath("composer") {
		return failed(StatusToolAbsent, "composer not installed")
	}

	// Direct dependencies only; transitive noise is composer's problem.
	out, err := r.Runner.Run(p.Path, "composer outdated --direct --format=json")
	if err != nil {
		return failed(StatusToolFailed, err.Error())
	}

	packages, perr := parseComposerOutdated([]byte(out))
	if perr != nil {
		return failed(StatusParseFailed, perr.Error())
	}
	return ok(packages)
}

func parseComposerOutdated(data []byte) (map[string]Entry, error) {
	if len(data) == 0 {
		return map[string]Entry{}, nil
	}

	var report composerOutdatedReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}

	packages := map[string]Entry{}
	for _, dep := range report.Installed {
		// composer lists every direct dependency; only a version drift
		// makes it outdated.
		if dep.Name == "" || dep.Version == dep.Latest {
			continue
		}
		packages[dep.Name] = Entry{
			Current: dep.Version,
			Wanted:  dep.Latest,
			Latest:  dep.Latest,
		}
	}
	return packages, nil
}
