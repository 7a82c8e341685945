package outdated

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/depscout/internal/project"
)

// gradleReport is the JSON report the com.github.ben-manes.versions plugin
// writes to build/dependencyUpdates/report.json when the dependencyUpdates
// task runs with outputFormatter=json.
type gradleReport struct {
	Outdated struct {
		Dependencies []struct {
			Group     string `json:"group"`
			Name      string `json:"name"`
			Version   string `json:"version"`
			Available struct {
				Release   string `json:"release"`
				Milestone string `json:"milestone"`
			} `json:"available"`
		} `json:"dependencies"`
	} `json:"outdated"`
}

const gradleReportPath = "build/dependencyUpdates/report.json"

func (r *Resolver) resolveJVM(p *project.Project) *Result {
	if !r.Runner.LookPath("gradle") {
		return failed(StatusToolAbsent, "gradle not installed")
	}

	// The task only generates the report; its stdout is irrelevant. The
	// invocation fails on projects without the versions plugin applied.
	if _, err := r.Runner.Run(p.Path, "gradle dependencyUpdates -DoutputFormatter=json --quiet"); err != nil {
		return failed(StatusToolFailed, err.Error())
	}

	data, err := os.ReadFile(filepath.Join(p.Path, gradleReportPath))
	if err != nil {
		// Task ran but produced no report file.
		return failed(StatusToolFailed, "dependency updates report not generated")
	}

	packages, perr := parseGradleReport(data)
	if perr != nil {
		return failed(StatusParseFailed, perr.Error())
	}
	return ok(packages)
}

func parseGradleReport(data []byte) (map[string]Entry, error) {
	var report gradleReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}

	packages := map[string]Entry{}
	for _, dep := range report.Outdated.Dependencies {
		if dep.Name == "" {
			continue
		}
		latest := dep.Available.Release
		if latest == "" {
			latest = dep.Available.Milestone
		}
		if latest == "" {
			continue
		}
		name := dep.Name
		if dep.Group != "" {
			name = dep.Group + ":" + dep.Name
		}
		packages[name] = Entry{
			Current: dep.Version,
			Wanted:  latest,
			Latest:  latest,
		}
	}
	return packages, nil
}
