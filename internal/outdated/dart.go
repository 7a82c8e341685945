package outdated

import (
	"encoding/json"

	"github.com/blackwell-systems/depscout/internal/project"
)

// pubOutdatedReport is the shape of `dart pub outdated --json` (and the
// flutter-wrapped equivalent).
type pubOutdatedReport struct {
	Packages []struct {
		Package    string      `json:"package"`
		Current    *pubVersion `json:"current"`
		Resolvable *pubVersion `json:"resolvable"`
		Latest     *pubVersion `json:"latest"`
	} `json:"packages"`
}

type pubVersion struct {
	Version string `json:"version"`
}

func (r *Resolver) resolveDart(p *project.Project) *Result {
	// Flutter projects must go through the flutter wrapper; plain Dart
	// projects use the dart binary.
	bin := ""
	switch {
	case r.Runner.LookPath("flutter"):
		bin = "flutter"
	case r.Runner.LookPath("dart"):
		bin = "dart"
	default:
		return failed(StatusToolAbsent, "dart not installed")
	}

	out, err := r.Runner.Run(p.Path, bin+" pub outdated --json")
	if err != nil {
		return failed(StatusToolFailed, err.Error())
	}

	packages, perr := parsePubOutdated([]byte(out))
	if perr != nil {
		return failed(StatusParseFailed, perr.Error())
	}
	return ok(packages)
}

func parsePubOutdated(data []byte) (map[string]Entry, error) {
	if len(data) == 0 {
		return map[string]Entry{}, nil
	}

	var report pubOutdatedReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}

	packages := map[string]Entry{}
	for _, pkg := range report.Packages {
		if pkg.Package == "" || pkg.Current == nil || pkg.Latest == nil {
			continue
		}
		if pkg.Current.Version == pkg.Latest.Version {
			continue
		}
		// Wanted prefers the resolvable version: the highest the current
		// constraint set can actually reach.
		wanted := pkg.Latest.Version
		if pkg.Resolvable != nil && pkg.Resolvable.Version != "" {
			wanted = pkg.Resolvable.Version
		}
		packages[pkg.Package] = Entry{
			Current: pkg.Current.Version,
			Wanted:  wanted,
			Latest:  pkg.Latest.Version,
		}
	}
	return packages, nil
}
