package outdated

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/depscout/internal/project"
)

// packageResolved covers both historical schema shapes of Package.resolved:
// v1 nests the pin list under "object" and names packages with "package";
// v2+ has a top-level "pins" list keyed by "identity".
type packageResolved struct {
	Object *struct {
		Pins []resolvedPin `json:"pins"`
	} `json:"object"`
	Pins []resolvedPin `json:"pins"`
}

type resolvedPin struct {
	Package  string `json:"package"`  // v1
	Identity string `json:"identity"` // v2
	State    struct {
		Version string `json:"version"`
	} `json:"state"`
}

// resolveSwift reads the resolved-pins file instead of running a tool: SwiftPM
// has no native outdated command, and finding the true latest version would
// need a network call per repository. Each pin reports its pinned version as
// current, wanted, and latest alike, so a Swift package is never flagged as
// outdated. A documented capability limit, not a bug.
func (r *Resolver) resolveSwift(p *project.Project) *Result {
	data, err := os.ReadFile(filepath.Join(p.Path, "Package.resolved"))
	if err != nil {
		return ok(nil)
	}

	var resolved packageResolved
	if err := json.Unmarshal(data, &resolved); err != nil {
		return failed(StatusParseFailed, err.Error())
	}

	pins := resolved.Pins
	if resolved.Object != nil {
		pins = resolved.Object.Pins
	}

	packages := map[string]Entry{}
	for _, pin := range pins {
		name := pin.Identity
		if name == "" {
			name = pin.Package
		}
		if name == "" || pin.State.Version == "" {
			continue
		}
		packages[name] = Entry{
			Current: pin.State.Version,
			Wanted:  pin.State.Version,
			Latest:  pin.State.Version,
		}
	}
	return ok(packages)
}
