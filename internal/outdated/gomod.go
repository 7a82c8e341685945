package outdated

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/blackwell-systems/depscout/internal/project"
)

// goListModule is one record of `go list -u -m -json all`. The command emits
// back-to-back JSON objects, not an array and not NDJSON.
type goListModule struct {
	Path     string `json:"Path"`
	Version  string `json:"Version"`
	Main     bool   `json:"Main"`
	Indirect bool   `json:"Indirect"`
	Update   *struct {
		Version string `json:"Version"`
	} `json:"Update"`
}

func (r *Resolver) resolveGo(p *project.Project) *Result {
	if !r.Runner.LookPath("go") {
		return failed(StatusToolAbsent, "go not installed")
	}

	out, err := r.Runner.Run(p.Path, "go list -u -m -json all")
	if err != nil {
		return failed(StatusToolFailed, err.Error())
	}

	return ok(parseGoListOutdated(out))
}

// parseGoListOutdated decodes the concatenated-objects stream one object at
// a time. A malformed object is skipped by resynchronizing at the next
// object boundary; it never invalidates the rest of the payload. Only
// modules carrying an Update field are outdated.
func parseGoListOutdated(out string) map[string]Entry {
	packages := map[string]Entry{}
	rest := strings.TrimSpace(out)

	for rest != "" {
		dec := json.NewDecoder(strings.NewReader(rest))
		for {
			var mod goListModule
			if err := dec.Decode(&mod); err != nil {
				if err == io.EOF {
					return packages
				}
				// Skip past the broken object: resume at the
				// next line starting a new one.
				consumed := int(dec.InputOffset())
				if consumed > len(rest) {
					consumed = len(rest)
				}
				next := strings.Index(rest[consumed:], "\n{")
				if next < 0 {
					return packages
				}
				rest = rest[consumed+next+1:]
				break
			}
			if mod.Main || mod.Path == "" || mod.Update == nil {
				continue
			}

			entry := Entry{
				Current: mod.Version,
				Wanted:  mod.Update.Version,
				Latest:  mod.Update.Version,
			}
			if mod.Indirect {
				entry.Type = "indirect"
			}
			packages[mod.Path] = entry
		}
	}
	return packages
}
