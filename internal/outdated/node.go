package outdated

import (
	"encoding/json"
	"fmt"

	"github.com/blackwell-systems/depscout/internal/project"
)

// npmOutdatedEntry is one row of `npm outdated --json` (object form) or
// `pnpm outdated --format json`. yarn's array form carries the same fields
// plus the package name inline.
type npmOutdatedEntry struct {
	Name    string `json:"name"`
	Current string `json:"current"`
	Wanted  string `json:"wanted"`
	Latest  string `json:"latest"`
	Type    string `json:"type"`
	// pnpm spells the dependency type differently.
	DependencyType string `json:"dependencyType"`
}

func (r *Resolver) resolveNode(p *project.Project) *Result {
	pm := p.PackageManager
	if !r.Runner.LookPath(pm) {
		return failed(StatusToolAbsent, pm+" not installed")
	}

	var cmd string
	switch pm {
	case "pnpm":
		cmd = "pnpm outdated --format json"
	default:
		cmd = fmt.Sprintf("%s outdated --json", pm)
	}

	out, err := r.Runner.Run(p.Path, cmd)
	if err != nil {
		return failed(StatusToolFailed, err.Error())
	}

	packages, perr := parseNodeOutdated([]byte(out))
	if perr != nil {
		return failed(StatusParseFailed, perr.Error())
	}
	return ok(packages)
}

// parseNodeOutdated accepts both shapes the Node package managers emit: an
// object keyed by package name (npm, pnpm) or an array of records carrying
// the name inline (yarn, bun). Missing version fields default to "?" for
// current/latest and to current for wanted.
func parseNodeOutdated(data []byte) (map[string]Entry, error) {
	if len(data) == 0 {
		return map[string]Entry{}, nil
	}

	packages := map[string]Entry{}

	var byName map[string]npmOutdatedEntry
	if err := json.Unmarshal(data, &byName); err == nil {
		for name, raw := range byName {
			// npm writes {"error": {...}} to stdout on some
			// failures; a key whose value carries no version
			// fields is that envelope, not a package.
			if raw.Current == "" && raw.Wanted == "" && raw.Latest == "" {
				continue
			}
			packages[name] = normalizeNodeEntry(raw)
		}
		return packages, nil
	}

	var records []npmOutdatedEntry
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unrecognized outdated output shape: %w", err)
	}
	for _, raw := range records {
		if raw.Name == "" {
			continue
		}
		packages[raw.Name] = normalizeNodeEntry(raw)
	}
	return packages, nil
}

func normalizeNodeEntry(raw npmOutdatedEntry) Entry {
	entry := Entry{
		Current: raw.Current,
		Wanted:  raw.Wanted,
		Latest:  raw.Latest,
		Type:    raw.Type,
	}
	if entry.Type == "" {
		entry.Type = raw.DependencyType
	}
	if entry.Current == "" {
		entry.Current = "?"
	}
	if entry.Latest == "" {
		entry.Latest = "?"
	}
	if entry.Wanted == "" {
		entry.Wanted = entry.Current
	}
	return entry
}
