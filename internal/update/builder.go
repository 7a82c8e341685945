// Package update builds the exact shell commands that bring a project's
// dependencies forward. It never executes anything; callers hand the command
// to the runner (or just print it for a dry run).
package update

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/depscout/internal/project"
)

// Level controls how aggressive an update command is.
type Level string

const (
	Patch  Level = "patch"
	Minor  Level = "minor"
	Latest Level = "latest"
)

// templates hold the native minor/latest update commands for the ecosystems
// with a single update verb. Node and Python take dedicated paths below.
var templates = map[project.Ecosystem]struct{ minor, latest string }{
	project.Rust:  {"cargo update", "cargo upgrade && cargo update"},
	project.Go:    {"go get -u ./... && go mod tidy", "go get -u ./... && go mod tidy"},
	project.PHP:   {"composer update", "composer update --with-all-dependencies"},
	project.Ruby:  {"bundle update --minor", "bundle update"},
	project.Dart:  {"dart pub upgrade", "dart pub upgrade --major-versions"},
	project.Swift: {"swift package update", "swift package update"},
	project.JVM:   {"gradle useLatestVersions", "gradle useLatestVersions"},
}

// Command returns the shell command that updates a project at the given
// safety level, optionally restricted to a package subset. It is pure and
// deterministic for its inputs.
func Command(p *project.Project, packages []string, level Level) string {
	switch p.Ecosystem {
	case project.Node:
		return nodeCommand(p, packages, level)
	case project.Python:
		return pythonCommand(packages, level)
	}

	tmpl, ok := templates[p.Ecosystem]
	if !ok {
		return ""
	}
	if level == Latest {
		return tmpl.latest
	}
	return tmpl.minor
}

// nodeCommand branches on the detected package manager. pnpm, yarn, and bun
// have native update verbs that honor a package subset and a latest flag.
// npm's own update verb only moves within already-declared semver ranges, so
// the npm path composes npm-check-updates (to rewrite the manifest ranges)
// with a plain install, chained so the install only runs if the bump
// succeeded.
func nodeCommand(p *project.Project, packages []string, level Level) string {
	subset := strings.Join(packages, " ")

	switch p.PackageManager {
	case "pnpm", "bun":
		cmd := p.PackageManager + " update"
		if level == Latest {
			cmd += " --latest"
		}
		if subset != "" {
			cmd += " " + subset
		}
		return cmd
	case "yarn":
		cmd := "yarn upgrade"
		if level == Latest {
			cmd += " --latest"
		}
		if subset != "" {
			cmd += " " + subset
		}
		return cmd
	}

	// npm default: two-step range bump + install.
	ncu := "npx npm-check-updates -u"
	if level != Latest {
		ncu += fmt.Sprintf(" --target %s", targetFor(level))
	}
	if subset != "" {
		ncu += fmt.Sprintf(" --filter %q", subset)
	}
	return ncu + " && npm install"
}

func targetFor(level Level) string {
	if level == Patch {
		return "patch"
	}
	return "minor"
}

// pythonCommand upgrades exactly the named packages, or everything in the
// requirements manifest when no subset is given.
func pythonCommand(packages []string, level Level) string {
	if len(packages) > 0 {
		return "pip3 install --upgrade " + strings.Join(packages, " ")
	}
	return "pip3 install --upgrade -r requirements.txt"
}
