package outdated

import (
	"regexp"
	"strings"

	"github.com/blackwell-systems/depscout/internal/project"
)

// bundleOutdatedLine matches the free-text rows bundler prints:
//
//	rails (newest 7.1.3, installed 7.0.8, requested ~> 7.0)
var bundleOutdatedLine = regexp.MustCompile(`^\s*([\w.-]+) \(newest ([^,]+), installed ([^,)]+)`)

func (r *Resolver) resolveRuby(p *project.Project) *Result {
	if !r.Runner.LookPath("bundle") {
		return failed(StatusToolAbsent, "bundler not installed")
	}

	// bundle outdated exits 1 when anything is outdated; the runner
	// treats a non-zero exit with stdout as success.
	out, err := r.Runner.Run(p.Path, "bundle outdated")
	if err != nil {
		return failed(StatusToolFailed, err.Error())
	}

	return ok(parseBundleOutdated(out))
}

// parseBundleOutdated extracts gem rows by pattern match and skips everything
// else (headers, blank lines, group banners).
func parseBundleOutdated(out string) map[string]Entry {
	packages := map[string]Entry{}
	for _, line := range strings.Split(out, "\n") {
		m := bundleOutdatedLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		packages[m[1]] = Entry{
			Current: strings.TrimSpace(m[3]),
			Wanted:  strings.TrimSpace(m[2]),
			Latest:  strings.TrimSpace(m[2]),
		}
	}
	return packages
}
