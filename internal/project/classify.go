package project

import (
	"os"
	"path/filepath"
	"strings"
)

// frameworkFile maps a config file's presence to a framework name. Glob
// entries (a leading "*") match by extension against the directory listing.
type frameworkFile struct {
	pattern   string
	framework string
}

// frameworkFiles is checked in order; the first hit wins. Meta-frameworks
// come before the libraries they wrap.
var frameworkFiles = []frameworkFile{
	{"next.config.js", "Next.js"},
	{"next.config.mjs", "Next.js"},
	{"next.config.ts", "Next.js"},
	{"nuxt.config.js", "Nuxt"},
	{"nuxt.config.ts", "Nuxt"},
	{"angular.json", "Angular"},
	{"svelte.config.js", "Svelte"},
	{"astro.config.mjs", "Astro"},
	{"remix.config.js", "Remix"},
	{"gatsby-config.js", "Gatsby"},
	{"vue.config.js", "Vue"},
	{"manage.py", "Django"},
	{"artisan", "Laravel"},
	{"*.xcodeproj", "Xcode"},
	{"*.xcworkspace", "Xcode"},
}

// nodeFrameworkDep maps a dependency key in package.json to a framework.
// Ordered specific-before-generic: next must match before react, nuxt before
// vue, react-native before react.
type nodeFrameworkDep struct {
	dep       string
	framework string
}

var nodeFrameworkDeps = []nodeFrameworkDep{
	{"next", "Next.js"},
	{"nuxt", "Nuxt"},
	{"@angular/core", "Angular"},
	{"svelte", "Svelte"},
	{"astro", "Astro"},
	{"@remix-run/react", "Remix"},
	{"gatsby", "Gatsby"},
	{"react-native", "React Native"},
	{"expo", "Expo"},
	{"electron", "Electron"},
	{"vue", "Vue"},
	{"react", "React"},
	{"express", "Express"},
	{"fastify", "Fastify"},
}

// nodeLockfiles maps lockfile presence to a Node package manager, checked in
// priority order. npm is the fallback when no lockfile is present.
var nodeLockfiles = []struct {
	file string
	pm   string
}{
	{"bun.lockb", "bun"},
	{"bun.lock", "bun"},
	{"pnpm-lock.yaml", "pnpm"},
	{"yarn.lock", "yarn"},
	{"package-lock.json", "npm"},
}

// Classify inspects dir and returns a Project, or nil when no ecosystem
// marker file is present. Classification success depends only on marker-file
// presence; a malformed manifest degrades the enrichment fields (name,
// dependency maps) to defaults but never fails classification.
func Classify(dir string) *Project {
	desc, ok := detectEcosystem(dir)
	if !ok {
		return nil
	}

	p := &Project{
		Name:           filepath.Base(dir),
		Path:           dir,
		Ecosystem:      desc.Ecosystem,
		Framework:      "Unknown",
		PackageManager: desc.PackageManager,
	}

	if desc.Ecosystem == Node {
		p.PackageManager = detectNodePackageManager(dir)
	}

	enrichFromManifest(p)

	if fw := detectFramework(dir, p); fw != "" {
		p.Framework = fw
	}

	return p
}

func detectEcosystem(dir string) (Descriptor, bool) {
	for _, desc := range Registry {
		for _, marker := range desc.Markers {
			if fileExists(filepath.Join(dir, marker)) {
				return desc, true
			}
		}
	}
	return Descriptor{}, false
}

func detectNodePackageManager(dir string) string {
	for _, lf := range nodeLockfiles {
		if fileExists(filepath.Join(dir, lf.file)) {
			return lf.pm
		}
	}
	return "npm"
}

func detectFramework(dir string, p *Project) string {
	// Pass 1: known config files, exact name or glob-by-extension.
	for _, ff := range frameworkFiles {
		if strings.HasPrefix(ff.pattern, "*") {
			matches, err := filepath.Glob(filepath.Join(dir, ff.pattern))
			if err == nil && len(matches) > 0 {
				return ff.framework
			}
			continue
		}
		if fileExists(filepath.Join(dir, ff.pattern)) {
			return ff.framework
		}
	}

	// Pass 2: Node only — sniff the merged dependency maps.
	if p.Ecosystem == Node {
		deps := p.AllDependencies()
		for _, fd := range nodeFrameworkDeps {
			if _, ok := deps[fd.dep]; ok {
				return fd.framework
			}
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
