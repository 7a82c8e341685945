package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

// enrichFromManifest fills in the display name, runtime constraint, and
// declared dependency maps from the ecosystem's manifest. Every parse path
// fails soft: a missing or malformed manifest leaves the defaults in place.
func enrichFromManifest(p *Project) {
	switch p.Ecosystem {
	case Node:
		enrichNode(p)
	case Python:
		enrichPython(p)
	case Rust:
		enrichRust(p)
	case Go:
		enrichGo(p)
	case PHP:
		enrichPHP(p)
	case Ruby:
		enrichRuby(p)
	case Dart:
		enrichDart(p)
	case Swift:
		enrichSwift(p)
	}
}

type packageJSON struct {
	Name    string `json:"name"`
	Engines struct {
		Node string `json:"node"`
	} `json:"engines"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func enrichNode(p *Project) {
	data, err := os.ReadFile(filepath.Join(p.Path, "package.json"))
	if err != nil {
		return
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return
	}
	if pkg.Name != "" {
		p.Name = pkg.Name
	}
	p.RuntimeVersion = pkg.Engines.Node
	p.Dependencies = pkg.Dependencies
	p.DevDependencies = pkg.DevDependencies
}

// requirementLine matches "name==1.2.3", "name>=1.0", or a bare name.
var requirementLine = regexp.MustCompile(`^([A-Za-z0-9._-]+)\s*(?:([<>=!~]+)\s*(\S+))?`)

type pyProject struct {
	Project struct {
		Name           string   `toml:"name"`
		RequiresPython string   `toml:"requires-python"`
		Dependencies   []string `toml:"dependencies"`
	} `toml:"project"`
}

func enrichPython(p *Project) {
	// pyproject.toml carries the project name and PEP 621 dependencies.
	if data, err := os.ReadFile(filepath.Join(p.Path, "pyproject.toml")); err == nil {
		var proj pyProject
		if err := toml.Unmarshal(data, &proj); err == nil {
			if proj.Project.Name != "" {
				p.Name = proj.Project.Name
			}
			p.RuntimeVersion = proj.Project.RequiresPython
			for _, spec := range proj.Project.Dependencies {
				if name, ver := parseRequirement(spec); name != "" {
					if p.Dependencies == nil {
						p.Dependencies = make(map[string]string)
					}
					p.Dependencies[name] = ver
				}
			}
		}
	}

	// requirements.txt lists the pinned direct dependencies.
	data, err := os.ReadFile(filepath.Join(p.Path, "requirements.txt"))
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if name, ver := parseRequirement(line); name != "" {
			if p.Dependencies == nil {
				p.Dependencies = make(map[string]string)
			}
			p.Dependencies[name] = ver
		}
	}
}

func parseRequirement(spec string) (name, version string) {
	if idx := strings.Index(spec, ";"); idx >= 0 {
		spec = spec[:idx]
	}
	if idx := strings.Index(spec, "["); idx > 0 {
		if end := strings.Index(spec, "]"); end > idx {
			spec = spec[:idx] + spec[end+1:]
		}
	}
	m := requirementLine.FindStringSubmatch(strings.TrimSpace(spec))
	if m == nil || m[1] == "" {
		return "", ""
	}
	return m[1], m[3]
}

type cargoTOML struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Dependencies    map[string]toml.Primitive `toml:"dependencies"`
	DevDependencies map[string]toml.Primitive `toml:"dev-dependencies"`
}

func enrichRust(p *Project) {
	data, err := os.ReadFile(filepath.Join(p.Path, "Cargo.toml"))
	if err != nil {
		return
	}
	var manifest cargoTOML
	meta, err := toml.Decode(string(data), &manifest)
	if err != nil {
		return
	}
	if manifest.Package.Name != "" {
		p.Name = manifest.Package.Name
	}
	p.Dependencies = decodeCargoDeps(meta, manifest.Dependencies)
	p.DevDependencies = decodeCargoDeps(meta, manifest.DevDependencies)
}

// decodeCargoDeps handles both dependency styles: `serde = "1.0"` and
// `serde = { version = "1.0", features = [...] }`.
func decodeCargoDeps(meta toml.MetaData, raw map[string]toml.Primitive) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	deps := make(map[string]string, len(raw))
	for name, prim := range raw {
		var version string
		if err := meta.PrimitiveDecode(prim, &version); err == nil {
			deps[name] = version
			continue
		}
		var detailed struct {
			Version string `toml:"version"`
		}
		if err := meta.PrimitiveDecode(prim, &detailed); err == nil {
			deps[name] = detailed.Version
			continue
		}
		deps[name] = ""
	}
	return deps
}

func enrichGo(p *Project) {
	path := filepath.Join(p.Path, "go.mod")
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	mod, err := modfile.Parse(path, data, nil)
	if err != nil {
		return
	}
	if mod.Module != nil && mod.Module.Mod.Path != "" {
		p.Name = filepath.Base(mod.Module.Mod.Path)
	}
	if mod.Go != nil {
		p.RuntimeVersion = mod.Go.Version
	}
	for _, req := range mod.Require {
		if req.Indirect {
			continue
		}
		if p.Dependencies == nil {
			p.Dependencies = make(map[string]string)
		}
		p.Dependencies[req.Mod.Path] = req.Mod.Version
	}
}

type composerJSON struct {
	Name       string            `json:"name"`
	Require    map[string]string `json:"require"`
	RequireDev map[string]string `json:"require-dev"`
}

func enrichPHP(p *Project) {
	data, err := os.ReadFile(filepath.Join(p.Path, "composer.json"))
	if err != nil {
		return
	}
	var pkg composerJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return
	}
	if pkg.Name != "" {
		p.Name = pkg.Name
	}
	for name, ver := range pkg.Require {
		// The "php" entry is the runtime constraint, not a dependency.
		if name == "php" {
			p.RuntimeVersion = ver
			continue
		}
		if p.Dependencies == nil {
			p.Dependencies = make(map[string]string)
		}
		p.Dependencies[name] = ver
	}
	p.DevDependencies = pkg.RequireDev
}

// gemfileLine matches entries like: gem 'rails', '~> 7.1'
var gemfileLine = regexp.MustCompile(`^\s*gem\s+['"]([^'"]+)['"](?:\s*,\s*['"]([^'"]+)['"])?`)

func enrichRuby(p *Project) {
	data, err := os.ReadFile(filepath.Join(p.Path, "Gemfile"))
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		m := gemfileLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if p.Dependencies == nil {
			p.Dependencies = make(map[string]string)
		}
		p.Dependencies[m[1]] = m[2]
	}
}

type pubspecYAML struct {
	Name        string `yaml:"name"`
	Environment struct {
		SDK string `yaml:"sdk"`
	} `yaml:"environment"`
	Dependencies    map[string]any `yaml:"dependencies"`
	DevDependencies map[string]any `yaml:"dev_dependencies"`
}

func enrichDart(p *Project) {
	data, err := os.ReadFile(filepath.Join(p.Path, "pubspec.yaml"))
	if err != nil {
		return
	}
	var pubspec pubspecYAML
	if err := yaml.Unmarshal(data, &pubspec); err != nil {
		return
	}
	if pubspec.Name != "" {
		p.Name = pubspec.Name
	}
	p.RuntimeVersion = pubspec.Environment.SDK
	p.Dependencies = flattenPubspecDeps(pubspec.Dependencies)
	p.DevDependencies = flattenPubspecDeps(pubspec.DevDependencies)
}

// flattenPubspecDeps keeps string constraints and blanks out structured
// entries (git/path/sdk dependencies have no single version).
func flattenPubspecDeps(raw map[string]any) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	deps := make(map[string]string, len(raw))
	for name, val := range raw {
		if s, ok := val.(string); ok {
			deps[name] = s
		} else {
			deps[name] = ""
		}
	}
	return deps
}

// swiftPackageName matches the name argument of the Package initializer.
var swiftPackageName = regexp.MustCompile(`name:\s*"([^"]+)"`)

func enrichSwift(p *Project) {
	data, err := os.ReadFile(filepath.Join(p.Path, "Package.swift"))
	if err != nil {
		return
	}
	if m := swiftPackageName.FindSubmatch(data); m != nil {
		p.Name = string(m[1])
	}
}
