package project

// Descriptor holds the static metadata for one ecosystem: the marker files
// that identify it, its default package manager, and the lockfile names the
// health scorer recognizes.
type Descriptor struct {
	Ecosystem      Ecosystem
	DisplayName    string
	Markers        []string
	PackageManager string
	Lockfiles      []string
}

// Registry lists all supported ecosystems in classification priority order.
// The first ecosystem whose marker file exists in a directory wins; a
// directory holding both package.json and Cargo.toml classifies as Node.
var Registry = []Descriptor{
	{
		Ecosystem:      Node,
		DisplayName:    "Node.js",
		Markers:        []string{"package.json"},
		PackageManager: "npm",
		Lockfiles:      []string{"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "bun.lockb", "bun.lock"},
	},
	{
		Ecosystem:      Python,
		DisplayName:    "Python",
		Markers:        []string{"requirements.txt", "pyproject.toml", "Pipfile", "setup.py"},
		PackageManager: "pip",
		Lockfiles:      []string{"poetry.lock", "Pipfile.lock", "uv.lock"},
	},
	{
		Ecosystem:      Rust,
		DisplayName:    "Rust",
		Markers:        []string{"Cargo.toml"},
		PackageManager: "cargo",
		Lockfiles:      []string{"Cargo.lock"},
	},
	{
		Ecosystem:      Go,
		DisplayName:    "Go",
		Markers:        []string{"go.mod"},
		PackageManager: "go",
		Lockfiles:      []string{"go.sum"},
	},
	{
		Ecosystem:      PHP,
		DisplayName:    "PHP",
		Markers:        []string{"composer.json"},
		PackageManager: "composer",
		Lockfiles:      []string{"composer.lock"},
	},
	{
		Ecosystem:      Ruby,
		DisplayName:    "Ruby",
		Markers:        []string{"Gemfile"},
		PackageManager: "bundler",
		Lockfiles:      []string{"Gemfile.lock"},
	},
	{
		Ecosystem:      Dart,
		DisplayName:    "Dart/Flutter",
		Markers:        []string{"pubspec.yaml"},
		PackageManager: "pub",
		Lockfiles:      []string{"pubspec.lock"},
	},
	{
		Ecosystem:      Swift,
		DisplayName:    "Swift",
		Markers:        []string{"Package.swift"},
		PackageManager: "spm",
		Lockfiles:      []string{"Package.resolved"},
	},
	{
		Ecosystem:      JVM,
		DisplayName:    "Kotlin/Java",
		Markers:        []string{"build.gradle", "build.gradle.kts", "pom.xml"},
		PackageManager: "gradle",
		Lockfiles:      []string{"gradle.lockfile"},
	},
}

// Lookup returns the descriptor for an ecosystem tag.
func Lookup(eco Ecosystem) (Descriptor, bool) {
	for _, desc := range Registry {
		if desc.Ecosystem == eco {
			return desc, true
		}
	}
	return Descriptor{}, false
}

// LockfileNames returns every lockfile name across all ecosystems.
func LockfileNames() []string {
	var names []string
	for _, desc := range Registry {
		names = append(names, desc.Lockfiles...)
	}
	return names
}
