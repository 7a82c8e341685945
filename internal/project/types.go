package project

// Ecosystem identifies one supported language/package-manager family.
type Ecosystem string

const (
	Node   Ecosystem = "node"
	Python Ecosystem = "python"
	Rust   Ecosystem = "rust"
	Go     Ecosystem = "go"
	PHP    Ecosystem = "php"
	Ruby   Ecosystem = "ruby"
	Dart   Ecosystem = "dart"
	Swift  Ecosystem = "swift"
	JVM    Ecosystem = "jvm"
)

// Project is the result of classifying one directory. It exists only if at
// least one of its ecosystem's marker files is present; every other field is
// best-effort enrichment and defaults when the manifest is missing or
// malformed.
type Project struct {
	Name            string
	Path            string
	Ecosystem       Ecosystem
	Framework       string // "Unknown" when nothing is detected
	PackageManager  string // varies for Node only; fixed per other ecosystems
	RuntimeVersion  string // declared runtime constraint, e.g. engines.node
	Dependencies    map[string]string
	DevDependencies map[string]string
}

// AllDependencies merges direct and dev dependencies. Direct entries win on
// name collision.
func (p *Project) AllDependencies() map[string]string {
	merged := make(map[string]string, len(p.Dependencies)+len(p.DevDependencies))
	for name, ver := range p.DevDependencies {
		merged[name] = ver
	}
	for name, ver := range p.Dependencies {
		merged[name] = ver
	}
	return merged
}
