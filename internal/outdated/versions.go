package outdated

import "strings"

// IsMajorUpdate reports whether moving from current to latest crosses a major
// version boundary. It strips any leading non-digit characters (prefixes like
// "v", range operators like "^" or "~"), takes the token before the first
// '.', and compares the tokens as strings.
//
// This is a heuristic, not semver parsing: when either side has no leading
// numeric token ("abc", date-less tags) it returns false — a change it cannot
// classify is not flagged as major.
func IsMajorUpdate(current, latest string) bool {
	cur := majorToken(current)
	lat := majorToken(latest)
	if cur == "" || lat == "" {
		return false
	}
	return cur != lat
}

func majorToken(version string) string {
	start := strings.IndexFunc(version, func(r rune) bool {
		return r >= '0' && r <= '9'
	})
	if start < 0 {
		return ""
	}
	version = version[start:]
	if dot := strings.IndexByte(version, '.'); dot >= 0 {
		version = version[:dot]
	}
	return version
}
