package outdated

import (
	"regexp"
	"sort"
)

// groupPattern maps package names to a named bucket. Patterns are applied in
// order and the first match wins, so framework families sit above the generic
// tooling buckets.
type groupPattern struct {
	name    string
	pattern *regexp.Regexp
}

var groupPatterns = []groupPattern{
	{"React", regexp.MustCompile(`^(react|react-dom|@react-|next$)`)},
	{"Vue", regexp.MustCompile(`^(vue|@vue/|nuxt$|vuex$|vue-router$)`)},
	{"Angular", regexp.MustCompile(`^@angular/`)},
	{"Svelte", regexp.MustCompile(`^(svelte|@sveltejs/)`)},
	{"Types", regexp.MustCompile(`^@types/`)},
	{"Build Tools", regexp.MustCompile(`^(webpack|vite$|rollup|esbuild|parcel|turbo$|babel|@babel/)`)},
	{"Testing", regexp.MustCompile(`^(jest$|vitest$|mocha$|chai$|cypress$|playwright$|@testing-library/)`)},
	{"Linting", regexp.MustCompile(`^(eslint|prettier|@typescript-eslint/|stylelint)`)},
	{"CSS", regexp.MustCompile(`^(tailwindcss$|postcss|sass$|less$|autoprefixer$)`)},
}

// GroupedEntry pairs a package name with its outdated entry inside a bucket.
type GroupedEntry struct {
	Name  string
	Entry Entry
}

// Grouped is a partition of an outdated mapping. Order lists the bucket names
// by first insertion, not alphabetically; packages matching no pattern land
// in "Other".
type Grouped struct {
	Order   []string
	Buckets map[string][]GroupedEntry
}

// GroupByFamily partitions packages into named buckets by ordered regex
// matching over package names, first match wins. Package names are visited in
// sorted order so the partition is deterministic.
func GroupByFamily(packages map[string]Entry) *Grouped {
	names := make([]string, 0, len(packages))
	for name := range packages {
		names = append(names, name)
	}
	sort.Strings(names)

	grouped := &Grouped{Buckets: map[string][]GroupedEntry{}}
	for _, name := range names {
		bucket := "Other"
		for _, gp := range groupPatterns {
			if gp.pattern.MatchString(name) {
				bucket = gp.name
				break
			}
		}
		if _, seen := grouped.Buckets[bucket]; !seen {
			grouped.Order = append(grouped.Order, bucket)
		}
		grouped.Buckets[bucket] = append(grouped.Buckets[bucket], GroupedEntry{Name: name, Entry: packages[name]})
	}
	return grouped
}
