package outdated

import "testing"

func TestGroupByFamily(t *testing.T) {
	packages := map[string]Entry{
		"react":         {Current: "17.0.2", Latest: "18.2.0"},
		"react-dom":     {Current: "17.0.2", Latest: "18.2.0"},
		"eslint":        {Current: "8.0.0", Latest: "9.0.0"},
		"@types/node":   {Current: "20.0.0", Latest: "22.0.0"},
		"lodash":        {Current: "4.17.20", Latest: "4.17.21"},
		"webpack":       {Current: "5.89.0", Latest: "5.91.0"},
		"@angular/core": {Current: "16.0.0", Latest: "17.0.0"},
	}

	grouped := GroupByFamily(packages)

	if len(grouped.Buckets["React"]) != 2 {
		t.Errorf("expected 2 React packages, got %v", grouped.Buckets["React"])
	}
	if len(grouped.Buckets["Angular"]) != 1 {
		t.Errorf("expected 1 Angular package, got %v", grouped.Buckets["Angular"])
	}
	if len(grouped.Buckets["Other"]) != 1 || grouped.Buckets["Other"][0].Name != "lodash" {
		t.Errorf("expected lodash in Other, got %v", grouped.Buckets["Other"])
	}
	if len(grouped.Buckets["Types"]) != 1 {
		t.Errorf("expected @types/node in Types, got %v", grouped.Buckets["Types"])
	}

	// Bucket order follows first insertion, and buckets and order agree.
	if len(grouped.Order) != len(grouped.Buckets) {
		t.Errorf("order names %d buckets, map has %d", len(grouped.Order), len(grouped.Buckets))
	}
	seen := map[string]bool{}
	for _, name := range grouped.Order {
		if seen[name] {
			t.Errorf("bucket %s listed twice in Order", name)
		}
		seen[name] = true
		if _, ok := grouped.Buckets[name]; !ok {
			t.Errorf("bucket %s in Order but missing from Buckets", name)
		}
	}
}

func TestGroupByFamily_FirstMatchWins(t *testing.T) {
	// next matches the React family pattern before anything generic.
	grouped := GroupByFamily(map[string]Entry{
		"next": {Current: "13.0.0", Latest: "14.0.0"},
	})
	if len(grouped.Buckets["React"]) != 1 {
		t.Errorf("expected next in React bucket, got %v", grouped.Buckets)
	}
}

func TestGroupByFamily_Empty(t *testing.T) {
	grouped := GroupByFamily(nil)
	if len(grouped.Order) != 0 || len(grouped.Buckets) != 0 {
		t.Errorf("expected empty grouping, got %v", grouped)
	}
}
