// Package output renders terminal tables and progress indicators for
// depscout. All tables are plain ASCII; ANSI color is applied only when
// stdout is a TTY and NO_COLOR is unset.
package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/depscout/internal/cache"
	"github.com/blackwell-systems/depscout/internal/health"
	"github.com/blackwell-systems/depscout/internal/outdated"
	"github.com/blackwell-systems/depscout/internal/project"
	"github.com/blackwell-systems/depscout/internal/store"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// scoreColor maps a health score onto the usual traffic-light colors.
func scoreColor(score int) string {
	switch {
	case score >= 80:
		return colorGreen
	case score >= 50:
		return colorYellow
	default:
		return colorRed
	}
}

// RenderProjectsTable renders the discovered projects with their detected
// ecosystem and framework.
func RenderProjectsTable(projects []*project.Project) string {
	if len(projects) == 0 {
		return "No projects found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-24s %-10s %-16s %-10s %s\n",
		"Project", "Ecosystem", "Framework", "Manager", "Path"))
	sb.WriteString(strings.Repeat("─", 88))
	sb.WriteString("\n")

	for _, p := range projects {
		manager := p.PackageManager
		if manager == "" {
			manager = "—"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-10s %-16s %-10s %s\n",
			truncate(p.Name, 24),
			p.Ecosystem,
			truncate(p.Framework, 16),
			manager,
			p.Path))
	}

	return sb.String()
}

// RenderScanTable renders a scan snapshot: one row per project with its
// outdated counts and colorized health score. Rows keep the order given by
// the caller (cache order, which is discovery order).
func RenderScanTable(entries []cache.Entry) string {
	if len(entries) == 0 {
		return "No projects scanned.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-24s %-10s %-16s %9s %6s %9s %7s\n",
		"Project", "Ecosystem", "Framework", "Outdated", "Major", "Security", "Score"))
	sb.WriteString(strings.Repeat("─", 88))
	sb.WriteString("\n")

	for _, e := range entries {
		scoreStr := fmt.Sprintf("%d/100", e.Score)
		sb.WriteString(fmt.Sprintf("%-24s %-10s %-16s %9d %6d %9d %s\n",
			truncate(e.Name, 24),
			e.Ecosystem,
			truncate(e.Framework, 16),
			e.Outdated,
			e.Major,
			e.Security,
			colorize(scoreColor(e.Score), fmt.Sprintf("%7s", scoreStr))))
	}

	return sb.String()
}

// RenderOutdated renders an outdated mapping grouped by package family.
// Major version jumps are highlighted; entries already at their latest
// version (pinned snapshots such as Swift resolved files) show as current.
func RenderOutdated(projectName string, grouped *outdated.Grouped) string {
	if grouped == nil || len(grouped.Order) == 0 {
		return fmt.Sprintf("%s: all dependencies up to date.\n", projectName)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", projectName))

	for _, bucket := range grouped.Order {
		entries := grouped.Buckets[bucket]
		if len(entries) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n  %s\n", bucket))
		for _, ge := range entries {
			e := ge.Entry
			label := ""
			switch {
			case e.Current == e.Latest:
				label = colorize(colorGray, "current")
			case outdated.IsMajorUpdate(e.Current, e.Latest):
				label = colorize(colorRed, "major")
			default:
				label = colorize(colorYellow, "minor")
			}
			sb.WriteString(fmt.Sprintf("    %-32s %-12s → %-12s %s\n",
				truncate(ge.Name, 32), e.Current, e.Latest, label))
		}
	}

	return sb.String()
}

// RenderHealth renders one project's full health report with its
// recommendations.
func RenderHealth(r *health.Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Project:   %s (%s)\n", r.Project, r.Ecosystem))
	if r.Framework != "" && r.Framework != "Unknown" {
		if r.FrameworkVersion != "" {
			sb.WriteString(fmt.Sprintf("Framework: %s %s\n", r.Framework, r.FrameworkVersion))
		} else {
			sb.WriteString(fmt.Sprintf("Framework: %s\n", r.Framework))
		}
	}
	sb.WriteString(fmt.Sprintf("Score:     %s\n",
		colorize(scoreColor(r.Score), fmt.Sprintf("%d/100", r.Score))))

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Outdated:  %d\n", r.Outdated))
	sb.WriteString(fmt.Sprintf("  Major:     %d\n", r.Major))
	sb.WriteString(fmt.Sprintf("  Security:  %d\n", r.Security))
	lockfile := "yes"
	if !r.HasLockfile {
		lockfile = colorize(colorRed, "missing")
	}
	sb.WriteString(fmt.Sprintf("  Lockfile:  %s\n", lockfile))

	if len(r.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, rec := range r.Recommendations {
			sb.WriteString(fmt.Sprintf("  • %s\n", rec))
		}
	}

	return sb.String()
}

// RenderHistoryTable renders past scans, newest first.
func RenderHistoryTable(scans []store.Scan) string {
	if len(scans) == 0 {
		return "No scan history recorded.\n"
	}

	sorted := make([]store.Scan, len(scans))
	copy(sorted, scans)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartedAt.After(sorted[j].StartedAt)
	})

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-20s %s\n", "ID", "Started", "Projects"))
	sb.WriteString(strings.Repeat("─", 44))
	sb.WriteString("\n")

	for _, s := range sorted {
		sb.WriteString(fmt.Sprintf("%-5d %-20s %d\n",
			s.ID, formatRelativeTime(s.StartedAt), s.ProjectCount))
	}

	return sb.String()
}

// formatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	case diff < 365*24*time.Hour:
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
