package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	cachePath    string
	dbPath       string
	projectsFlag string

	// RootCmd is the root command for depscout
	RootCmd = &cobra.Command{
		Use:   "depscout",
		Short: "Dependency health scanner for multi-language project directories",
		Long: `depscout scans a directory of projects, detects each project's language
ecosystem, asks the ecosystem's native tooling which dependencies are
outdated, and scores every project's dependency health from 0 to 100.

Supported ecosystems: Node.js, Python, Rust, Go, PHP, Ruby, Dart,
Swift and JVM (Gradle).

Quick Start:
  1. depscout projects          # see what gets detected
  2. depscout scan              # full scan, cached for 6 hours
  3. depscout health <project>  # one project in detail
  4. depscout update <project>  # build (or run) a safe update command

Features:
  • Marker-file ecosystem detection with framework identification
  • Native outdated listings normalized across nine tool formats
  • Health scoring with actionable recommendations
  • Safe update commands per ecosystem and update level
  • Background watch mode with periodic rescans

Examples:
  # Scan every project under ~/Projects
  depscout scan

  # Show cached results without rescanning
  depscout status

  # What would updating look like, without running anything
  depscout update my-api --dry-run

  # Keep a scan loop running in the foreground
  depscout watch --interval 30m`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("depscout: dependency health scanner")
			fmt.Println()
			fmt.Println("Run 'depscout scan' to scan your projects directory.")
			fmt.Println("Run 'depscout --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: ~/.depscout/config.json)")
	RootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "cache file path (default: ~/.depscout/cache.json)")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "history database path (default: ~/.depscout/depscout.db)")
	RootCmd.PersistentFlags().StringVar(&projectsFlag, "projects-dir", "", "projects directory (overrides config and DEPSCOUT_PROJECTS_DIR)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2

	// Register subcommands
	RootCmd.AddCommand(projectsCmd)
	RootCmd.AddCommand(scanCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(outdatedCmd)
	RootCmd.AddCommand(healthCmd)
	RootCmd.AddCommand(updateCmd)
	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(historyCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
