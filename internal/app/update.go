package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/depscout/internal/cache"
	"github.com/blackwell-systems/depscout/internal/output"
	"github.com/blackwell-systems/depscout/internal/project"
	"github.com/blackwell-systems/depscout/internal/update"
	"github.com/spf13/cobra"
)

var (
	updateLevel  string
	updateDryRun bool
	updateAuto   bool

	updateCmd = &cobra.Command{
		Use:   "update [project] [packages...]",
		Short: "Run the safe update command for a project",
		Long: `Build the ecosystem-appropriate update command for a project and run it.
Pass package names to restrict the update to those packages (where the
ecosystem's tooling supports it).

Update levels:
  • patch  - bug-fix releases only
  • minor  - backwards-compatible releases (default)
  • latest - everything, including major versions

With --dry-run the command is printed but not executed. With --auto, every
project listed under autoUpdate in the config gets a minor-level update,
followed by a rescan of that project so the snapshot stays accurate.`,
		Example: `  # Minor-level update for one project
  depscout update my-api

  # Only specific packages, all the way to latest
  depscout update my-api react react-dom --level latest

  # Show the command without running it
  depscout update my-api --dry-run

  # Update every autoUpdate project from the config
  depscout update --auto`,
		RunE: runUpdate,
	}
)

func init() {
	updateCmd.Flags().StringVar(&updateLevel, "level", "minor", "update level: patch, minor or latest")
	updateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "print the update command without running it")
	updateCmd.Flags().BoolVar(&updateAuto, "auto", false, "update all autoUpdate projects from the config")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	level := update.Level(updateLevel)
	switch level {
	case update.Patch, update.Minor, update.Latest:
	default:
		return fmt.Errorf("invalid level %q: must be patch, minor or latest", updateLevel)
	}

	cfg, err := getConfig()
	if err != nil {
		return err
	}

	if updateAuto {
		if len(args) > 0 {
			return fmt.Errorf("--auto takes no project argument")
		}
		return runAutoUpdate()
	}

	if len(args) == 0 {
		return fmt.Errorf("project name required (or use --auto)")
	}

	p, err := findProject(cfg, args[0])
	if err != nil {
		return err
	}

	command := update.Command(p, args[1:], level)
	if command == "" {
		return fmt.Errorf("no update command available for %s projects", p.Ecosystem)
	}

	if updateDryRun {
		fmt.Printf("%s $ %s\n", p.Path, command)
		return nil
	}

	return updateProject(p, command)
}

// runAutoUpdate applies a minor-level update to every configured autoUpdate
// project and refreshes each one's cache entry. Per-project failures are
// reported and skipped so one broken project does not block the rest.
func runAutoUpdate() error {
	scanner, history, err := getScanner()
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
	}

	if len(scanner.Config.AutoUpdate) == 0 {
		fmt.Println("No autoUpdate projects configured.")
		return nil
	}

	var failures int
	for _, name := range scanner.Config.AutoUpdate {
		p, err := findProject(scanner.Config, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "depscout: %v\n", err)
			failures++
			continue
		}

		command := update.Command(p, nil, update.Minor)
		if command == "" {
			fmt.Fprintf(os.Stderr, "depscout: %s: no update command for %s projects\n", name, p.Ecosystem)
			failures++
			continue
		}

		if updateDryRun {
			fmt.Printf("%s $ %s\n", p.Path, command)
			continue
		}

		fmt.Printf("Updating %s...\n", name)
		if _, err := scanner.Runner.Run(p.Path, command); err != nil {
			fmt.Fprintf(os.Stderr, "depscout: %s: update failed: %v\n", name, err)
			failures++
			continue
		}

		// Rescan so the snapshot reflects the post-update state.
		entry := scanner.ScanProject(p)
		if scanner.Cache != nil {
			if err := scanner.Cache.Replace(entry); err != nil {
				fmt.Fprintf(os.Stderr, "depscout: %s: failed to refresh cache: %v\n", name, err)
			}
		}
		fmt.Printf("%s updated, score now %d/100\n", name, entry.Score)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d autoUpdate projects failed", failures, len(scanner.Config.AutoUpdate))
	}
	return nil
}

// updateProject runs one update command and refreshes the project's cache
// entry.
func updateProject(p *project.Project, command string) error {
	scanner, history, err := getScanner()
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
	}

	fmt.Printf("Running: %s\n", command)
	out, err := scanner.Runner.Run(p.Path, command)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	if out != "" {
		fmt.Print(out)
	}

	entry := scanner.ScanProject(p)
	if scanner.Cache != nil {
		if err := scanner.Cache.Replace(entry); err != nil {
			fmt.Fprintf(os.Stderr, "depscout: failed to refresh cache: %v\n", err)
		}
	}

	fmt.Print(output.RenderScanTable([]cache.Entry{entry}))
	return nil
}
