package app

import (
	"fmt"

	"github.com/blackwell-systems/depscout/internal/output"
	"github.com/blackwell-systems/depscout/internal/project"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List detected projects and their ecosystems",
	Long: `Discover projects under the configured projects directory and show how
each one was classified: ecosystem, framework and package manager.

Classification is marker-file based (package.json, Cargo.toml, go.mod, ...)
and does not run any ecosystem tooling, so this command is fast and safe to
run anywhere.`,
	Example: `  # List projects under the configured directory
  depscout projects

  # List projects under a specific directory
  depscout projects --projects-dir ~/work`,
	RunE: runProjects,
}

func runProjects(cmd *cobra.Command, args []string) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	root, err := cfg.ResolveProjectsDir()
	if err != nil {
		return err
	}

	projects, err := project.Discover(root)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}

	fmt.Print(output.RenderProjectsTable(projects))
	return nil
}
