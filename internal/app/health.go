package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/depscout/internal/output"
	"github.com/blackwell-systems/depscout/internal/runner"
	"github.com/blackwell-systems/depscout/internal/scan"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health <project>",
	Short: "Show one project's full health report",
	Long: `Compute a project's dependency health score (0-100) and show the
breakdown: outdated counts, major version jumps, security advisories,
lockfile presence, and recommendations.

The score penalizes outdated dependencies, major version lag, a missing
lockfile, and known security advisories where the ecosystem has an audit
tool (npm, composer, pip-audit).`,
	Example: `  # Health report for one project
  depscout health my-api`,
	Args: cobra.ExactArgs(1),
	RunE: runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	p, err := findProject(cfg, args[0])
	if err != nil {
		return err
	}

	var spinner *output.Spinner
	if isatty.IsTerminal(os.Stdout.Fd()) {
		spinner = output.NewSpinner(fmt.Sprintf("Scoring %s...", p.Name))
		spinner.Start()
	}

	report := scan.New(cfg, runner.New(), nil, nil).Report(p)

	if spinner != nil {
		spinner.Stop()
	}

	fmt.Print(output.RenderHealth(report))
	return nil
}
