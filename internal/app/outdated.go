package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/depscout/internal/outdated"
	"github.com/blackwell-systems/depscout/internal/output"
	"github.com/blackwell-systems/depscout/internal/runner"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var outdatedCmd = &cobra.Command{
	Use:   "outdated <project>",
	Short: "List a project's outdated dependencies, grouped by family",
	Long: `Run the project's native outdated check (npm outdated, cargo outdated,
pip list --outdated, ...) and show the normalized result grouped by
package family, with major version jumps highlighted.

Packages listed in the config's ignoredPackages are filtered out.`,
	Example: `  # Outdated dependencies of one project
  depscout outdated my-api`,
	Args: cobra.ExactArgs(1),
	RunE: runOutdated,
}

func runOutdated(cmd *cobra.Command, args []string) error {
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
		spinner = output.NewSpinner(fmt.Sprintf("Checking %s dependencies...", p.Name))
		spinner.Start()
	}

	res := outdated.New(runner.New()).Resolve(p)

	if spinner != nil {
		spinner.Stop()
	}

	switch res.Status {
	case outdated.StatusToolAbsent:
		fmt.Printf("%s: %s toolchain not installed (%s); cannot check.\n", p.Name, p.Ecosystem, res.Reason)
		return nil
	case outdated.StatusToolFailed, outdated.StatusParseFailed:
		fmt.Fprintf(os.Stderr, "depscout: %s: outdated check degraded: %s\n", p.Name, res.Reason)
	}

	packages := res.Packages
	if len(cfg.IgnoredPackages) > 0 {
		filtered := make(map[string]outdated.Entry, len(packages))
		for name, entry := range packages {
			if !cfg.IsIgnored(name) {
				filtered[name] = entry
			}
		}
		packages = filtered
	}

	fmt.Print(output.RenderOutdated(p.Name, outdated.GroupByFamily(packages)))
	return nil
}
