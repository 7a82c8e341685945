package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/depscout/internal/output"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	scanQuiet bool

	scanCmd = &cobra.Command{
		Use:   "scan",
		Short: "Scan all projects and refresh the health snapshot",
		Long: `Scan every project under the projects directory: classify it, ask its
ecosystem tooling for outdated dependencies, run the security audit where
one exists, and compute a health score.

Results are written to the snapshot cache (valid for 6 hours) and appended
to the scan history database. Missing tools are not errors: a project whose
toolchain is not installed simply reports no outdated dependencies.

A full scan shells out to package managers and can take a few minutes for
large project directories.`,
		Example: `  # Scan the configured projects directory
  depscout scan

  # Scan quietly (suppress progress and table output)
  depscout scan --quiet`,
		RunE: runScan,
	}
)

func init() {
	scanCmd.Flags().BoolVar(&scanQuiet, "quiet", false, "suppress output")
}

func runScan(cmd *cobra.Command, args []string) error {
	scanner, history, err := getScanner()
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
	}

	showProgress := !scanQuiet && isatty.IsTerminal(os.Stdout.Fd())
	var bar *output.ProgressBar
	scanner.OnProject = func(name string, index, total int) {
		if !showProgress {
			return
		}
		if bar == nil {
			bar = output.NewProgress(total)
		}
		bar.Step("scanning " + name)
	}

	entries, err := scanner.Run()
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	if !scanQuiet {
		fmt.Print(output.RenderScanTable(entries))
	}
	return nil
}
