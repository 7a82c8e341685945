package app

import (
	"fmt"

	"github.com/blackwell-systems/depscout/internal/output"
	"github.com/spf13/cobra"
)

var (
	historyLimit   int
	historyScanID  int64
	historyProject string

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Browse past scan results",
		Long: `Show past scans from the history database. By default lists recent
scans; use --scan to show one scan's full results, or --project to follow
one project's scores over time.`,
		Example: `  # Recent scans
  depscout history

  # Every project from scan 12
  depscout history --scan 12

  # One project's trajectory
  depscout history --project my-api`,
		RunE: runHistory,
	}
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum rows to show")
	historyCmd.Flags().Int64Var(&historyScanID, "scan", 0, "show results for one scan ID")
	historyCmd.Flags().StringVar(&historyProject, "project", "", "show one project's history")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := getHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	if historyScanID != 0 {
		entries, err := db.ScanResults(historyScanID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Printf("No results for scan %d.\n", historyScanID)
			return nil
		}
		fmt.Print(output.RenderScanTable(entries))
		return nil
	}

	if historyProject != "" {
		entries, err := db.ProjectHistory(historyProject, historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Printf("No history for project %q.\n", historyProject)
			return nil
		}
		fmt.Print(output.RenderScanTable(entries))
		return nil
	}

	scans, err := db.RecentScans(historyLimit)
	if err != nil {
		return err
	}
	fmt.Print(output.RenderHistoryTable(scans))
	return nil
}
