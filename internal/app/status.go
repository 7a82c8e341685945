package app

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/depscout/internal/output"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cached scan snapshot",
	Long: `Show the most recent scan results from the snapshot cache without
rescanning. The cache expires after 6 hours; an expired or missing
snapshot just means a scan is due.`,
	Example: `  # Show cached results
  depscout status`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cacheStore, err := getCache()
	if err != nil {
		return err
	}

	file, err := cacheStore.Read()
	if err != nil {
		return err
	}
	if file == nil {
		fmt.Println("No recent scan results. Run 'depscout scan' to scan your projects.")
		return nil
	}

	age := time.Since(file.UpdatedAt).Round(time.Minute)
	fmt.Printf("Snapshot from %s (%s old)\n\n", file.UpdatedAt.Local().Format("2006-01-02 15:04"), age)
	fmt.Print(output.RenderScanTable(file.Projects))
	return nil
}
