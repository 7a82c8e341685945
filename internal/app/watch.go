package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackwell-systems/depscout/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	watchInterval time.Duration

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Keep scanning projects on an interval",
		Long: `Run depscout in the foreground, scanning all projects on a fixed
interval (hourly by default) and whenever a project is added to or removed
from the projects directory.

Each pass refreshes the snapshot cache and appends to scan history, so
'depscout status' always shows recent data while the watcher runs.

Press Ctrl+C to stop.`,
		Example: `  # Scan hourly
  depscout watch

  # Scan every 30 minutes
  depscout watch --interval 30m`,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", watcher.DefaultInterval, "time between scans")
}

func runWatch(cmd *cobra.Command, args []string) error {
	scanner, history, err := getScanner()
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
	}

	w, err := watcher.New(scanner, watchInterval)
	if err != nil {
		return err
	}

	fmt.Printf("depscout watching (interval %s). Press Ctrl+C to stop.\n", watchInterval)
	if err := w.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nStopping...")
	w.Stop()
	return nil
}
