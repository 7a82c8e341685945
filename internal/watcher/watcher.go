// Package watcher runs the background scan loop: a full scan on a fixed
// interval, plus an early rescan when the projects directory itself changes
// (a project added or removed).
package watcher

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/blackwell-systems/depscout/internal/scan"
)

// DefaultInterval is how often the full scan repeats.
const DefaultInterval = time.Hour

// debounceWindow batches filesystem events before triggering a rescan, so a
// git clone touching the projects root does not fire one scan per file.
const debounceWindow = 30 * time.Second

// Watcher owns the periodic scan loop.
type Watcher struct {
	scanner  *scan.Scanner
	interval time.Duration

	stopCh   chan struct{}
	wg       sync.WaitGroup
	ticker   *time.Ticker
	fs       *fsnotify.Watcher
	scanning atomic.Bool
}

// New creates a Watcher around a configured scanner.
func New(scanner *scan.Scanner, interval time.Duration) (*Watcher, error) {
	if scanner == nil {
		return nil, fmt.Errorf("scanner cannot be nil")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		scanner:  scanner,
		interval: interval,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start runs an immediate scan, then keeps scanning on the interval. It also
// watches the projects root for directory create/remove events and schedules
// a debounced early rescan when one arrives. Filesystem watching is
// best-effort: if the watch cannot be established the ticker still runs.
func (w *Watcher) Start() error {
	w.scanOnce()

	w.ticker = time.NewTicker(w.interval)
	w.wg.Add(1)
	go w.runLoop()

	if err := w.watchProjectsDir(); err != nil {
		fmt.Fprintf(os.Stderr, "watcher: projects dir watch unavailable: %v\n", err)
	}

	return nil
}

// Stop halts the loop and waits for an in-flight scan to finish.
func (w *Watcher) Stop() {
	close(w.stopCh)
	if w.ticker != nil {
		w.ticker.Stop()
	}
	if w.fs != nil {
		w.fs.Close()
	}
	w.wg.Wait()
}

func (w *Watcher) runLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ticker.C:
			w.scanOnce()
		case <-w.stopCh:
			return
		}
	}
}

// scanOnce runs one full scan cycle. A single in-flight flag serializes
// scans: overlapping triggers (ticker + filesystem event) skip rather than
// run two batches over the same project directories.
func (w *Watcher) scanOnce() {
	if !w.scanning.CompareAndSwap(false, true) {
		return
	}
	defer w.scanning.Store(false)

	if _, err := w.scanner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "watcher: scan failed: %v\n", err)
	}
}

func (w *Watcher) watchProjectsDir() error {
	root, err := w.scanner.Config.ResolveProjectsDir()
	if err != nil {
		return err
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fs.Add(root); err != nil {
		fs.Close()
		return err
	}
	w.fs = fs

	w.wg.Add(1)
	go w.runFSLoop()
	return nil
}

func (w *Watcher) runFSLoop() {
	defer w.wg.Done()

	var debounce *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceWindow)
				debounceCh = debounce.C
			} else {
				debounce.Reset(debounceWindow)
			}
		case <-debounceCh:
			debounce = nil
			debounceCh = nil
			w.scanOnce()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: filesystem watch error: %v\n", err)
		case <-w.stopCh:
			return
		}
	}
}
