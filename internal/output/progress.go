package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// writerIsTTY returns true if the given writer exposes an Fd() method
// (e.g. *os.File) and that fd is a terminal. Falls back to false for
// plain io.Writer values such as *bytes.Buffer.
func writerIsTTY(w io.Writer) bool {
	type fder interface {
		Fd() uintptr
	}
	if f, ok := w.(fder); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

// ProgressBar tracks a scan across a fixed number of projects.
// Example: [=========>          ]  45% scanning my-api
type ProgressBar struct {
	total   int
	current int
	label   string
	width   int
	mu      sync.Mutex
	writer  io.Writer
}

// NewProgress creates a progress bar over total steps.
func NewProgress(total int) *ProgressBar {
	return &ProgressBar{
		total:  total,
		width:  40,
		writer: os.Stdout,
	}
}

// SetWriter sets the output writer (useful for testing).
func (p *ProgressBar) SetWriter(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = w
}

// Step advances the bar by one and updates the trailing label.
func (p *ProgressBar) Step(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.label = label
	p.current++
	if p.current > p.total {
		p.current = p.total
	}
	p.render()
}

// Finish completes the bar and moves to a new line.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	alreadyDone := p.current == p.total
	p.current = p.total

	if writerIsTTY(p.writer) {
		p.render()
		fmt.Fprintln(p.writer)
	} else if !alreadyDone {
		// Non-TTY render only emits on completion; skip a duplicate
		// 100% line when the last Step already printed it.
		p.render()
	}
}

// render draws the bar (must be called with lock held).
func (p *ProgressBar) render() {
	percentage := 0
	filled := 0
	if p.total > 0 {
		percentage = (p.current * 100) / p.total
		filled = (p.current * p.width) / p.total
	}

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < p.width; i++ {
		switch {
		case i < filled-1:
			bar.WriteString("=")
		case i == filled-1:
			bar.WriteString(">")
		default:
			bar.WriteString(" ")
		}
	}
	bar.WriteString("]")

	if writerIsTTY(p.writer) {
		// Overwrite the current line using carriage return.
		fmt.Fprintf(p.writer, "\r%s %3d%% %s", bar.String(), percentage, p.label)
	} else if p.current == p.total {
		// Non-TTY: emit only on completion to avoid one line per step.
		fmt.Fprintf(p.writer, "%s %3d%% %s\n", bar.String(), percentage, p.label)
	}
}

// Spinner shows an animated indicator while a single slow command runs
// (resolving one project's outdated set can take a couple of minutes).
type Spinner struct {
	message string
	running bool
	chars   []string
	mu      sync.Mutex
	writer  io.Writer
	done    chan struct{}
}

// NewSpinner creates a spinner with a message. The animation only runs on a
// TTY; on other writers Start prints the message once.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		chars:   []string{"|", "/", "-", "\\"},
		writer:  os.Stdout,
		done:    make(chan struct{}),
	}
}

// SetWriter sets the output writer (useful for testing).
func (s *Spinner) SetWriter(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer = w
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true

	if !writerIsTTY(s.writer) {
		fmt.Fprintf(s.writer, "%s...\n", s.message)
		return
	}

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		frame := 0
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Fprintf(s.writer, "\r%s %s", s.chars[frame%len(s.chars)], s.message)
				s.mu.Unlock()
				frame++
			}
		}
	}()
}

// Stop halts the animation and clears the spinner line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false

	if writerIsTTY(s.writer) {
		close(s.done)
		fmt.Fprintf(s.writer, "\r%s\r", strings.Repeat(" ", len(s.message)+2))
	}
}
