// Package runner executes external package-manager commands.
//
// All ecosystem tooling (npm, pip, cargo, composer, ...) is invoked through
// the Runner interface so that the classifier, resolver, and scorer can be
// tested with a fake implementation that never spawns a subprocess.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single external command invocation. A command that
// exceeds it fails for that one project/operation only; batch callers continue
// with the remaining projects.
const DefaultTimeout = 120 * time.Second

// Runner runs external commands and answers binary-existence checks.
type Runner interface {
	// Run executes command via the shell in dir and returns its stdout.
	// A non-zero exit with empty stdout is an error carrying the stderr
	// text; a non-zero exit that still produced stdout is not an error
	// (npm outdated and bundle outdated exit 1 whenever anything is
	// outdated).
	Run(dir, command string) (string, error)

	// LookPath reports whether a binary is available on PATH. Callers
	// pre-check optional tools with this before invoking them.
	LookPath(name string) bool
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct {
	Timeout time.Duration
}

// New returns an ExecRunner with the default timeout.
func New() *ExecRunner {
	return &ExecRunner{Timeout: DefaultTimeout}
}

// Run implements Runner.
func (r *ExecRunner) Run(dir, command string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	// Tool output is parsed, never shown in a terminal; strip color codes
	// at the source.
	cmd.Env = append(os.Environ(), "NO_COLOR=1", "FORCE_COLOR=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("command timed out after %s: %s", timeout, command)
	}
	if err != nil && stdout.Len() == 0 {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("command failed: %s: %s", command, msg)
	}

	return stdout.String(), nil
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
