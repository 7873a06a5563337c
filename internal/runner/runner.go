// Package runner abstracts subprocess execution behind an interface so that
// components shelling out to external CLIs (git, gh, build, twine) can be
// exercised deterministically in tests.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/ariel-frischer/releasekit/internal/errors"
)

// Runner executes external commands.
type Runner interface {
	// Run executes a command in dir, streaming its output. A non-zero
	// exit is returned as an ExternalTool error carrying the exit code.
	Run(ctx context.Context, dir, name string, args ...string) error
	// Output executes a command in dir and returns its trimmed stdout.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)
	// LookPath reports whether a binary is available on PATH.
	LookPath(name string) bool
}

// ExecRunner runs commands via os/exec, echoing each invocation the way the
// CI logs expect.
type ExecRunner struct {
	// Stdout and Stderr receive streamed command output. Nil defaults to
	// the process streams.
	Stdout io.Writer
	Stderr io.Writer
	// Quiet suppresses the "Running: ..." echo.
	Quiet bool
}

// New returns an ExecRunner writing to the process streams.
func New() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

func (r *ExecRunner) echo(name string, args []string) {
	if r.Quiet {
		return
	}
	fmt.Fprintf(r.stdout(), "Running: %s %s\n", name, strings.Join(args, " "))
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	r.echo(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()

	if err := cmd.Run(); err != nil {
		return wrapExecError(name, args, err)
	}
	return nil
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			fmt.Fprintln(r.stderr(), msg)
		}
		return "", wrapExecError(name, args, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// wrapExecError converts an exec failure into a categorized error. Exit
// codes survive so the caller can propagate them to the process exit.
func wrapExecError(name string, args []string, err error) error {
	cmdline := strings.TrimSpace(name + " " + strings.Join(args, " "))

	if exitErr, ok := err.(*exec.ExitError); ok {
		return errors.NewExternalToolError(
			fmt.Sprintf("command failed with exit code %d: %s", exitErr.ExitCode(), cmdline),
			exitErr.ExitCode())
	}
	if _, ok := err.(*exec.Error); ok {
		return errors.NewExternalToolError(
			fmt.Sprintf("command not found: %s", name), 1,
			fmt.Sprintf("install %s and ensure it is on PATH", name))
	}
	return errors.NewExternalToolError(fmt.Sprintf("running %s: %v", cmdline, err), 1)
}
