// Package command provides command execution adapters.
package command

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/felixgeelhaar/startquantum/internal/ports"
)

// RealRunner executes actual processes.
type RealRunner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// RunnerOption configures a RealRunner.
type RunnerOption func(*RealRunner)

// WithStdio sets the streams attached to interactive commands
// (default: the process's own stdin, stdout and stderr).
func WithStdio(in io.Reader, out, errOut io.Writer) RunnerOption {
	return func(r *RealRunner) {
		r.stdin = in
		r.stdout = out
		r.stderr = errOut
	}
}

// NewRealRunner creates a new RealRunner.
func NewRealRunner(opts ...RunnerOption) *RealRunner {
	r := &RealRunner{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes a command and captures its output.
func (r *RealRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := ports.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	return exitResult(result, err)
}

// RunInteractive executes a command attached to the terminal, so installers
// can show their own output and ask their own questions. Output is not captured.
func (r *RealRunner) RunInteractive(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	return exitResult(ports.CommandResult{}, cmd.Run())
}

// exitResult maps a non-zero exit into the result instead of an error.
func exitResult(result ports.CommandResult, err error) (ports.CommandResult, error) {
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}
	return result, nil
}

// Ensure RealRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*RealRunner)(nil)
