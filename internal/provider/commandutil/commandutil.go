// Package commandutil wraps ports.CommandRunner with the error handling
// installer steps share.
package commandutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/felixgeelhaar/startquantum/internal/ports"
)

// ErrNotFound is returned when an executable could not be started because it does not exist.
var ErrNotFound = errors.New("command not found")

// IsCommandNotFound reports whether an error indicates a missing executable.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
		return true
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, os.ErrNotExist) {
		return true
	}
	return false
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

// Error returns the formatted error message.
func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Output runs a command and returns its stdout, failing on a non-zero exit.
func Output(ctx context.Context, runner ports.CommandRunner, command string, args ...string) (string, error) {
	result, err := runner.Run(ctx, command, args...)
	if err != nil {
		return "", wrapStartError(command, err)
	}
	if !result.Success() {
		return result.Stdout, &ExitError{Command: display(command, args), ExitCode: result.ExitCode, Stderr: result.Stderr}
	}
	return result.Stdout, nil
}

// Interactive runs a command attached to the terminal, failing on a non-zero exit.
func Interactive(ctx context.Context, runner ports.CommandRunner, command string, args ...string) error {
	result, err := runner.RunInteractive(ctx, command, args...)
	if err != nil {
		return wrapStartError(command, err)
	}
	if !result.Success() {
		return &ExitError{Command: display(command, args), ExitCode: result.ExitCode}
	}
	return nil
}

func wrapStartError(command string, err error) error {
	if IsCommandNotFound(err) {
		return fmt.Errorf("%w: %s not found in PATH", ErrNotFound, command)
	}
	return fmt.Errorf("failed to run %s: %w", command, err)
}

func display(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}
