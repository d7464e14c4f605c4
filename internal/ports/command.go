// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
)

// CommandResult represents the result of executing a shell command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandCall records a command invocation.
type CommandCall struct {
	Command     string
	Args        []string
	Interactive bool
}

// CommandRunner executes shell commands.
type CommandRunner interface {
	// Run executes a command and captures its output.
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)

	// RunInteractive executes a command attached to the operator's terminal
	// and blocks until it exits. Only the exit code is reported.
	RunInteractive(ctx context.Context, command string, args ...string) (CommandResult, error)
}
