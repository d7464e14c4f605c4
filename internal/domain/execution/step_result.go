// Package execution runs provisioning steps: it memoizes their statuses,
// resolves dependencies, asks for confirmation and records what was installed.
package execution

import (
	"time"

	"github.com/felixgeelhaar/startquantum/internal/domain/step"
)

// StepResult captures the outcome of running a single step.
type StepResult struct {
	stepID   step.ID
	status   step.InstallStatus
	phase    Phase
	err      error
	duration time.Duration
}

// NewStepResult creates a new StepResult.
func NewStepResult(stepID step.ID, status step.InstallStatus, err error) StepResult {
	return StepResult{
		stepID: stepID,
		status: status,
		err:    err,
	}
}

// StepID returns the ID of the step that was run.
func (r StepResult) StepID() step.ID {
	return r.stepID
}

// Status returns the step's memoized status when the run finished.
func (r StepResult) Status() step.InstallStatus {
	return r.status
}

// Phase returns the last lifecycle phase the run reached.
func (r StepResult) Phase() Phase {
	return r.phase
}

// Error returns any error that occurred during the run.
func (r StepResult) Error() error {
	return r.err
}

// Duration returns how long the run took.
func (r StepResult) Duration() time.Duration {
	return r.duration
}

// Installed returns true if the step ended installed.
func (r StepResult) Installed() bool {
	return r.status == step.StatusInstalled
}

// WithPhase returns a new StepResult with phase set.
func (r StepResult) WithPhase(p Phase) StepResult {
	r.phase = p
	return r
}

// WithDuration returns a new StepResult with duration set.
func (r StepResult) WithDuration(d time.Duration) StepResult {
	r.duration = d
	return r
}
