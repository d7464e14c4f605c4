package execution

import (
	"fmt"
	"strings"
)

// Error codes for orchestration failures.
const (
	ErrCodeCheckFailed      = "CHECK_FAILED"
	ErrCodeInstallFailed    = "INSTALL_FAILED"
	ErrCodeVerifyFailed     = "VERIFY_FAILED"
	ErrCodeDependencyFailed = "DEPENDENCY_FAILED"
	ErrCodePromptFailed     = "PROMPT_FAILED"
	ErrCodeStepNotFound     = "STEP_NOT_FOUND"
)

// StepError represents a user-friendly orchestration error with actionable suggestions.
type StepError struct {
	Code       string // Error code for categorization
	Message    string // User-friendly error message
	StepID     string // Step ID if applicable
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *StepError) Error() string {
	msg := e.Message
	if e.StepID != "" {
		msg = fmt.Sprintf("step %q: %s", e.StepID, e.Message)
	}
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

// Unwrap returns the underlying error for error chain support.
func (e *StepError) Unwrap() error {
	return e.Underlying
}

// Is matches another *StepError with the same code.
func (e *StepError) Is(target error) bool {
	if t, ok := target.(*StepError); ok {
		return e.Code == t.Code
	}
	return false
}

// Format returns a fully formatted error with all details.
func (e *StepError) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.StepID != "" {
		fmt.Fprintf(&b, "\n  Step: %s", e.StepID)
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}

	if e.Underlying != nil {
		fmt.Fprintf(&b, "\n  Cause: %s", e.Underlying.Error())
	}

	return b.String()
}

// Sentinels for errors.Is comparisons by code.
var (
	ErrCheckFailed      = &StepError{Code: ErrCodeCheckFailed}
	ErrInstallFailed    = &StepError{Code: ErrCodeInstallFailed}
	ErrVerifyFailed     = &StepError{Code: ErrCodeVerifyFailed}
	ErrDependencyFailed = &StepError{Code: ErrCodeDependencyFailed}
	ErrPromptFailed     = &StepError{Code: ErrCodePromptFailed}
	ErrStepNotFound     = &StepError{Code: ErrCodeStepNotFound}
)

// NewCheckFailedError creates an error for a detector that could not report a status.
func NewCheckFailedError(stepID string, err error) *StepError {
	return &StepError{
		Code:       ErrCodeCheckFailed,
		Message:    "step status check failed",
		StepID:     stepID,
		Suggestion: "The status is treated as unknown and installation will be offered.",
		Underlying: err,
	}
}

// NewInstallFailedError creates an error for an install action that returned an error.
func NewInstallFailedError(stepID string, err error) *StepError {
	return &StepError{
		Code:       ErrCodeInstallFailed,
		Message:    "step failed to install",
		StepID:     stepID,
		Suggestion: "Check the installer output above, then run startquantum again to retry.",
		Underlying: err,
	}
}

// NewVerifyFailedError creates an error for an install that did not change the detected status.
func NewVerifyFailedError(stepID string, status fmt.Stringer) *StepError {
	return &StepError{
		Code:       ErrCodeVerifyFailed,
		Message:    fmt.Sprintf("step still reports %s after installing", status),
		StepID:     stepID,
		Suggestion: "Open a new terminal so PATH changes take effect, then run startquantum again.",
	}
}

// NewDependencyFailedError creates an error for a step blocked by a missing prerequisite.
func NewDependencyFailedError(stepID, dependency string) *StepError {
	return &StepError{
		Code:       ErrCodeDependencyFailed,
		Message:    fmt.Sprintf("dependency '%s' is not installed", dependency),
		StepID:     stepID,
		Suggestion: fmt.Sprintf("Install '%s' first, then run startquantum again.", dependency),
	}
}

// NewPromptFailedError creates an error for a confirmation that could not be read.
func NewPromptFailedError(stepID string, err error) *StepError {
	return &StepError{
		Code:       ErrCodePromptFailed,
		Message:    "could not read confirmation",
		StepID:     stepID,
		Suggestion: "Run startquantum from an interactive terminal, or pass --yes to accept every step.",
		Underlying: err,
	}
}

// NewStepNotFoundError creates an error for a handle that is not in the graph.
func NewStepNotFoundError(handle int) *StepError {
	return &StepError{
		Code:    ErrCodeStepNotFound,
		Message: fmt.Sprintf("no step with handle %d", handle),
	}
}
