//go:build e2e

package framework

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
)

// AssertSuccess asserts that the command exited with code 0.
func AssertSuccess(t *testing.T, r *Result) {
	t.Helper()
	if !r.Success() {
		t.Errorf("Expected command to succeed, got exit code %d\nStdout: %s\nStderr: %s",
			r.ExitCode, r.Stdout, r.Stderr)
	}
}

// AssertUserError asserts that the command exited with code 1 and printed
// message as its error.
func AssertUserError(t *testing.T, r *Result, message string) {
	t.Helper()
	if r.ExitCode != 1 {
		t.Errorf("Expected exit code 1, got %d\nStdout: %s\nStderr: %s", r.ExitCode, r.Stdout, r.Stderr)
	}
	if !strings.Contains(r.Stderr, "Error: "+message) {
		t.Errorf("Expected stderr to contain %q, but got:\n%s", "Error: "+message, r.Stderr)
	}
}

// AssertStdoutContains asserts that stdout contains the expected substring.
func AssertStdoutContains(t *testing.T, r *Result, expected string) {
	t.Helper()
	if !strings.Contains(r.Stdout, expected) {
		t.Errorf("Expected stdout to contain %q, but got:\n%s", expected, r.Stdout)
	}
}

// AssertStdoutNotContains asserts that stdout does not contain the unexpected substring.
func AssertStdoutNotContains(t *testing.T, r *Result, unexpected string) {
	t.Helper()
	if strings.Contains(r.Stdout, unexpected) {
		t.Errorf("Expected stdout to NOT contain %q, but got:\n%s", unexpected, r.Stdout)
	}
}

// AssertPlanned asserts that the plan output lists id with the given run
// column ("yes", "no" or "skipped").
func AssertPlanned(t *testing.T, r *Result, id, run string) {
	t.Helper()
	assertLine(t, r, fmt.Sprintf(`(?m)^\s*%s\s+%s\s`, regexp.QuoteMeta(id), regexp.QuoteMeta(run)))
}

// AssertChecked asserts that the check output reports id with status.
func AssertChecked(t *testing.T, r *Result, id, status string) {
	t.Helper()
	assertLine(t, r, fmt.Sprintf(`(?m)^\s*\S+ %s\s+.*\s%s$`, regexp.QuoteMeta(id), regexp.QuoteMeta(status)))
}

func assertLine(t *testing.T, r *Result, pattern string) {
	t.Helper()
	if !regexp.MustCompile(pattern).MatchString(r.Stdout) {
		t.Errorf("Expected stdout to have a line matching %q, but got:\n%s", pattern, r.Stdout)
	}
}

// AssertFileContains asserts that a file in the environment contains expected.
func AssertFileContains(t *testing.T, env *Environment, path, expected string) {
	t.Helper()
	if !env.FileExists(path) {
		t.Fatalf("Expected file %s to exist", path)
	}
	if content := env.ReadFile(path); !strings.Contains(content, expected) {
		t.Errorf("Expected file %s to contain %q, but got:\n%s", path, expected, content)
	}
}
