package step

import "testing"

func TestInstallStatus_Values(t *testing.T) {
	statuses := []InstallStatus{
		StatusInstalled,
		StatusNotInstalled,
		StatusDeclined,
		StatusFailed,
		StatusUnknown,
	}

	expected := []string{
		"installed",
		"not-installed",
		"declined",
		"failed",
		"unknown",
	}

	for i, status := range statuses {
		if status.String() != expected[i] {
			t.Errorf("status %d: got %q, want %q", i, status.String(), expected[i])
		}
		if !status.IsValid() {
			t.Errorf("status %q should be valid", status)
		}
	}

	if InstallStatus("bogus").IsValid() {
		t.Error("unexpected status should not be valid")
	}
}

func TestInstallStatus_Vetoes(t *testing.T) {
	tests := []struct {
		status InstallStatus
		want   bool
	}{
		{StatusInstalled, false},
		{StatusNotInstalled, false},
		{StatusDeclined, true},
		{StatusFailed, true},
		{StatusUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.Vetoes(); got != tt.want {
				t.Errorf("InstallStatus(%q).Vetoes() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestInstallStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status InstallStatus
		want   bool
	}{
		{StatusInstalled, true},
		{StatusNotInstalled, false},
		{StatusDeclined, true},
		{StatusFailed, true},
		{StatusUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.want {
				t.Errorf("InstallStatus(%q).IsTerminal() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}
