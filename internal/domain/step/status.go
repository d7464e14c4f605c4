// Package step defines the provisioning step model: install statuses,
// step identifiers, detectors and the graph arena that holds definitions.
package step

// InstallStatus represents what is known about a step's target on this host.
type InstallStatus string

const (
	// StatusInstalled indicates the target is present.
	StatusInstalled InstallStatus = "installed"
	// StatusNotInstalled indicates the target was looked for and not found.
	StatusNotInstalled InstallStatus = "not-installed"
	// StatusDeclined indicates the operator declined to install the step.
	StatusDeclined InstallStatus = "declined"
	// StatusFailed indicates installation was attempted and did not succeed.
	StatusFailed InstallStatus = "failed"
	// StatusUnknown indicates the target's presence could not be determined.
	StatusUnknown InstallStatus = "unknown"
)

// String returns the string representation of the status.
func (s InstallStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses.
func (s InstallStatus) IsValid() bool {
	switch s {
	case StatusInstalled, StatusNotInstalled, StatusDeclined, StatusFailed, StatusUnknown:
		return true
	}
	return false
}

// Vetoes returns true if a dependency in this status blocks its dependents.
func (s InstallStatus) Vetoes() bool {
	return s == StatusDeclined || s == StatusFailed
}

// IsTerminal returns true if this status is a final outcome of a run.
func (s InstallStatus) IsTerminal() bool {
	switch s {
	case StatusInstalled, StatusDeclined, StatusFailed:
		return true
	case StatusNotInstalled, StatusUnknown:
		return false
	}
	return false
}
