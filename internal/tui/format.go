// Package tui renders download progress and step statuses in the terminal.
package tui

import (
	"fmt"

	"github.com/felixgeelhaar/startquantum/internal/domain/step"
)

// FormatStatusIcon returns a display icon for the given install status.
func FormatStatusIcon(status step.InstallStatus) string {
	switch status {
	case step.StatusInstalled:
		return "✓"
	case step.StatusNotInstalled:
		return "+"
	case step.StatusDeclined:
		return "-"
	case step.StatusFailed:
		return "✗"
	default:
		return "?"
	}
}

// FormatBytes renders n as a binary-prefixed size ("1.5 MB").
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
