// Package ui provides shared styles for terminal output.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Catppuccin Mocha inspired).
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"} // Blue
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#cba6f7"} // Mauve
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"} // Green
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"} // Yellow
	ColorError     = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"} // Red
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"} // Overlay0
	ColorText      = lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"} // Text
)

// Styles contains reusable lipgloss styles.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Status styles
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style

	// Help text
	Help lipgloss.Style

	// Progress
	ProgressBar lipgloss.Style
	Spinner     lipgloss.Style

	// Tables
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return NewStyles(lipgloss.DefaultRenderer())
}

// NewStyles returns the default styles bound to r, so colour support is
// detected for the writer r renders to.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Subtitle: r.NewStyle().
			Foreground(ColorSecondary),

		Success: r.NewStyle().
			Foreground(ColorSuccess),

		Warning: r.NewStyle().
			Foreground(ColorWarning),

		Error: r.NewStyle().
			Foreground(ColorError),

		Info: r.NewStyle().
			Foreground(ColorPrimary),

		Muted: r.NewStyle().
			Foreground(ColorMuted),

		Help: r.NewStyle().
			Foreground(ColorMuted),

		ProgressBar: r.NewStyle().
			Foreground(ColorSuccess),

		Spinner: r.NewStyle().
			Foreground(ColorPrimary),

		TableHeader: r.NewStyle().
			Bold(true).
			Foreground(ColorSecondary).
			Padding(0, 1),

		TableCell: r.NewStyle().
			Foreground(ColorText).
			Padding(0, 1),
	}
}
