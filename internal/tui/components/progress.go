// Package components provides small bubbletea building blocks.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/felixgeelhaar/startquantum/internal/tui/ui"
)

// Progress displays a progress bar with optional message.
type Progress struct {
	percent float64
	message string
	width   int
	styles  ui.Styles
}

// NewProgress creates a new progress component.
func NewProgress() Progress {
	return Progress{
		width:  40,
		styles: ui.DefaultStyles(),
	}
}

// Percent returns the current percentage (0.0 to 1.0).
func (p Progress) Percent() float64 {
	return p.percent
}

// Message returns the current message.
func (p Progress) Message() string {
	return p.message
}

// Width returns the progress bar width.
func (p Progress) Width() int {
	return p.width
}

// SetPercent sets the progress percentage.
func (p Progress) SetPercent(percent float64) Progress {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	p.percent = percent
	return p
}

// SetMessage sets the status message.
func (p Progress) SetMessage(message string) Progress {
	p.message = message
	return p
}

// WithWidth sets the progress bar width.
func (p Progress) WithWidth(width int) Progress {
	if width < 3 {
		width = 3
	}
	p.width = width
	return p
}

// WithStyles sets the styles.
func (p Progress) WithStyles(styles ui.Styles) Progress {
	p.styles = styles
	return p
}

// View renders the progress bar.
func (p Progress) View() string {
	var b strings.Builder

	barWidth := p.width - 2 // brackets
	filled := int(p.percent * float64(barWidth))
	empty := barWidth - filled

	bar := fmt.Sprintf("[%s%s]",
		strings.Repeat("█", filled),
		strings.Repeat("░", empty),
	)
	b.WriteString(p.styles.ProgressBar.Render(bar))

	fmt.Fprintf(&b, " %3.0f%%", p.percent*100)

	if p.message != "" {
		b.WriteString(" ")
		b.WriteString(p.styles.Help.Render(p.message))
	}

	return b.String()
}

// Spinner displays an animated spinner with optional message.
type Spinner struct {
	spinner spinner.Model
	message string
	styles  ui.Styles
}

// NewSpinner creates a new spinner component.
func NewSpinner() Spinner {
	styles := ui.DefaultStyles()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return Spinner{
		spinner: s,
		styles:  styles,
	}
}

// Message returns the current message.
func (s Spinner) Message() string {
	return s.message
}

// SetMessage sets the spinner message.
func (s Spinner) SetMessage(message string) Spinner {
	s.message = message
	return s
}

// Init returns the initial command for the spinner.
func (s Spinner) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update handles spinner animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner.
func (s Spinner) View() string {
	if s.message != "" {
		return fmt.Sprintf("%s %s", s.spinner.View(), s.message)
	}
	return s.spinner.View()
}
