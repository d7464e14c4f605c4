package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/felixgeelhaar/startquantum/internal/ports"
	"github.com/felixgeelhaar/startquantum/internal/tui/components"
	"github.com/felixgeelhaar/startquantum/internal/tui/ui"
)

// ProgressMsg is sent when more of the download has arrived.
type ProgressMsg ports.Progress

// DoneMsg is sent when the download has finished.
type DoneMsg struct {
	Err error
}

// downloadModel is the Bubble Tea model for a single download.
type downloadModel struct {
	name      string
	progress  ports.Progress
	bar       components.Progress
	spinner   components.Spinner
	styles    ui.Styles
	done      bool
	err       error
	cancelled bool
}

// newDownloadModel creates a new download model.
func newDownloadModel(name string, styles ui.Styles) downloadModel {
	return downloadModel{
		name:     name,
		progress: ports.Progress{Name: name, Total: -1},
		bar:      components.NewProgress().WithWidth(40).WithStyles(styles),
		spinner:  components.NewSpinner(),
		styles:   styles,
	}
}

// Init starts the spinner.
func (m downloadModel) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages.
func (m downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := msg.Width - 30
		if width > 50 {
			width = 50
		}
		if width < 10 {
			width = 10
		}
		m.bar = m.bar.WithWidth(width)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			return m, tea.Quit
		}
		return m, nil

	case ProgressMsg:
		m.progress = ports.Progress(msg)
		return m, nil

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View renders the model.
func (m downloadModel) View() string {
	var b strings.Builder

	switch {
	case m.cancelled:
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Download of %s cancelled.", m.name)))
	case m.done && m.err != nil:
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("✗ Download of %s failed.", m.name)))
	case m.done:
		b.WriteString(m.styles.Success.Render(fmt.Sprintf("✓ Downloaded %s (%s)", m.name, FormatBytes(m.progress.Received))))
	default:
		title := fmt.Sprintf("Downloading %s", m.name)
		fraction := m.progress.Fraction()
		if fraction < 0 {
			b.WriteString(m.spinner.SetMessage(fmt.Sprintf("%s %s", title, FormatBytes(m.progress.Received))).View())
			break
		}
		b.WriteString(m.styles.Info.Render(title))
		b.WriteString("\n")
		b.WriteString(m.bar.
			SetPercent(fraction).
			SetMessage(fmt.Sprintf("%s / %s", FormatBytes(m.progress.Received), FormatBytes(m.progress.Total))).
			View())
	}

	b.WriteString("\n")
	return b.String()
}
