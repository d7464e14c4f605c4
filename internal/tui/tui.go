package tui

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/felixgeelhaar/startquantum/internal/ports"
	"github.com/felixgeelhaar/startquantum/internal/tui/ui"
)

// DownloadProgress renders each download with its own Bubble Tea program.
// Only one download runs at a time.
type DownloadProgress struct {
	in     io.Reader
	out    io.Writer
	styles ui.Styles

	mu      sync.Mutex
	program *tea.Program
}

// NewDownloadProgress creates a DownloadProgress reading keys from in and
// drawing to out.
func NewDownloadProgress(in io.Reader, out io.Writer) *DownloadProgress {
	return &DownloadProgress{
		in:     in,
		out:    out,
		styles: ui.DefaultStyles(),
	}
}

// Report forwards p to the running program. Pass it to the wrapped
// downloader as its ports.ProgressFunc.
func (d *DownloadProgress) Report(p ports.Progress) {
	d.mu.Lock()
	program := d.program
	d.mu.Unlock()

	if program != nil {
		program.Send(ProgressMsg(p))
	}
}

// Wrap returns a Downloader that shows progress while inner runs.
func (d *DownloadProgress) Wrap(inner ports.Downloader) ports.Downloader {
	return &progressDownloader{inner: inner, progress: d}
}

func (d *DownloadProgress) setProgram(p *tea.Program) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.program = p
}

type progressDownloader struct {
	inner    ports.Downloader
	progress *DownloadProgress
}

type programResult struct {
	model tea.Model
	err   error
}

// Download runs the inner download while the program draws its progress.
// Ctrl+C in the program cancels the download.
func (p *progressDownloader) Download(ctx context.Context, req ports.DownloadRequest) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newDownloadModel(displayName(req), p.progress.styles)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.progress.in),
		tea.WithOutput(p.progress.out),
	)
	p.progress.setProgram(program)
	defer p.progress.setProgram(nil)

	finished := make(chan programResult, 1)
	go func() {
		final, err := program.Run()
		if m, ok := final.(downloadModel); ok && m.cancelled {
			cancel()
		}
		finished <- programResult{model: final, err: err}
	}()

	file, err := p.inner.Download(ctx, req)
	program.Send(DoneMsg{Err: err})
	<-finished

	if err != nil {
		return "", err
	}
	return file, nil
}

func displayName(req ports.DownloadRequest) string {
	if req.Name != "" {
		return req.Name
	}
	if u, err := url.Parse(req.URL); err == nil && u.Path != "" && u.Path != "/" {
		return path.Base(u.Path)
	}
	return req.URL
}

// LogProgress returns a ports.ProgressFunc that logs every quarter of a
// download, for output that is not a terminal.
func LogProgress(ctx context.Context, logger ports.Logger) ports.ProgressFunc {
	var mu sync.Mutex
	reported := make(map[string]int)

	return func(p ports.Progress) {
		fraction := p.Fraction()
		if fraction < 0 {
			return
		}
		quarter := int(fraction * 4)

		mu.Lock()
		last, seen := reported[p.Name]
		if seen && quarter <= last {
			mu.Unlock()
			return
		}
		reported[p.Name] = quarter
		mu.Unlock()

		logger.Info(ctx, fmt.Sprintf("Downloading %s: %d%% of %s", p.Name, quarter*25, FormatBytes(p.Total)))
	}
}
