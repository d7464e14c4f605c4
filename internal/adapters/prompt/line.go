// Package prompt provides confirmation adapters for ports.Prompter.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/felixgeelhaar/startquantum/internal/ports"
)

// ErrNoInput is returned when the input ends before an answer was given.
var ErrNoInput = errors.New("no answer: input closed")

// LinePrompter asks yes/no questions on a line-oriented terminal.
type LinePrompter struct {
	mu     sync.Mutex
	in     *bufio.Reader
	out    io.Writer
	folder cases.Caser
}

// LineOption configures a LinePrompter.
type LineOption func(*LinePrompter)

// WithInput sets the answer source (default: os.Stdin).
func WithInput(r io.Reader) LineOption {
	return func(p *LinePrompter) {
		p.in = bufio.NewReader(r)
	}
}

// WithOutput sets where questions are written (default: os.Stdout).
func WithOutput(w io.Writer) LineOption {
	return func(p *LinePrompter) {
		p.out = w
	}
}

// NewLinePrompter creates a LinePrompter.
func NewLinePrompter(opts ...LineOption) *LinePrompter {
	p := &LinePrompter{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		folder: cases.Fold(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Confirm prints question (and detail, if any) and reads answers until one
// of y, yes, n or no is given. An empty answer selects the default.
func (p *LinePrompter) Confirm(ctx context.Context, question, detail string, defaultYes bool) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprintln(p.out, question)
	if detail != "" {
		_, _ = fmt.Fprintln(p.out, "  "+detail)
	}

	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		_, _ = fmt.Fprint(p.out, choices(defaultYes))

		line, err := p.in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if errors.Is(err, io.EOF) {
				return false, ErrNoInput
			}
			return false, fmt.Errorf("failed to read answer: %w", err)
		}

		switch p.folder.String(strings.TrimSpace(line)) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		_, _ = fmt.Fprintln(p.out, "Please answer yes or no.")
	}
}

func choices(defaultYes bool) string {
	if defaultYes {
		return "[Y]es (default) / [N]o? "
	}
	return "[Y]es / [N]o (default)? "
}

// Ensure LinePrompter implements ports.Prompter.
var _ ports.Prompter = (*LinePrompter)(nil)
