package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/startquantum/internal/ports"
)

// Console colours (Catppuccin inspired), one per level.
var (
	colorDebug   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"}
	colorInfo    = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}
	colorWarn    = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"}
	colorError   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"}
)

// ConsoleLogger writes operator-facing messages, one coloured line per entry.
type ConsoleLogger struct {
	mu          *sync.Mutex
	out         io.Writer
	renderer    *lipgloss.Renderer
	level       ports.Level
	fields      []ports.Field
	showFields  bool
	includeTime bool
}

// ConsoleLoggerOption configures the console logger.
type ConsoleLoggerOption func(*ConsoleLogger)

// WithOutput sets the output writer (default: os.Stderr).
func WithOutput(w io.Writer) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.out = w
	}
}

// WithLevel sets the minimum log level (default: Info).
func WithLevel(level ports.Level) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.level = level
	}
}

// WithFields appends structured fields to each line.
func WithFields(enabled bool) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.showFields = enabled
	}
}

// WithTimestamp includes timestamp in log entries.
func WithTimestamp(enabled bool) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.includeTime = enabled
	}
}

// NewConsoleLogger creates a new console logger.
func NewConsoleLogger(opts ...ConsoleLoggerOption) *ConsoleLogger {
	l := &ConsoleLogger{
		mu:    &sync.Mutex{},
		out:   os.Stderr,
		level: ports.LevelInfo,
	}

	for _, opt := range opts {
		opt(l)
	}

	l.renderer = lipgloss.NewRenderer(l.out)
	return l
}

// Debug logs a debug message.
func (l *ConsoleLogger) Debug(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelDebug, msg, fields)
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelInfo, msg, fields)
}

// Success logs completed work.
func (l *ConsoleLogger) Success(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelSuccess, msg, fields)
}

// Warn logs a warning message.
func (l *ConsoleLogger) Warn(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelWarn, msg, fields)
}

// Error logs an error message.
func (l *ConsoleLogger) Error(ctx context.Context, msg string, fields ...ports.Field) {
	l.log(ctx, ports.LevelError, msg, fields)
}

// With returns a new logger with additional fields.
func (l *ConsoleLogger) With(fields ...ports.Field) ports.Logger {
	newFields := make([]ports.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &ConsoleLogger{
		mu:          l.mu,
		out:         l.out,
		renderer:    l.renderer,
		level:       l.Level(),
		fields:      newFields,
		showFields:  l.showFields,
		includeTime: l.includeTime,
	}
}

// Level returns the minimum log level.
func (l *ConsoleLogger) Level() ports.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel sets the minimum log level.
func (l *ConsoleLogger) SetLevel(level ports.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *ConsoleLogger) log(_ context.Context, level ports.Level, msg string, fields []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	var b strings.Builder
	if l.includeTime {
		b.WriteString(time.Now().Format("15:04:05"))
		b.WriteString(" ")
	}
	if level == ports.LevelDebug {
		b.WriteString("[DEBUG] ")
	}
	b.WriteString(msg)

	line := l.styleFor(level).Render(b.String())

	if l.showFields {
		all := make([]ports.Field, 0, len(l.fields)+len(fields))
		all = append(all, l.fields...)
		all = append(all, fields...)
		if len(all) > 0 {
			line += " " + l.renderer.NewStyle().Foreground(colorDebug).Render(formatFields(all))
		}
	}

	_, _ = fmt.Fprintln(l.out, line)
}

func (l *ConsoleLogger) styleFor(level ports.Level) lipgloss.Style {
	style := l.renderer.NewStyle()
	switch level {
	case ports.LevelDebug:
		return style.Foreground(colorDebug)
	case ports.LevelSuccess:
		return style.Foreground(colorSuccess)
	case ports.LevelWarn:
		return style.Foreground(colorWarn)
	case ports.LevelError:
		return style.Foreground(colorError).Bold(true)
	default:
		return style.Foreground(colorInfo)
	}
}

func formatFields(fields []ports.Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
	}
	return strings.Join(parts, " ")
}

// Ensure ConsoleLogger implements Logger.
var _ ports.Logger = (*ConsoleLogger)(nil)
