package logging

import (
	"context"

	"github.com/felixgeelhaar/startquantum/internal/ports"
)

// Multi fans every entry out to several loggers, each applying its own level.
type Multi struct {
	loggers []ports.Logger
}

// NewMulti creates a fan-out logger. Nil loggers are ignored.
func NewMulti(loggers ...ports.Logger) *Multi {
	m := &Multi{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// Debug logs a debug message.
func (m *Multi) Debug(ctx context.Context, msg string, fields ...ports.Field) {
	for _, l := range m.loggers {
		l.Debug(ctx, msg, fields...)
	}
}

// Info logs an informational message.
func (m *Multi) Info(ctx context.Context, msg string, fields ...ports.Field) {
	for _, l := range m.loggers {
		l.Info(ctx, msg, fields...)
	}
}

// Success logs completed work.
func (m *Multi) Success(ctx context.Context, msg string, fields ...ports.Field) {
	for _, l := range m.loggers {
		l.Success(ctx, msg, fields...)
	}
}

// Warn logs a warning message.
func (m *Multi) Warn(ctx context.Context, msg string, fields ...ports.Field) {
	for _, l := range m.loggers {
		l.Warn(ctx, msg, fields...)
	}
}

// Error logs an error message.
func (m *Multi) Error(ctx context.Context, msg string, fields ...ports.Field) {
	for _, l := range m.loggers {
		l.Error(ctx, msg, fields...)
	}
}

// With returns a fan-out over each logger's With.
func (m *Multi) With(fields ...ports.Field) ports.Logger {
	children := make([]ports.Logger, 0, len(m.loggers))
	for _, l := range m.loggers {
		children = append(children, l.With(fields...))
	}
	return &Multi{loggers: children}
}

// Level returns the most verbose level among the loggers.
func (m *Multi) Level() ports.Level {
	level := ports.LevelError
	for _, l := range m.loggers {
		if l.Level() < level {
			level = l.Level()
		}
	}
	return level
}

// SetLevel sets the level on every logger.
func (m *Multi) SetLevel(level ports.Level) {
	for _, l := range m.loggers {
		l.SetLevel(level)
	}
}

// Ensure Multi implements Logger.
var _ ports.Logger = (*Multi)(nil)
