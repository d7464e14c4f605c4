package logging

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/felixgeelhaar/startquantum/internal/ports"
)

// FileConfig holds rotation settings for the JSON log file.
type FileConfig struct {
	// Path is the log file location.
	Path string
	// MaxSize is the maximum size (in MB) of a log file before it is rolled.
	MaxSize int
	// MaxBackups is the maximum number of rolled log files to keep.
	MaxBackups int
}

// NewRollingFile returns a size-rotated writer for cfg.
func NewRollingFile(cfg FileConfig) io.WriteCloser {
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = 10
	}
	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    maxSize,        // megabytes
		MaxBackups: cfg.MaxBackups, // files
	}
}

// ZerologLogger writes one JSON object per entry through zerolog.
type ZerologLogger struct {
	zl    zerolog.Logger
	level ports.Level
}

// NewZerologLogger creates a JSON logger writing to w.
func NewZerologLogger(w io.Writer, level ports.Level) *ZerologLogger {
	return &ZerologLogger{
		zl:    zerolog.New(w).With().Timestamp().Logger(),
		level: level,
	}
}

// Debug logs a debug message.
func (l *ZerologLogger) Debug(_ context.Context, msg string, fields ...ports.Field) {
	l.write(ports.LevelDebug, l.zl.Debug, msg, fields)
}

// Info logs an informational message.
func (l *ZerologLogger) Info(_ context.Context, msg string, fields ...ports.Field) {
	l.write(ports.LevelInfo, l.zl.Info, msg, fields)
}

// Success logs completed work as an info entry tagged with outcome=success.
func (l *ZerologLogger) Success(_ context.Context, msg string, fields ...ports.Field) {
	l.write(ports.LevelSuccess, func() *zerolog.Event {
		return l.zl.Info().Str("outcome", "success")
	}, msg, fields)
}

// Warn logs a warning message.
func (l *ZerologLogger) Warn(_ context.Context, msg string, fields ...ports.Field) {
	l.write(ports.LevelWarn, l.zl.Warn, msg, fields)
}

// Error logs an error message.
func (l *ZerologLogger) Error(_ context.Context, msg string, fields ...ports.Field) {
	l.write(ports.LevelError, l.zl.Error, msg, fields)
}

// With returns a new logger with additional fields.
func (l *ZerologLogger) With(fields ...ports.Field) ports.Logger {
	c := l.zl.With()
	for _, f := range fields {
		c = c.Interface(f.Key, f.Value)
	}
	return &ZerologLogger{zl: c.Logger(), level: l.level}
}

// Level returns the minimum log level.
func (l *ZerologLogger) Level() ports.Level {
	return l.level
}

// SetLevel sets the minimum log level.
func (l *ZerologLogger) SetLevel(level ports.Level) {
	l.level = level
}

func (l *ZerologLogger) write(level ports.Level, start func() *zerolog.Event, msg string, fields []ports.Field) {
	if level < l.level {
		return
	}
	event := start()
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			event = event.AnErr(f.Key, err)
			continue
		}
		event = event.Interface(f.Key, f.Value)
	}
	event.Msg(msg)
}

// Ensure ZerologLogger implements Logger.
var _ ports.Logger = (*ZerologLogger)(nil)
