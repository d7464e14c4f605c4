package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/felixgeelhaar/startquantum/internal/ports"
)

// LogEntry is one recorded log call.
type LogEntry struct {
	Level   ports.Level
	Message string
	Fields  []ports.Field
}

// Field returns the value of the named field and whether it was set.
func (e LogEntry) Field(key string) (interface{}, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Logger records every entry regardless of level.
type Logger struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	fields  []ports.Field
	level   ports.Level
}

// NewLogger creates a recording Logger.
func NewLogger() *Logger {
	return &Logger{
		mu:      &sync.Mutex{},
		entries: &[]LogEntry{},
		level:   ports.LevelDebug,
	}
}

// Debug records a debug entry.
func (l *Logger) Debug(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelDebug, msg, fields)
}

// Info records an info entry.
func (l *Logger) Info(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelInfo, msg, fields)
}

// Success records a success entry.
func (l *Logger) Success(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelSuccess, msg, fields)
}

// Warn records a warning entry.
func (l *Logger) Warn(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelWarn, msg, fields)
}

// Error records an error entry.
func (l *Logger) Error(_ context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelError, msg, fields)
}

// With returns a Logger sharing the same record with extra fields.
func (l *Logger) With(fields ...ports.Field) ports.Logger {
	merged := make([]ports.Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &Logger{mu: l.mu, entries: l.entries, fields: merged, level: l.level}
}

// Level returns the configured level.
func (l *Logger) Level() ports.Level {
	return l.level
}

// SetLevel sets the configured level. Entries are recorded regardless.
func (l *Logger) SetLevel(level ports.Level) {
	l.level = level
}

func (l *Logger) record(level ports.Level, msg string, fields []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	all := make([]ports.Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, fields...)
	*l.entries = append(*l.entries, LogEntry{Level: level, Message: msg, Fields: all})
}

// Entries returns all recorded entries.
func (l *Logger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := make([]LogEntry, len(*l.entries))
	copy(entries, *l.entries)
	return entries
}

// AtLevel returns recorded entries of the given level.
func (l *Logger) AtLevel(level ports.Level) []LogEntry {
	var matched []LogEntry
	for _, e := range l.Entries() {
		if e.Level == level {
			matched = append(matched, e)
		}
	}
	return matched
}

// Contains reports whether any entry at level mentions substr.
func (l *Logger) Contains(level ports.Level, substr string) bool {
	for _, e := range l.AtLevel(level) {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// Ensure Logger implements ports.Logger.
var _ ports.Logger = (*Logger)(nil)
