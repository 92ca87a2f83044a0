package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logger writes timestamped, leveled lines to a writer. A nil *Logger
// discards everything so callers never need to guard.
type Logger struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// Option customizes a Logger during construction.
type Option func(*Logger)

// WithClock overrides the clock used for timestamps.
func WithClock(clock func() time.Time) Option {
	return func(l *Logger) {
		l.now = clock
	}
}

// New creates a logger writing to out.
func New(out io.Writer, opts ...Option) *Logger {
	l := &Logger{out: out, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append writes a single entry.
func (l *Logger) Append(level Level, message string) {
	if l == nil || l.out == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] %-5s %s\n",
		l.now().UTC().Format(time.RFC3339),
		string(level),
		strings.TrimRight(strings.TrimSpace(message), "\n"),
	)
}

// Info appends an informational entry.
func (l *Logger) Info(format string, args ...any) {
	l.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (l *Logger) Warn(format string, args ...any) {
	l.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (l *Logger) Error(format string, args ...any) {
	l.Append(LevelError, fmt.Sprintf(format, args...))
}
