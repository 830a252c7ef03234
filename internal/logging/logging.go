// Package logging provides a simple leveled logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelInfo:
		return slog.LevelInfo
	default:
		// Above every real level: nothing is emitted.
		return slog.LevelError + 4
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a leveled printf-style logger backed by slog's text handler.
type Logger struct {
	mu     *sync.Mutex
	level  *slog.LevelVar
	output *switchWriter
	inner  *slog.Logger
}

// switchWriter lets SetOutput swap the destination under an existing handler.
type switchWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// New creates a new logger writing to stderr.
func New(level Level) *Logger {
	mu := &sync.Mutex{}
	lv := &slog.LevelVar{}
	lv.Set(level.slog())
	out := &switchWriter{mu: mu, w: os.Stderr}
	return &Logger{
		mu:     mu,
		level:  lv,
		output: out,
		inner:  slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: lv})),
	}
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.w = w
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level.slog())
}

// With returns a logger that adds key/value context to every line.
// The returned logger shares output and level with its parent.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		mu:     l.mu,
		level:  l.level,
		output: l.output,
		inner:  l.inner.With(args...),
	}
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return l.inner.Enabled(context.Background(), level.slog())
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.inner.Log(context.Background(), level.slog(), fmt.Sprintf(format, args...))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	l := New(LevelError + 1) // Higher than any level
	l.SetOutput(io.Discard)
	return l
}
