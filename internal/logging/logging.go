// Package logging provides the injected logging capability for conf2wiki.
//
// Components receive a Logger explicitly instead of resolving a global
// handle; the default implementation is backed by log/slog.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Logger is the logging capability passed to each component.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warning(msg string, args ...any)
	Error(msg string, args ...any)
}

// slogLogger adapts *slog.Logger to the Logger interface.
type slogLogger struct {
	l *slog.Logger
}

func (s *slogLogger) Debug(msg string, args ...any)   { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)    { s.l.Info(msg, args...) }
func (s *slogLogger) Warning(msg string, args ...any) { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any)   { s.l.Error(msg, args...) }

// New returns a Logger writing text records to w.
// Verbose lowers the level from Info to Debug.
func New(w io.Writer, verbose bool) Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &slogLogger{l: slog.New(h)}
}

// Nop returns a Logger that discards everything. For tests.
func Nop() Logger {
	return New(io.Discard, false)
}

// FileSink is an append-only log file shared by concurrent pool workers.
// Appends are serialized by a mutex so lines never interleave.
type FileSink struct {
	mu sync.Mutex
	f  *os.File
}

// OpenFileSink opens (creating parent directories as needed) the log
// file at path in append mode.
func OpenFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileSink{f: f}, nil
}

// Write appends p as a whole under the sink lock. Implements io.Writer
// so the sink can back a slog handler.
func (s *FileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Write(p)
}

// Appendf appends a single formatted line under the sink lock.
func (s *FileSink) Appendf(format string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.f, format+"\n", args...)
	return err
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

// Tee returns a Logger that writes to both console and the file sink.
// The sink side always logs at debug level, matching the original
// behavior of verbose file logs with quieter console output.
func Tee(console io.Writer, sink *FileSink, verbose bool) Logger {
	consoleLevel := slog.LevelInfo
	if verbose {
		consoleLevel = slog.LevelDebug
	}
	h := &teeHandler{
		console: slog.NewTextHandler(console, &slog.HandlerOptions{Level: consoleLevel}),
		file:    slog.NewTextHandler(sink, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}
	return &slogLogger{l: slog.New(h)}
}
