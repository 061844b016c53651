// internal/logger/logger.go
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"
)

var current atomic.Pointer[slog.Logger]

func init() {
	// Discard until Init is called. The terminal belongs to the TUI.
	current.Store(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1})))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger writing to w with the level and filters from cfg.
func New(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.LogLevel),
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.SourceKey:
				if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
					source.File = filepath.Base(source.File)
				}
			case slog.TimeKey:
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	return slog.New(newFilteringHandler(slog.NewTextHandler(w, opts), cfg.filters()))
}

// Init opens the configured output and installs the package logger.
// The returned Closer releases the log file.
func Init(cfg Config) (io.Closer, error) {
	var (
		w      io.Writer = io.Discard
		closer io.Closer = nopCloser{}
	)
	switch cfg.LogFilePath {
	case "":
	case "-":
		w = os.Stderr
	default:
		f, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %q: %w", cfg.LogFilePath, err)
		}
		w, closer = f, f
	}

	l := New(cfg, w)
	current.Store(l)
	l.Info("logger initialized", "level", ParseLevel(cfg.LogLevel).String())
	return closer, nil
}

// Set installs l as the package logger.
func Set(l *slog.Logger) {
	if l != nil {
		current.Store(l)
	}
}

// Get returns the package logger.
func Get() *slog.Logger {
	return current.Load()
}

// logAt emits a record attributed to the caller of the exported helper.
func logAt(level slog.Level, tag string, format string, args ...any) {
	l := current.Load()
	if !l.Enabled(context.Background(), level) {
		return
	}

	var pcs [1]uintptr
	// Skip runtime.Callers, logAt and the exported wrapper.
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	_ = l.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...any) {
	logAt(slog.LevelDebug, "", format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...any) {
	logAt(slog.LevelInfo, "", format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...any) {
	logAt(slog.LevelWarn, "", format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...any) {
	logAt(slog.LevelError, "", format, args...)
}

// DebugTagf logs a debug message carrying a filterable tag.
func DebugTagf(tag, format string, args ...any) {
	logAt(slog.LevelDebug, tag, format, args...)
}

// InfoTagf logs an info message carrying a filterable tag.
func InfoTagf(tag, format string, args ...any) {
	logAt(slog.LevelInfo, tag, format, args...)
}

// Fatalf logs an error message and exits.
func Fatalf(format string, args ...any) {
	logAt(slog.LevelError, "", format, args...)
	os.Exit(1)
}
