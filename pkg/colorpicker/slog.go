package colorpicker

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SlogAdapter wraps a *slog.Logger to implement the Logger interface.
//
//	opts := colorpicker.DefaultOptions()
//	opts.Logger = colorpicker.NewSlogAdapter(slog.Default())
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a Logger adapter from a *slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug logs a debug-level message with optional key-value pairs.
func (s *SlogAdapter) Debug(msg string, args ...any) {
	s.logger.Debug(msg, args...)
}

// Info logs an info-level message with optional key-value pairs.
func (s *SlogAdapter) Info(msg string, args ...any) {
	s.logger.Info(msg, args...)
}

// Warn logs a warning-level message with optional key-value pairs.
func (s *SlogAdapter) Warn(msg string, args ...any) {
	s.logger.Warn(msg, args...)
}

// Error logs an error-level message with optional key-value pairs.
func (s *SlogAdapter) Error(msg string, args ...any) {
	s.logger.Error(msg, args...)
}

// With returns an adapter that adds args to every record.
func (s *SlogAdapter) With(args ...any) *SlogAdapter {
	return &SlogAdapter{logger: s.logger.With(args...)}
}

// DefaultLogger logs text records at Info level to stderr.
func DefaultLogger() Logger {
	return NewLogger(os.Stderr, slog.LevelInfo, false)
}

// DebugLogger logs text records at Debug level to stderr, with source
// locations.
func DebugLogger() Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})
	return &SlogAdapter{logger: slog.New(handler)}
}

// JSONLogger returns a Logger that writes JSON records to w.
func JSONLogger(w io.Writer, level slog.Level) Logger {
	return NewLogger(w, level, true)
}

// NewLogger returns a Logger writing to w (stderr when nil) at level, as
// JSON or as text.
func NewLogger(w io.Writer, level slog.Level, json bool) Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &SlogAdapter{logger: slog.New(handler)}
}

// ParseLevel maps "debug", "info", "warn" or "error" to a slog level.
// Anything else is Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NopLogger returns a Logger that discards all log messages.
func NopLogger() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}
