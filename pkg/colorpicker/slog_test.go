package colorpicker

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	adapter := NewSlogAdapter(slog.New(handler))

	tests := []struct {
		name string
		log  func()
		want []string
	}{
		{"debug", func() { adapter.Debug("debug message", "key", "value") }, []string{"debug message", "key=value"}},
		{"info", func() { adapter.Info("info message", "count", 42) }, []string{"info message", "count=42"}},
		{"warn", func() { adapter.Warn("warn message") }, []string{"level=WARN", "warn message"}},
		{"error", func() { adapter.Error("error message", "err", "failed") }, []string{"level=ERROR", "err=failed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log()
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output %q does not contain %q", buf.String(), w)
				}
			}
		})
	}
}

func TestSlogAdapterWith(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil))).With("component", "history")
	adapter.Info("saved")
	if !strings.Contains(buf.String(), "component=history") {
		t.Errorf("With() attrs missing, got: %s", buf.String())
	}
}

func TestNewSlogAdapterNil(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	if adapter == nil {
		t.Fatal("NewSlogAdapter(nil) returned nil")
	}
	if adapter.logger == nil {
		t.Error("NewSlogAdapter(nil) should use slog.Default()")
	}
}

func TestDefaultAndDebugLogger(t *testing.T) {
	for _, logger := range []Logger{DefaultLogger(), DebugLogger()} {
		if logger == nil {
			t.Fatal("logger constructor returned nil")
		}
		// Should not panic when logging
		logger.Debug("test debug")
		logger.Info("test info")
	}
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := JSONLogger(&buf, slog.LevelInfo)

	logger.Info("json test", "field", "value")

	output := buf.String()
	if !strings.Contains(output, `"msg":"json test"`) {
		t.Errorf("JSONLogger did not produce JSON output, got: %s", output)
	}
	if !strings.Contains(output, `"field":"value"`) {
		t.Errorf("JSONLogger did not include field in JSON output, got: %s", output)
	}
}

func TestJSONLoggerNilWriter(t *testing.T) {
	logger := JSONLogger(nil, slog.LevelInfo)
	if logger == nil {
		t.Error("JSONLogger(nil, ...) returned nil")
	}
	// Writes to stderr
	logger.Info("test")
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn, false)

	logger.Debug("should not appear")
	logger.Info("should not appear")
	logger.Warn("should appear")

	output := buf.String()
	if strings.Contains(output, "should not appear") {
		t.Errorf("logger wrote records below its level, got: %s", output)
	}
	if !strings.Contains(output, "should appear") {
		t.Errorf("logger did not write the warn record, got: %s", output)
	}
}

func TestNewLoggerFormats(t *testing.T) {
	tests := []struct {
		name string
		json bool
		want string
	}{
		{"json", true, `"msg":"hello"`},
		{"text", false, "msg=hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, slog.LevelInfo, tt.json).Info("hello", "session", "abc123")
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
			if !strings.Contains(buf.String(), "abc123") {
				t.Errorf("output %q missing session attribute", buf.String())
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNopLogger(t *testing.T) {
	var logger Logger = NopLogger()
	if logger == nil {
		t.Fatal("NopLogger() returned nil")
	}
	// Should not panic and should not output anything
	logger.Debug("test debug", "key", "value")
	logger.Info("test info", "count", 42)
	logger.Warn("test warn")
	logger.Error("test error", "err", "something failed")
}

func TestSlogAdapterInterface(t *testing.T) {
	var _ Logger = (*SlogAdapter)(nil)
	var _ Logger = (*sessionLogger)(nil)
}
