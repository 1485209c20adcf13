package colorpicker

import (
	"sync"
	"testing"
)

func TestNewSessionID(t *testing.T) {
	id1 := NewSessionID()
	id2 := NewSessionID()

	if len(id1) != 16 {
		t.Errorf("expected 16 hex digits, got %d: %s", len(id1), id1)
	}
	if id1 == id2 {
		t.Error("expected unique session IDs")
	}
}

// recordingLogger captures calls made through the Logger interface.
type recordingLogger struct {
	mu    sync.Mutex
	calls []loggedCall
}

type loggedCall struct {
	level string
	msg   string
	args  []any
}

func (r *recordingLogger) record(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, loggedCall{level: level, msg: msg, args: args})
}

func (r *recordingLogger) Debug(msg string, args ...any) { r.record("debug", msg, args) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.record("info", msg, args) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *recordingLogger) Error(msg string, args ...any) { r.record("error", msg, args) }

func (r *recordingLogger) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.msg
	}
	return out
}

func TestSessionLogger(t *testing.T) {
	rec := &recordingLogger{}
	logger := newSessionLogger(rec, "test-session")

	logger.Debug("debug message", "key1", "value1")
	logger.Info("info message", "key2", "value2")
	logger.Warn("warn message", "key3", "value3")
	logger.Error("error message", "key4", "value4")

	if len(rec.calls) != 4 {
		t.Fatalf("expected 4 calls, got %d", len(rec.calls))
	}
	for i, call := range rec.calls {
		if len(call.args) != 4 {
			t.Errorf("call %d: expected 4 args, got %d", i, len(call.args))
			continue
		}
		if call.args[0] != "session" || call.args[1] != "test-session" {
			t.Errorf("call %d: args = %v", i, call.args)
		}
	}
}

func TestSessionLogger_NoSession(t *testing.T) {
	rec := &recordingLogger{}
	logger := newSessionLogger(rec, "")

	logger.Info("message", "key", "value")

	if len(rec.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(rec.calls))
	}
	if len(rec.calls[0].args) != 2 {
		t.Errorf("expected 2 args (original only), got %d", len(rec.calls[0].args))
	}
}

func TestSessionLogger_NilLogger(t *testing.T) {
	logger := newSessionLogger(nil, "x")

	// Should not panic
	logger.Debug("test")
	logger.Info("test")
	logger.Warn("test")
	logger.Error("test")
}

func TestSessionTagsPickerLogs(t *testing.T) {
	rec := &recordingLogger{}
	opts := testOptions()
	opts.Logger = rec
	p := newTestPickerWithOptions(t, "picker.config = {}", opts)

	if err := p.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	session := p.Status().Session
	_ = p.Stop()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, c := range rec.calls {
		if c.msg != "picker started" {
			continue
		}
		if len(c.args) < 2 || c.args[0] != "session" || c.args[1] != string(session) {
			t.Errorf("picker started args = %v, want session %s first", c.args, session)
		}
		return
	}
	t.Error("no picker started record")
}
