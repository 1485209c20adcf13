package colorpicker

import (
	"crypto/rand"
	"encoding/hex"
)

// SessionID identifies one picker session, from Start to the end of the
// window. Every log record of the session carries it.
type SessionID string

// NewSessionID returns a random 16 hex digit ID.
func NewSessionID() SessionID {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return SessionID(hex.EncodeToString(b[:]))
}

// sessionLogger tags every record with a "session" attribute.
type sessionLogger struct {
	logger Logger
	id     SessionID
}

// newSessionLogger wraps logger. A nil logger discards everything and an
// empty id leaves records untagged.
func newSessionLogger(logger Logger, id SessionID) *sessionLogger {
	if logger == nil {
		logger = NopLogger()
	}
	return &sessionLogger{logger: logger, id: id}
}

func (l *sessionLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, l.tag(args)...) }
func (l *sessionLogger) Info(msg string, args ...any)  { l.logger.Info(msg, l.tag(args)...) }
func (l *sessionLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, l.tag(args)...) }
func (l *sessionLogger) Error(msg string, args ...any) { l.logger.Error(msg, l.tag(args)...) }

func (l *sessionLogger) tag(args []any) []any {
	if l.id == "" {
		return args
	}
	return append([]any{"session", string(l.id)}, args...)
}
