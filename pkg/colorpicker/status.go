package colorpicker

import "time"

// Status is a snapshot of a Picker's state.
type Status struct {
	// Running indicates if the picker is currently active.
	Running bool
	// StartTime is when the picker was last started (zero if never started).
	StartTime time.Time
	// ColorChanges counts color changes since the last start.
	ColorChanges uint64
	// Value is the selected color in the current notation.
	Value string
	// Notation is the name of the notation Value is written in.
	Notation string
	// Session identifies the current or last session.
	Session SessionID
	// LastError is the most recent error encountered (nil if none).
	LastError error
	// ConfigSource describes where the configuration came from.
	ConfigSource string
}

// ErrorHandler is a callback for runtime errors.
// It is called asynchronously; do not block in the handler.
type ErrorHandler func(err error)

// EventHandler is a callback for lifecycle and dialog events.
// It is called asynchronously; do not block in the handler.
type EventHandler func(event Event)

// Event is a lifecycle or dialog event.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Message   string
}

// EventType enumerates event types. Compare against the constants; the
// integer values are not stable.
type EventType int

const (
	// EventStarted is emitted when the picker starts.
	EventStarted EventType = iota
	// EventStopped is emitted when the picker stops or its window closes.
	EventStopped
	// EventRestarted is emitted after a successful restart.
	EventRestarted
	// EventConfigReloaded is emitted when configuration is reloaded.
	EventConfigReloaded
	// EventError is emitted when a recoverable error occurs.
	EventError
	// EventAccepted is emitted when a color is confirmed with OK.
	EventAccepted
	// EventCancelled is emitted when the dialog is cancelled.
	EventCancelled
)

// String returns a human-readable representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventStarted:
		return "started"
	case EventStopped:
		return "stopped"
	case EventRestarted:
		return "restarted"
	case EventConfigReloaded:
		return "config_reloaded"
	case EventError:
		return "error"
	case EventAccepted:
		return "accepted"
	case EventCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
