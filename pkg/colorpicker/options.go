package colorpicker

import "time"

// DefaultShutdownTimeout is the default timeout for graceful shutdown.
const DefaultShutdownTimeout = 5 * time.Second

// Options configures a Picker beyond what the configuration file holds.
type Options struct {
	// Color is the initial value. It wins over the configured default
	// color and also selects the notation it is written in. Empty means use
	// the configuration.
	Color string

	// WindowTitle overrides the configured window title.
	WindowTitle string

	// Headless runs without a window. Surfaces can still be attached and
	// exported.
	Headless bool

	// NoHistoryFile keeps the history in memory even when the
	// configuration names a history file.
	NoHistoryFile bool

	// ShutdownTimeout sets the maximum time to wait for graceful shutdown.
	// Zero means DefaultShutdownTimeout.
	ShutdownTimeout time.Duration

	// Logger receives debug and info messages. Nil disables logging.
	Logger Logger

	// Metrics collects operational metrics. Nil means DefaultMetrics().
	Metrics *Metrics

	// ErrorTracker aggregates runtime errors. Nil means
	// DefaultErrorTracker().
	ErrorTracker *ErrorTracker

	// HistoryBreaker guards history persistence. Nil means a breaker with
	// DefaultCircuitBreakerConfig.
	HistoryBreaker *CircuitBreaker

	// WatchConfig reloads the configuration in place whenever the file
	// changes on disk. Only pickers created with New can watch.
	WatchConfig bool

	// WatchDebounce is the quiet period before a change triggers a reload.
	// Zero means DefaultWatchDebounce.
	WatchDebounce time.Duration
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Headless:        false,
		ShutdownTimeout: 0, // DefaultShutdownTimeout
	}
}

// Logger is the logging interface used by the picker. Its method set
// matches the slog-style key-value calls.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
