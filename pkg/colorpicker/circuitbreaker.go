package colorpicker

import (
	"errors"
	"sync"
	"time"

	"github.com/opd-ai/go-colorpicker/internal/history"
)

// CircuitState is the state of a circuit breaker.
type CircuitState int

const (
	// CircuitClosed lets every call through.
	CircuitClosed CircuitState = iota
	// CircuitOpen rejects calls until the timeout passes.
	CircuitOpen
	// CircuitHalfOpen lets a limited number of trial calls through.
	CircuitHalfOpen
)

// String returns the string representation of the circuit state.
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned when a circuit breaker is open and rejecting requests.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig configures a CircuitBreaker.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens
	// the circuit. Default: 3
	FailureThreshold int
	// SuccessThreshold is the number of half-open successes that closes
	// it again. Default: 1
	SuccessThreshold int
	// Timeout is how long the circuit stays open. Default: 30 seconds
	Timeout time.Duration
	// MaxHalfOpenRequests limits trial calls while half-open. Default: 1
	MaxHalfOpenRequests int
	// OnStateChange is called on its own goroutine after a transition.
	OnStateChange func(from, to CircuitState)
}

// DefaultCircuitBreakerConfig returns the configuration used for history
// persistence: a few failed writes stop further disk access for a while.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold:    3,
		SuccessThreshold:    1,
		Timeout:             30 * time.Second,
		MaxHalfOpenRequests: 1,
	}
}

// CircuitBreaker stops calling a failing operation for a while.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu               sync.Mutex
	state            CircuitState
	failures         int
	successes        int
	lastFailure      time.Time
	halfOpenRequests int
	totalSuccesses   int64
	totalFailures    int64
	totalRejections  int64
}

// NewCircuitBreaker creates a closed circuit breaker. Zero config values
// take their defaults.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCircuitBreakerConfig()
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = def.FailureThreshold
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = def.SuccessThreshold
	}
	if config.Timeout <= 0 {
		config.Timeout = def.Timeout
	}
	if config.MaxHalfOpenRequests <= 0 {
		config.MaxHalfOpenRequests = def.MaxHalfOpenRequests
	}
	return &CircuitBreaker{config: config, state: CircuitClosed}
}

// Execute runs fn unless the circuit is open, in which case it returns
// ErrCircuitOpen.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allowRequest() {
		cb.mu.Lock()
		cb.totalRejections++
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	err := fn()
	cb.recordResult(err)
	return err
}

// State returns the current state. An open circuit whose timeout passed
// reports half-open.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == CircuitOpen && time.Since(cb.lastFailure) >= cb.config.Timeout {
		return CircuitHalfOpen
	}
	return cb.state
}

// CircuitBreakerStats contains statistics about circuit breaker operation.
type CircuitBreakerStats struct {
	State           CircuitState
	Failures        int
	Successes       int
	TotalSuccesses  int64
	TotalFailures   int64
	TotalRejections int64
	LastFailure     time.Time
}

// Stats returns circuit breaker statistics.
func (cb *CircuitBreaker) Stats() CircuitBreakerStats {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return CircuitBreakerStats{
		State:           cb.state,
		Failures:        cb.failures,
		Successes:       cb.successes,
		TotalSuccesses:  cb.totalSuccesses,
		TotalFailures:   cb.totalFailures,
		TotalRejections: cb.totalRejections,
		LastFailure:     cb.lastFailure,
	}
}

// Reset closes the circuit and clears the counters of the current window.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.transitionTo(CircuitClosed)
	cb.failures = 0
	cb.successes = 0
}

func (cb *CircuitBreaker) allowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitOpen:
		if time.Since(cb.lastFailure) >= cb.config.Timeout {
			cb.transitionTo(CircuitHalfOpen)
			cb.halfOpenRequests = 1
			return true
		}
		return false
	case CircuitHalfOpen:
		if cb.halfOpenRequests < cb.config.MaxHalfOpenRequests {
			cb.halfOpenRequests++
			return true
		}
		return false
	}
	return false
}

func (cb *CircuitBreaker) recordResult(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.totalSuccesses++
		switch cb.state {
		case CircuitClosed:
			cb.failures = 0
		case CircuitHalfOpen:
			cb.successes++
			if cb.successes >= cb.config.SuccessThreshold {
				cb.transitionTo(CircuitClosed)
				cb.failures = 0
				cb.successes = 0
			}
		}
		return
	}

	cb.totalFailures++
	cb.lastFailure = time.Now()
	switch cb.state {
	case CircuitClosed:
		cb.failures++
		if cb.failures >= cb.config.FailureThreshold {
			cb.transitionTo(CircuitOpen)
		}
	case CircuitHalfOpen:
		cb.transitionTo(CircuitOpen)
		cb.successes = 0
	}
}

// transitionTo must be called with mu held.
func (cb *CircuitBreaker) transitionTo(next CircuitState) {
	if cb.state == next {
		return
	}
	prev := cb.state
	cb.state = next
	cb.halfOpenRequests = 0
	if cb.config.OnStateChange != nil {
		go cb.config.OnStateChange(prev, next)
	}
}

// breakerStore guards a history store with a circuit breaker so a broken
// disk does not stall every OK.
type breakerStore struct {
	store   history.Store
	breaker *CircuitBreaker
}

func (s *breakerStore) Load() ([]string, error) {
	var entries []string
	err := s.breaker.Execute(func() error {
		var err error
		entries, err = s.store.Load()
		return err
	})
	return entries, err
}

func (s *breakerStore) Save(entries []string) error {
	return s.breaker.Execute(func() error {
		return s.store.Save(entries)
	})
}
