package clients

import (
	"sync"
	"time"
)

// State is a circuit breaker state.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen rejects requests until the cool-down passes.
	StateOpen

	// StateHalfOpen lets a limited number of probes through.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures a CircuitBreaker.
type CircuitBreakerConfig struct {
	// MaxFailures is the run of consecutive failures that opens the circuit.
	MaxFailures int

	// Timeout is the cool-down spent open before probing.
	Timeout time.Duration

	// HalfOpenLimit caps in-flight probes and is the run of probe
	// successes that closes the circuit again.
	HalfOpenLimit int
}

// CircuitBreaker stops calls to a content host that keeps failing.
//
//	closed    -> open       after MaxFailures consecutive failures
//	open      -> half-open  once Timeout has passed
//	half-open -> closed     after HalfOpenLimit consecutive successes
//	half-open -> open       on any failure
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig

	state    State
	streak   int // consecutive failures (closed) or successes (half-open)
	inFlight int // probes outstanding while half-open
	openedAt time.Time

	onStateChange func(from, to State)
	now           func() time.Time
}

// NewCircuitBreaker creates a closed breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// OnStateChange registers fn to run, asynchronously, on every transition.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	cb.onStateChange = fn
	cb.mu.Unlock()
}

// Allow reports whether a request may proceed. A true result while
// half-open reserves a probe slot that RecordSuccess or RecordFailure
// releases.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.now().Sub(cb.openedAt) < cb.cfg.Timeout {
			return false
		}

		cb.setState(StateHalfOpen)
	}

	if cb.state == StateHalfOpen {
		if cb.inFlight >= cb.cfg.HalfOpenLimit {
			return false
		}

		cb.inFlight++
	}

	return true
}

// RecordSuccess records a completed request.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.streak = 0
	case StateHalfOpen:
		cb.release()
		cb.streak++

		if cb.streak >= cb.cfg.HalfOpenLimit {
			cb.setState(StateClosed)
		}
	}
}

// RecordFailure records a failed request.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.streak++
		if cb.streak >= cb.cfg.MaxFailures {
			cb.trip()
		}
	case StateHalfOpen:
		cb.release()
		cb.trip()
	}
}

// State returns the current state without advancing it.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

func (cb *CircuitBreaker) release() {
	if cb.inFlight > 0 {
		cb.inFlight--
	}
}

func (cb *CircuitBreaker) trip() {
	cb.openedAt = cb.now()
	cb.setState(StateOpen)
}

// setState must be called with mu held.
func (cb *CircuitBreaker) setState(to State) {
	from := cb.state
	if from == to {
		return
	}

	cb.state = to
	cb.streak = 0

	if to != StateHalfOpen {
		cb.inFlight = 0
	}

	if cb.onStateChange != nil {
		go cb.onStateChange(from, to)
	}
}
