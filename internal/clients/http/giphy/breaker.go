package giphy

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"
)

// State is the circuit breaker position.
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// ParseState maps a persisted value to a State; unknown values read as closed.
func ParseState(raw string) State {
	switch State(strings.TrimSpace(raw)) {
	case StateOpen:
		return StateOpen
	case StateHalfOpen:
		return StateHalfOpen
	default:
		return StateClosed
	}
}

// BreakerSnapshot is a read-only view of the persisted breaker.
type BreakerSnapshot struct {
	State       State `json:"state"`
	ErrorCount  int   `json:"error_count"`
	LastErrorAt int64 `json:"last_error_at"`
	Threshold   int   `json:"threshold"`
}

// CircuitBreaker guards upstream calls using state kept in a BreakerStore.
// It holds no in-process state, so several processes sharing the store see
// one breaker. Concurrent updates are last-writer-wins.
type CircuitBreaker struct {
	store     BreakerStore
	threshold int
	timeout   time.Duration
	now       func() time.Time
	logger    *slog.Logger
	metrics   *Metrics
}

// BreakerOption configures a CircuitBreaker.
type BreakerOption func(*CircuitBreaker)

// WithBreakerClock overrides the time source.
func WithBreakerClock(now func() time.Time) BreakerOption {
	return func(b *CircuitBreaker) {
		if now != nil {
			b.now = now
		}
	}
}

// WithBreakerLogger attaches a logger for state transitions and store errors.
func WithBreakerLogger(logger *slog.Logger) BreakerOption {
	return func(b *CircuitBreaker) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithBreakerMetrics publishes state transitions to metrics.
func WithBreakerMetrics(metrics *Metrics) BreakerOption {
	return func(b *CircuitBreaker) {
		b.metrics = metrics
	}
}

// NewCircuitBreaker opens after threshold consecutive failures and allows a
// probe once timeout has elapsed since the last failure.
func NewCircuitBreaker(store BreakerStore, threshold int, timeout time.Duration, opts ...BreakerOption) *CircuitBreaker {
	if threshold < 1 {
		threshold = 1
	}
	b := &CircuitBreaker{
		store:     store,
		threshold: threshold,
		timeout:   timeout,
		now:       time.Now,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// CanMakeRequest reports whether an upstream call is allowed. An open breaker
// whose timeout has elapsed moves to half-open and admits the call.
func (b *CircuitBreaker) CanMakeRequest(ctx context.Context) bool {
	if b.state(ctx) != StateOpen {
		return true
	}
	last := b.lastErrorAt(ctx)
	if b.now().Unix()-last > int64(b.timeout/time.Second) {
		b.setState(ctx, StateHalfOpen)
		b.logger.InfoContext(ctx, "giphy circuit breaker half-open, allowing probe request",
			slog.String("state", string(StateHalfOpen)))
		return true
	}
	return false
}

// RecordSuccess closes a half-open breaker and clears the failure count.
// An open breaker is left untouched.
func (b *CircuitBreaker) RecordSuccess(ctx context.Context) {
	switch b.state(ctx) {
	case StateOpen:
		return
	case StateHalfOpen:
		b.setState(ctx, StateClosed)
		b.setErrorCount(ctx, 0)
		b.logger.InfoContext(ctx, "giphy circuit breaker closed after successful probe",
			slog.String("state", string(StateClosed)))
	default:
		b.setErrorCount(ctx, 0)
	}
}

// RecordFailure counts a failed upstream call and opens the breaker when the
// threshold is reached or when a half-open probe failed.
func (b *CircuitBreaker) RecordFailure(ctx context.Context, message string) {
	previous := b.state(ctx)
	count := b.errorCount(ctx) + 1
	b.setErrorCount(ctx, count)
	b.setLastErrorAt(ctx, b.now().Unix())

	switch {
	case previous == StateHalfOpen:
		b.setState(ctx, StateOpen)
		b.logger.WarnContext(ctx, "giphy circuit breaker reopened after failed probe",
			slog.String("state", string(StateOpen)),
			slog.Int("error_count", count),
			slog.String("message", message))
	case count >= b.threshold:
		b.setState(ctx, StateOpen)
		b.logger.WarnContext(ctx, "giphy circuit breaker opened",
			slog.String("state", string(StateOpen)),
			slog.Int("error_count", count),
			slog.Int("threshold", b.threshold),
			slog.String("message", message))
	default:
		b.logger.InfoContext(ctx, "giphy upstream failure recorded",
			slog.Int("error_count", count),
			slog.Int("threshold", b.threshold),
			slog.String("message", message))
	}
}

// Snapshot reads the persisted breaker fields.
func (b *CircuitBreaker) Snapshot(ctx context.Context) BreakerSnapshot {
	return BreakerSnapshot{
		State:       b.state(ctx),
		ErrorCount:  b.errorCount(ctx),
		LastErrorAt: b.lastErrorAt(ctx),
		Threshold:   b.threshold,
	}
}

func (b *CircuitBreaker) state(ctx context.Context) State {
	state, err := b.store.State(ctx)
	if err != nil {
		b.logStoreError(ctx, "read state", err)
		return StateClosed
	}
	return state
}

func (b *CircuitBreaker) errorCount(ctx context.Context) int {
	count, err := b.store.ErrorCount(ctx)
	if err != nil {
		b.logStoreError(ctx, "read error count", err)
		return 0
	}
	return count
}

func (b *CircuitBreaker) lastErrorAt(ctx context.Context) int64 {
	last, err := b.store.LastErrorAt(ctx)
	if err != nil {
		b.logStoreError(ctx, "read last error time", err)
		return 0
	}
	return last
}

func (b *CircuitBreaker) setState(ctx context.Context, state State) {
	if err := b.store.SetState(ctx, state); err != nil {
		b.logStoreError(ctx, "write state", err)
		return
	}
	b.metrics.SetBreakerState(state)
}

func (b *CircuitBreaker) setErrorCount(ctx context.Context, count int) {
	if err := b.store.SetErrorCount(ctx, count); err != nil {
		b.logStoreError(ctx, "write error count", err)
	}
}

func (b *CircuitBreaker) setLastErrorAt(ctx context.Context, unix int64) {
	if err := b.store.SetLastErrorAt(ctx, unix); err != nil {
		b.logStoreError(ctx, "write last error time", err)
	}
}

func (b *CircuitBreaker) logStoreError(ctx context.Context, op string, err error) {
	b.logger.ErrorContext(ctx, "giphy circuit breaker store error",
		slog.String("op", op),
		slog.String("error", err.Error()))
}
