package resilience

import (
	"errors"
	"testing"
	"time"
)

type transition struct {
	from, to CircuitState
}

func newTestBreaker(cfg CircuitBreakerConfig) (*CircuitBreaker, *time.Time, *[]transition) {
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	var seen []transition
	b := NewCircuitBreaker("odds-api", cfg, func(_ string, from, to CircuitState) {
		seen = append(seen, transition{from: from, to: to})
	})
	b.now = func() time.Time { return now }
	return b, &now, &seen
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, now, seen := newTestBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	err := b.Allow()
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if err.Error() != "circuit breaker is open: odds-api" {
		t.Fatalf("expected breaker name in error, got %q", err.Error())
	}

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}

	want := []transition{
		{CircuitStateClosed, CircuitStateOpen},
		{CircuitStateOpen, CircuitStateHalfOpen},
		{CircuitStateHalfOpen, CircuitStateClosed},
	}
	if len(*seen) != len(want) {
		t.Fatalf("expected %d transitions, got %+v", len(want), *seen)
	}
	for i := range want {
		if (*seen)[i] != want[i] {
			t.Fatalf("transition %d: expected %+v, got %+v", i, want[i], (*seen)[i])
		}
	}
}

func TestCircuitBreaker_ExecuteIgnoresNonFailures(t *testing.T) {
	b, _, _ := newTestBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 1})
	errClient := errors.New("bad request")
	notCounted := func(err error) bool { return !errors.Is(err, errClient) }

	for range 3 {
		if err := b.Execute(func() error { return errClient }, notCounted); !errors.Is(err, errClient) {
			t.Fatalf("expected fn error, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed when errors are not failures, got %s", state)
	}

	errServer := errors.New("upstream 503")
	_ = b.Execute(func() error { return errServer }, notCounted)
	if err := b.Execute(func() error { return nil }, notCounted); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open circuit to reject, got %v", err)
	}
}

func TestCircuitBreaker_DisabledAlwaysRuns(t *testing.T) {
	b, _, seen := newTestBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1})
	calls := 0
	for range 5 {
		_ = b.Execute(func() error { calls++; return errors.New("boom") }, nil)
	}
	if calls != 5 {
		t.Fatalf("expected every call to run, got %d", calls)
	}
	if len(*seen) != 0 {
		t.Fatalf("expected no transitions, got %+v", *seen)
	}
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	got := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	want := DefaultCircuitBreakerConfig()
	if got != want {
		t.Fatalf("expected defaults %+v, got %+v", want, got)
	}
}
