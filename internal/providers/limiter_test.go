package providers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestLimitedDoerPacesRequests(t *testing.T) {
	inner := &scriptedDoer{statuses: []int{http.StatusOK}}
	ld := NewLimitedDoer(inner, "mlbstats", 100, 1, nil)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := ld.Do(newGet(t, context.Background())); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("expected pacing to spread 3 calls at 100/s, elapsed %s", elapsed)
	}
	if inner.calls.Load() != 3 {
		t.Fatalf("expected 3 calls, got %d", inner.calls.Load())
	}
}

func TestLimitedDoerRespectsCanceledContext(t *testing.T) {
	inner := &scriptedDoer{statuses: []int{http.StatusOK}}
	ld := NewLimitedDoer(inner, "mlbstats", 0.001, 1, nil)

	// drain the single burst token
	if _, err := ld.Do(newGet(t, context.Background())); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ld.Do(newGet(t, ctx)); err == nil {
		t.Fatalf("expected error on canceled context")
	}
	if inner.calls.Load() != 1 {
		t.Fatalf("expected inner not called on canceled context, got %d", inner.calls.Load())
	}
}

func TestLimitedDoerHandlesNilInner(t *testing.T) {
	ld := NewLimitedDoer(nil, "mlbstats", 0, 0, nil)
	if _, err := ld.Do(newGet(t, context.Background())); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
