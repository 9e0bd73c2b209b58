package providers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-props-service/internal/metrics"
)

// scriptedDoer replays statuses in order; a zero status means a transport error.
type scriptedDoer struct {
	statuses []int
	calls    atomic.Int32
}

func (s *scriptedDoer) Do(req *http.Request) (*http.Response, error) {
	_ = req
	idx := int(s.calls.Add(1)) - 1
	if idx >= len(s.statuses) {
		idx = len(s.statuses) - 1
	}
	status := s.statuses[idx]
	if status == 0 {
		return nil, errors.New("connection reset")
	}
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader("body")),
	}, nil
}

func newGet(t *testing.T, ctx context.Context) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://upstream.test/x", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	return req
}

func noBackoff(rd Doer) *retryingDoer {
	r := rd.(*retryingDoer)
	r.backoffFn = func(attempt int) time.Duration {
		_ = attempt
		return 0
	}
	return r
}

func TestRetryingDoerRetriesAndSucceeds(t *testing.T) {
	inner := &scriptedDoer{statuses: []int{0, http.StatusBadGateway, http.StatusOK}}
	rd := noBackoff(NewRetryingDoer(inner, slog.Default(), metrics.NewRecorder(), "flakey", 3, time.Millisecond))

	resp, err := rd.Do(newGet(t, context.Background()))
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if inner.calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", inner.calls.Load())
	}
}

func TestRetryingDoerStopsAfterMaxAttempts(t *testing.T) {
	inner := &scriptedDoer{statuses: []int{0}}
	rd := noBackoff(NewRetryingDoer(inner, nil, metrics.NewRecorder(), "flakey", 2, time.Millisecond))

	if _, err := rd.Do(newGet(t, context.Background())); err == nil {
		t.Fatal("expected error after retries")
	}
	if inner.calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", inner.calls.Load())
	}
}

func TestRetryingDoerReturnsFinalServerErrorResponse(t *testing.T) {
	inner := &scriptedDoer{statuses: []int{http.StatusServiceUnavailable}}
	rd := noBackoff(NewRetryingDoer(inner, nil, nil, "flakey", 2, time.Millisecond))

	resp, err := rd.Do(newGet(t, context.Background()))
	if err != nil {
		t.Fatalf("expected response for caller to map, got %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

func TestRetryingDoerDoesNotRetryClientErrors(t *testing.T) {
	inner := &scriptedDoer{statuses: []int{http.StatusUnauthorized, http.StatusOK}}
	rd := noBackoff(NewRetryingDoer(inner, nil, metrics.NewRecorder(), "flakey", 3, time.Millisecond))

	resp, err := rd.Do(newGet(t, context.Background()))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized || inner.calls.Load() != 1 {
		t.Fatalf("expected single 401 attempt, got %d after %d calls", resp.StatusCode, inner.calls.Load())
	}
}

func TestRetryingDoerDoesNotRetryOpenCircuit(t *testing.T) {
	var calls atomic.Int32
	inner := DoerFunc(func(req *http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, ErrCircuitOpen
	})
	rd := noBackoff(NewRetryingDoer(inner, nil, nil, "flakey", 3, time.Millisecond))

	if _, err := rd.Do(newGet(t, context.Background())); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected no retries on open circuit, got %d calls", calls.Load())
	}
}

func TestRetryingDoerRespectsContextCancel(t *testing.T) {
	inner := &scriptedDoer{statuses: []int{0}}
	rd := NewRetryingDoer(inner, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rd.Do(newGet(t, ctx)); err == nil {
		t.Fatal("expected error on canceled context")
	}
	if inner.calls.Load() != 1 {
		t.Fatalf("expected no retry after cancel, got %d calls", inner.calls.Load())
	}
}

func TestRetryingDoerRecordsRateLimitMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	inner := &scriptedDoer{statuses: []int{http.StatusTooManyRequests, http.StatusOK}}
	rd := noBackoff(NewRetryingDoer(inner, nil, rec, "rl", 2, time.Millisecond))

	if _, err := rd.Do(newGet(t, context.Background())); err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if got := rec.RateLimitHits("rl"); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := rec.ProviderCalls("rl"); got != 2 {
		t.Fatalf("expected 2 provider calls, got %d", got)
	}
	if got := rec.ProviderErrors("rl"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
}

func TestRetryingDoerDelaySelection(t *testing.T) {
	rd := NewRetryingDoerWithRNG(&scriptedDoer{statuses: []int{200}}, nil, nil, "rl", rand.New(rand.NewSource(1)), 2, time.Millisecond).(*retryingDoer)
	rd.backoffFn = func(attempt int) time.Duration {
		_ = attempt
		return 50 * time.Millisecond
	}

	if got := rd.computeDelay(3*time.Second, 1); got != 3*time.Second {
		t.Fatalf("expected retry-after delay, got %s", got)
	}
	if got := rd.computeDelay(time.Hour, 1); got != maxRetryAfter {
		t.Fatalf("expected capped retry-after, got %s", got)
	}
	for i := 0; i < 20; i++ {
		delay := rd.computeDelay(0, 1)
		if delay < 25*time.Millisecond || delay > 50*time.Millisecond {
			t.Fatalf("expected jittered delay between 25ms and 50ms, got %s", delay)
		}
	}
}

func TestNewRetryingDoerDefaults(t *testing.T) {
	rd := NewRetryingDoerWithRNG(nil, nil, nil, "", nil, 0, 0).(*retryingDoer)
	if rd.providerName != "provider" {
		t.Fatalf("expected fallback provider name, got %s", rd.providerName)
	}
	if rd.maxAttempts != defaultRetryAttempts {
		t.Fatalf("expected default attempts, got %d", rd.maxAttempts)
	}
	if rd.backoffFn(1) != defaultBackoff {
		t.Fatalf("expected default backoff")
	}
	if _, err := rd.Do(newGet(t, context.Background())); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable for nil inner, got %v", err)
	}
}
