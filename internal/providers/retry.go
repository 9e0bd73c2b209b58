package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/preston-bernstein/mlb-props-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxRetryAfter        = 30 * time.Second
)

type backoffFunc func(attempt int) time.Duration

// retryingDoer retries transport failures, 429s and 5xx responses with
// jittered linear backoff, honoring Retry-After when the upstream sends one.
type retryingDoer struct {
	inner        Doer
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc
	rngMu        sync.Mutex
	rng          *rand.Rand
}

// NewRetryingDoer wraps inner with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingDoer(inner Doer, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, backoff time.Duration) Doer {
	return NewRetryingDoerWithRNG(inner, logger, recorder, providerName, nil, maxAttempts, backoff)
}

// NewRetryingDoerWithRNG is NewRetryingDoer with a caller-supplied jitter source.
func NewRetryingDoerWithRNG(inner Doer, logger *slog.Logger, recorder *metrics.Recorder, providerName string, rng *rand.Rand, maxAttempts int, backoff time.Duration) Doer {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingDoer{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
		rng: rng,
	}
}

func (r *retryingDoer) Do(req *http.Request) (*http.Response, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}
	ctx := req.Context()

	for attempt := 1; ; attempt++ {
		if attempt > 1 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			req.Body = body
		}

		start := time.Now()
		resp, err := r.inner.Do(req)
		failure := attemptFailure(resp, err)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), failure)
		if failure == nil {
			return resp, nil
		}

		var retryAfter time.Duration
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			retryAfter = ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
			r.metrics.RecordRateLimit(r.providerName, retryAfter)
		}

		if attempt >= r.maxAttempts || !retryable(ctx, resp, err) {
			if attempt > 1 {
				r.logWarn(ctx, "provider request failed", "attempts", attempt, "err", failure)
			}
			return resp, err
		}

		discard(resp)
		delay := r.computeDelay(retryAfter, attempt)
		r.logWarn(ctx, "provider request retry",
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			"err", failure,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

func (r *retryingDoer) computeDelay(retryAfter time.Duration, attempt int) time.Duration {
	if retryAfter > 0 {
		if retryAfter > maxRetryAfter {
			return maxRetryAfter
		}
		return retryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := base / 2

	r.rngMu.Lock()
	jitter := time.Duration(r.rng.Int63n(int64(half) + 1))
	r.rngMu.Unlock()

	return half + jitter
}

func (r *retryingDoer) logWarn(ctx context.Context, msg string, args ...any) {
	logUpstream(ctx, r.logger, slog.LevelWarn, r.providerName, msg, args...)
}

// attemptFailure folds status-based failures into an error for metrics.
func attemptFailure(resp *http.Response, err error) error {
	if err != nil {
		return err
	}
	if resp == nil {
		return ErrProviderUnavailable
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func retryable(ctx context.Context, resp *http.Response, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		return !errors.Is(err, ErrCircuitOpen)
	}
	return resp != nil && (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError)
}

func discard(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodyLimit))
	resp.Body.Close()
}
