package providers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/mlb-props-service/internal/metrics"
)

// ChainConfig describes the middleware stack in front of an upstream client.
type ChainConfig struct {
	Provider      string
	Timeout       time.Duration
	RatePerSecond float64 // zero disables pacing
	Burst         int
	MaxAttempts   int
	Backoff       time.Duration
}

// NewUpstreamDoer builds retry -> pacing -> circuit breaker -> http.Client.
// Pacing sits inside the retry loop so every attempt takes a token.
func NewUpstreamDoer(base Doer, cfg ChainConfig, logger *slog.Logger, recorder *metrics.Recorder) Doer {
	if base == nil {
		base = &http.Client{Timeout: cfg.Timeout}
	}
	doer := NewBreakerDoer(base, cfg.Provider, logger)
	if cfg.RatePerSecond > 0 {
		doer = NewLimitedDoer(doer, cfg.Provider, cfg.RatePerSecond, cfg.Burst, logger)
	}
	return NewRetryingDoer(doer, logger, recorder, cfg.Provider, cfg.MaxAttempts, cfg.Backoff)
}
