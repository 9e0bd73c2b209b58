package providers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-props-service/internal/metrics"
)

func TestNewUpstreamDoerComposesStack(t *testing.T) {
	inner := &scriptedDoer{statuses: []int{http.StatusBadGateway, http.StatusOK}}
	rec := metrics.NewRecorder()
	doer := NewUpstreamDoer(inner, ChainConfig{
		Provider:      "mlbstats",
		RatePerSecond: 1000,
		Burst:         5,
		MaxAttempts:   2,
		Backoff:       time.Millisecond,
	}, nil, rec)

	rd, ok := doer.(*retryingDoer)
	if !ok {
		t.Fatalf("expected retry to be outermost, got %T", doer)
	}
	if _, ok := rd.inner.(*limitedDoer); !ok {
		t.Fatalf("expected pacing inside retry, got %T", rd.inner)
	}

	resp, err := doer.Do(newGet(t, context.Background()))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("expected retried success, got %v %v", resp, err)
	}
	if rec.ProviderCalls("mlbstats") != 2 {
		t.Fatalf("expected 2 recorded attempts, got %d", rec.ProviderCalls("mlbstats"))
	}
}

func TestNewUpstreamDoerSkipsPacingWhenDisabled(t *testing.T) {
	doer := NewUpstreamDoer(nil, ChainConfig{Provider: "oddsapi", Timeout: time.Second}, nil, nil).(*retryingDoer)
	if _, ok := doer.inner.(*breakerDoer); !ok {
		t.Fatalf("expected breaker directly inside retry, got %T", doer.inner)
	}
}
