package oddsapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-props-service/internal/config"
	"github.com/preston-bernstein/mlb-props-service/internal/providers"
)

func resolveHTTPClient(client providers.Doer) providers.Doer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func durationOrDefault(v, fallback time.Duration) time.Duration {
	if v <= 0 {
		return fallback
	}
	return v
}

func listOrDefault(v, fallback []string) []string {
	if len(v) == 0 {
		return append([]string(nil), fallback...)
	}
	return append([]string(nil), v...)
}

func batchesOrDefault(v [][]string) [][]string {
	src := v
	if len(src) == 0 {
		src = config.DefaultMarketBatches()
	}
	out := make([][]string, 0, len(src))
	for _, b := range src {
		if len(b) > 0 {
			out = append(out, append([]string(nil), b...))
		}
	}
	return out
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
