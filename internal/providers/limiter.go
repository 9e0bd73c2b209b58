package providers

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
)

// limitedDoer paces outgoing requests with a token bucket.
type limitedDoer struct {
	next     Doer
	limiter  *rate.Limiter
	provider string
	logger   *slog.Logger
}

// NewLimitedDoer returns a Doer that allows perSecond requests with the given
// burst. Calls block until a token is available or the request context ends.
func NewLimitedDoer(next Doer, provider string, perSecond float64, burst int, logger *slog.Logger) Doer {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &limitedDoer{
		next:     next,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		provider: provider,
		logger:   logger,
	}
}

func (l *limitedDoer) Do(req *http.Request) (*http.Response, error) {
	if l.next == nil {
		logUpstream(req.Context(), l.logger, slog.LevelWarn, l.provider, "provider unavailable")
		return nil, ErrProviderUnavailable
	}
	if err := l.limiter.Wait(req.Context()); err != nil {
		logUpstream(req.Context(), l.logger, slog.LevelWarn, l.provider, "rate-limited request canceled", "err", err)
		return nil, err
	}
	return l.next.Do(req)
}
