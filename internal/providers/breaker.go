package providers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

const (
	breakerConsecutiveFailures = 5
	breakerOpenTimeout         = 30 * time.Second
	breakerHalfOpenRequests    = 1
)

// ErrCircuitOpen is returned without calling upstream while the breaker is open.
var ErrCircuitOpen = fmt.Errorf("%w: circuit open", ErrProviderUnavailable)

var errServerStatus = errors.New("upstream server error")

type breakerDoer struct {
	inner Doer
	cb    *gobreaker.CircuitBreaker
}

// NewBreakerDoer trips after consecutive transport errors or 5xx responses
// and fails fast with ErrCircuitOpen until the open timeout passes.
func NewBreakerDoer(inner Doer, name string, logger *slog.Logger) Doer {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: breakerHalfOpenRequests,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerConsecutiveFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger != nil {
				logger.Warn("circuit breaker state changed",
					slog.String("provider", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()),
				)
			}
		},
	}
	return &breakerDoer{inner: inner, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *breakerDoer) Do(req *http.Request) (*http.Response, error) {
	if b.inner == nil {
		return nil, ErrProviderUnavailable
	}
	var resp *http.Response
	_, err := b.cb.Execute(func() (interface{}, error) {
		r, err := b.inner.Do(req)
		resp = r
		if err != nil {
			return nil, err
		}
		if r.StatusCode >= http.StatusInternalServerError {
			return nil, errServerStatus
		}
		return nil, nil
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, ErrCircuitOpen
	case errors.Is(err, errServerStatus):
		// The caller maps the status itself.
		return resp, nil
	}
	return resp, err
}

// State exposes the breaker state for readiness reporting and tests.
func (b *breakerDoer) State() gobreaker.State {
	return b.cb.State()
}
