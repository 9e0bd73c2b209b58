package providers

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrProviderUnavailable covers unreachable upstreams, timeouts and non-2xx responses.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrUnexpectedPayload means the upstream answered with a shape we could not decode.
	ErrUnexpectedPayload = errors.New("unexpected provider payload")
	// ErrNotFound means the upstream answered but had no matching record.
	ErrNotFound = errors.New("not found")
	// ErrMissingCredential short-circuits a whole fetch cycle.
	ErrMissingCredential = errors.New("missing provider credential")
	// ErrInternalFault marks a recovered panic inside a single task.
	ErrInternalFault = errors.New("internal computation fault")
)

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// Unwrap lets callers treat a rate limit as an unavailable provider.
func (e *RateLimitError) Unwrap() error {
	return ErrProviderUnavailable
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}
