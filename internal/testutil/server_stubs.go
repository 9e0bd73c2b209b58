package testutil

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/preston-bernstein/mlb-props-service/internal/metrics"
	"github.com/preston-bernstein/mlb-props-service/internal/poller"
)

// StubPoller counts Start and Stop calls and reports a fixed status.
type StubPoller struct {
	StartCalls atomic.Int32
	StopCalls  atomic.Int32
	StopErr    error
	StatusVal  poller.Status
}

func (p *StubPoller) Start(context.Context) { p.StartCalls.Add(1) }

func (p *StubPoller) Stop(context.Context) error {
	p.StopCalls.Add(1)
	return p.StopErr
}

func (p *StubPoller) Status() poller.Status { return p.StatusVal }

// StubHTTPServer stands in for the API and metrics listeners. ListenAndServe
// returns ListenErr immediately. When Block is set, Shutdown waits for it to
// close or for ctx to expire.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Block       chan struct{}

	Listens   atomic.Int32
	Shutdowns atomic.Int32
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.Listens.Add(1)
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.Shutdowns.Add(1)
	if s.Block == nil {
		return s.ShutdownErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.Block:
		return s.ShutdownErr
	}
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return s.HandlerVal
}

// NewRecorderWithShutdown returns an in-memory recorder and a no-op shutdown.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	return metrics.NewRecorder(), func(context.Context) error { return nil }
}
