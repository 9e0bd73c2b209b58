package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
)

type stubRunner struct {
	mu     sync.Mutex
	err    error
	calls  atomic.Int32
	notify chan struct{}
}

func (s *stubRunner) Run(ctx context.Context) (props.Snapshot, error) {
	_ = ctx
	s.calls.Add(1)
	s.mu.Lock()
	err := s.err
	s.mu.Unlock()
	if s.notify != nil {
		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
	if err != nil {
		return props.Snapshot{}, err
	}
	return props.Snapshot{RunID: "run", Props: []props.EnrichedProp{}}, nil
}

func (s *stubRunner) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func mustNew(t *testing.T, runner Runner, spec string) *Poller {
	t.Helper()
	p, err := New(runner, nil, spec)
	if err != nil {
		t.Fatalf("new poller: %v", err)
	}
	return p
}

func TestPollerWarmUpRun(t *testing.T) {
	runner := &stubRunner{notify: make(chan struct{}, 1)}
	p := mustNew(t, runner, "@every 1h")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	select {
	case <-runner.notify:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for warm-up run")
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for !p.Status().IsReady() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !p.Status().IsReady() {
		t.Fatalf("expected ready after warm-up, got %+v", p.Status())
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	runner := &stubRunner{notify: make(chan struct{}, 1)}
	p := mustNew(t, runner, "")
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)
	select {
	case <-runner.notify:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for warm-up run")
	}
	cancel()

	select {
	case <-p.done:
	case <-time.After(time.Second):
		t.Fatal("expected poller to stop after cancel")
	}
}

func TestPollerRejectsBadSchedule(t *testing.T) {
	if _, err := New(&stubRunner{}, nil, "every now and then"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestPollerDefaultsSchedule(t *testing.T) {
	p := mustNew(t, &stubRunner{}, "")
	if p.spec != DefaultSchedule {
		t.Fatalf("expected %s, got %s", DefaultSchedule, p.spec)
	}
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	if next := p.schedule.Next(now); next.Sub(now) != 2*time.Hour {
		t.Fatalf("expected two-hour cadence, got %v", next.Sub(now))
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := mustNew(t, &stubRunner{}, "")
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	runner := &stubRunner{notify: make(chan struct{}, 1)}
	p := mustNew(t, runner, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	first := p.cron
	p.Start(ctx)
	if p.cron != first {
		t.Fatal("expected second start to no-op")
	}
	<-runner.notify
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
}

func TestPollerStartAfterStopIsNoop(t *testing.T) {
	runner := &stubRunner{}
	p := mustNew(t, runner, "")
	_ = p.Stop(context.Background())
	p.Start(context.Background())
	time.Sleep(10 * time.Millisecond)
	if runner.calls.Load() != 0 {
		t.Fatal("expected no runs after stop")
	}
}

func TestPollerStatusTracksFailuresAndSuccess(t *testing.T) {
	runner := &stubRunner{err: errors.New("boom")}
	p := mustNew(t, runner, "")
	ctx := context.Background()

	p.runOnce(ctx)
	status := p.Status()
	if status.ConsecutiveFailures != 1 || status.LastError != "boom" {
		t.Fatalf("unexpected status %+v", status)
	}
	if !status.LastSuccess.IsZero() || status.IsReady() {
		t.Fatal("expected not ready before any success")
	}

	runner.setErr(nil)
	p.runOnce(ctx)
	status = p.Status()
	if status.ConsecutiveFailures != 0 || status.LastError != "" {
		t.Fatalf("expected failures reset, got %+v", status)
	}
	if !status.IsReady() {
		t.Fatal("expected ready after success")
	}
}

func TestStatusIsReadyAfterRepeatedFailures(t *testing.T) {
	s := Status{LastSuccess: time.Now(), ConsecutiveFailures: maxConsecutiveFailures}
	if s.IsReady() {
		t.Fatal("expected not ready after repeated failures")
	}
	s.ConsecutiveFailures = maxConsecutiveFailures - 1
	if !s.IsReady() {
		t.Fatal("expected ready below failure threshold")
	}
}

func TestCronLoggerDoesNotPanic(t *testing.T) {
	l := cronLogger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	l.Info("schedule", "entry", 1)
	l.Error(errors.New("boom"), "panic", "entry", 1)
	cronLogger{}.Info("nil logger")
}
