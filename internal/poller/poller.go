package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
	"github.com/preston-bernstein/mlb-props-service/internal/logging"
)

// DefaultSchedule refreshes every two hours.
const DefaultSchedule = "@every 2h"

const maxConsecutiveFailures = 3

// Runner executes one refresh cycle.
type Runner interface {
	Run(ctx context.Context) (props.Snapshot, error)
}

// Poller triggers the pipeline on a cron schedule, with one warm-up run on
// start. Overlapping ticks are skipped while a run is in progress.
type Poller struct {
	runner   Runner
	logger   *slog.Logger
	schedule cron.Schedule
	spec     string
	now      func() time.Time

	cron     *cron.Cron
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < maxConsecutiveFailures
}

// New constructs a Poller. An empty spec uses DefaultSchedule; an invalid one
// is an error.
func New(runner Runner, logger *slog.Logger, spec string) (*Poller, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse refresh schedule %q: %w", spec, err)
	}
	return &Poller{
		runner:   runner,
		logger:   logger,
		schedule: schedule,
		spec:     spec,
		now:      time.Now,
		done:     make(chan struct{}),
	}, nil
}

// Start runs the pipeline once, then on every tick until ctx is cancelled or
// Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	select {
	case <-p.done:
		p.startMu.Unlock()
		return
	default:
	}
	p.started = true
	cronLog := cronLogger{logger: p.logger}
	p.cron = cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)
	job := cron.FuncJob(func() { p.runOnce(ctx) })
	p.cron.Schedule(p.schedule, job)
	p.startMu.Unlock()

	logging.Info(p.logger, "poller started", "schedule", p.spec)
	p.cron.Start()

	go func() {
		p.runOnce(ctx)
		select {
		case <-ctx.Done():
			_ = p.Stop(context.Background())
		case <-p.done:
		}
	}()
}

// Stop halts scheduling and waits for an in-flight run until ctx expires.
func (p *Poller) Stop(ctx context.Context) error {
	var err error
	p.stopOnce.Do(func() {
		close(p.done)
		p.startMu.Lock()
		c := p.cron
		p.startMu.Unlock()
		if c == nil {
			return
		}
		select {
		case <-c.Stop().Done():
			logging.Info(p.logger, "poller stopped")
		case <-ctx.Done():
			err = ctx.Err()
		}
	})
	return err
}

func (p *Poller) runOnce(ctx context.Context) {
	select {
	case <-p.done:
		return
	default:
	}
	start := p.now()
	p.recordAttempt(start)
	snap, err := p.runner.Run(ctx)
	if err != nil {
		logging.Error(p.logger, "refresh failed", err,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
		p.recordFailure(err, start)
		return
	}
	p.recordSuccess(start)
	logging.Info(p.logger, "refresh complete",
		logging.FieldRunID, snap.RunID,
		logging.FieldCount, len(snap.Props),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
