// Package enrich attaches hit-rate estimates and pricing edge to props with a
// bounded pool of workers.
package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
	"github.com/preston-bernstein/mlb-props-service/internal/logging"
	"github.com/preston-bernstein/mlb-props-service/internal/oddsmath"
)

// DefaultConcurrency is the worker pool size.
const DefaultConcurrency = 10

// Rates reported when a task faults.
const (
	DegradedContextualRate = 0.30
	DegradedFantasyRate    = 0.35
)

// Estimator produces both estimates for a prop.
type Estimator interface {
	Estimate(ctx context.Context, player, stat string, threshold float64) props.HitRateEstimate
	FantasyEstimate(ctx context.Context, player string, threshold float64) props.HitRateEstimate
}

// Orchestrator fans estimation out over a worker pool.
type Orchestrator struct {
	estimator   Estimator
	concurrency int
	logger      *slog.Logger
}

// New builds an Orchestrator. concurrency <= 0 uses DefaultConcurrency.
func New(estimator Estimator, concurrency int, logger *slog.Logger) *Orchestrator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Orchestrator{estimator: estimator, concurrency: concurrency, logger: logger}
}

// Enrich returns one enriched prop per input, in input order. A faulting task
// yields a degraded prop rather than aborting the batch. In-flight tasks are
// not cancelled with ctx; upstream HTTP timeouts bound them.
func (o *Orchestrator) Enrich(ctx context.Context, in []props.Prop) []props.EnrichedProp {
	out := make([]props.EnrichedProp, len(in))
	if len(in) == 0 {
		return out
	}

	taskCtx := context.WithoutCancel(ctx)
	logger := logging.FromContext(ctx, o.logger)
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i, p := range in {
		g.Go(func() error {
			out[i] = o.enrichOne(taskCtx, p, logger)
			return nil
		})
	}
	_ = g.Wait()

	degraded := 0
	for _, ep := range out {
		if !ep.Enriched {
			degraded++
		}
	}
	logging.Info(logger, "props enriched",
		logging.FieldCount, len(out),
		"degraded", degraded,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return out
}

func (o *Orchestrator) enrichOne(ctx context.Context, p props.Prop, logger *slog.Logger) (ep props.EnrichedProp) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("enrich %s: %v", p.Label(), r)
			logging.Error(logger, "prop enrichment failed", err,
				logging.FieldPlayer, p.Player,
				logging.FieldStat, p.Stat,
			)
			ep = Degraded(p, err)
		}
	}()

	ep = props.EnrichedProp{
		Prop:              p,
		ContextualHitRate: o.estimator.Estimate(ctx, p.Player, p.Stat, p.Line),
		FantasyHitRate:    o.estimator.FantasyEstimate(ctx, p.Player, p.Line),
		Enriched:          true,
	}
	Price(&ep)
	return ep
}

// Degraded builds the placeholder result for a faulted task.
func Degraded(p props.Prop, err error) props.EnrichedProp {
	msg := err.Error()
	ep := props.EnrichedProp{
		Prop:              p,
		ContextualHitRate: degradedEstimate(p, p.Stat, DegradedContextualRate, msg),
		FantasyHitRate:    degradedEstimate(p, "batter_fantasy_score", DegradedFantasyRate, msg),
		Enriched:          false,
		Error:             msg,
	}
	Price(&ep)
	return ep
}

func degradedEstimate(p props.Prop, stat string, rate float64, msg string) props.HitRateEstimate {
	return props.HitRateEstimate{
		Player:     p.Player,
		Stat:       stat,
		Threshold:  p.Line,
		HitRate:    rate,
		SampleSize: 0,
		Confidence: props.ConfidenceLow,
		Tier:       props.TierDegraded,
		Error:      msg,
	}
}

// Price fills implied probability and edge from the contextual estimate.
// Unpriceable odds leave both at zero.
func Price(ep *props.EnrichedProp) {
	implied, err := oddsmath.AmericanToImplied(ep.Odds)
	if err != nil {
		ep.ImpliedProbability = 0
		ep.Edge = 0
		return
	}
	p := ep.ContextualHitRate.HitRate
	if ep.Side == props.SideUnder {
		p = 1 - p
	}
	ep.ImpliedProbability = oddsmath.Round(implied, 4)
	ep.Edge = oddsmath.Round(oddsmath.Edge(p, implied), 4)
}
