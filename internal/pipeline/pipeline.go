// Package pipeline runs one refresh cycle: fetch props, deduplicate, enrich,
// build combos, then publish the props and moneyline snapshots.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/mlb-props-service/internal/combos"
	"github.com/preston-bernstein/mlb-props-service/internal/dedup"
	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
	"github.com/preston-bernstein/mlb-props-service/internal/logging"
	"github.com/preston-bernstein/mlb-props-service/internal/metrics"
	"github.com/preston-bernstein/mlb-props-service/internal/providers"
	"github.com/preston-bernstein/mlb-props-service/internal/store"
)

const flightKey = "run"

// Enricher attaches estimates to deduplicated props.
type Enricher interface {
	Enrich(ctx context.Context, in []props.Prop) []props.EnrichedProp
}

// Config wires a Pipeline.
type Config struct {
	Odds         providers.OddsProvider
	Enricher     Enricher
	Publisher    store.Publisher
	Keys         store.Keys
	Recorder     *metrics.Recorder
	Logger       *slog.Logger
	ComboMinEdge float64
	ComboLimit   int
}

// Pipeline coordinates a refresh. Concurrent Run calls share one execution.
type Pipeline struct {
	odds      providers.OddsProvider
	enricher  Enricher
	publisher store.Publisher
	keys      store.Keys
	recorder  *metrics.Recorder
	logger    *slog.Logger
	minEdge   float64
	limit     int

	now   func() time.Time
	newID func() string

	flight singleflight.Group
}

// New builds a Pipeline from cfg.
func New(cfg Config) *Pipeline {
	minEdge := cfg.ComboMinEdge
	if minEdge <= 0 {
		minEdge = combos.DefaultMinEdge
	}
	limit := cfg.ComboLimit
	if limit <= 0 {
		limit = combos.DefaultLimit
	}
	return &Pipeline{
		odds:      cfg.Odds,
		enricher:  cfg.Enricher,
		publisher: cfg.Publisher,
		keys:      cfg.Keys.WithDefaults(),
		recorder:  cfg.Recorder,
		logger:    cfg.Logger,
		minEdge:   minEdge,
		limit:     limit,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Run executes one cycle and returns the published props snapshot. A missing
// odds API key publishes empty snapshots instead of failing.
func (p *Pipeline) Run(ctx context.Context) (props.Snapshot, error) {
	v, err, shared := p.flight.Do(flightKey, func() (any, error) {
		return p.run(ctx)
	})
	if shared {
		logging.Debug(logging.FromContext(ctx, p.logger), "joined in-flight pipeline run")
	}
	snap, _ := v.(props.Snapshot)
	return snap, err
}

func (p *Pipeline) run(ctx context.Context) (props.Snapshot, error) {
	start := p.now()
	runID := p.newID()
	logger := p.logger
	if logger != nil {
		logger = logger.With(logging.FieldRunID, runID)
	}
	ctx = logging.WithLogger(ctx, logger)

	snap, err := p.refresh(ctx, runID, start.UTC())
	p.recorder.RecordPipelineCycle(time.Since(start), err)
	if err != nil {
		logging.Error(logger, "pipeline run failed", err,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
		return props.Snapshot{}, err
	}
	logging.Info(logger, "pipeline run complete",
		logging.FieldCount, len(snap.Props),
		"combos", len(snap.Combos),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return snap, nil
}

func (p *Pipeline) refresh(ctx context.Context, runID string, generatedAt time.Time) (props.Snapshot, error) {
	logger := logging.FromContext(ctx, p.logger)

	raw, err := p.odds.FetchPlayerProps(ctx)
	if errors.Is(err, providers.ErrMissingCredential) {
		logging.Warn(logger, "odds api key missing; publishing empty snapshots")
		return p.publishEmpty(ctx, runID, generatedAt)
	}
	if err != nil {
		return props.Snapshot{}, fmt.Errorf("fetch player props: %w", err)
	}

	unique := dedup.Deduplicate(raw)
	logging.Info(logger, "player props fetched",
		"raw", len(raw),
		logging.FieldCount, len(unique),
	)

	enriched := p.enricher.Enrich(ctx, unique)
	snap := props.Snapshot{
		RunID:       runID,
		GeneratedAt: generatedAt,
		Props:       enriched,
		Combos:      combos.TwoLeg(enriched, p.minEdge, p.limit),
	}
	if err := p.publisher.Publish(ctx, p.keys.Props, snap); err != nil {
		return props.Snapshot{}, fmt.Errorf("publish props: %w", err)
	}

	games, err := p.odds.FetchMoneylines(ctx)
	if err != nil {
		logging.Error(logger, "moneyline fetch failed; keeping previous odds snapshot", err)
		return snap, nil
	}
	if games == nil {
		games = []props.Game{}
	}
	odds := props.OddsSnapshot{RunID: runID, GeneratedAt: generatedAt, Games: games}
	if err := p.publisher.Publish(ctx, p.keys.Odds, odds); err != nil {
		return props.Snapshot{}, fmt.Errorf("publish odds: %w", err)
	}
	return snap, nil
}

func (p *Pipeline) publishEmpty(ctx context.Context, runID string, generatedAt time.Time) (props.Snapshot, error) {
	snap := props.Snapshot{
		RunID:       runID,
		GeneratedAt: generatedAt,
		Props:       []props.EnrichedProp{},
		Combos:      []props.Combo{},
	}
	odds := props.OddsSnapshot{RunID: runID, GeneratedAt: generatedAt, Games: []props.Game{}}
	if err := p.publisher.Publish(ctx, p.keys.Props, snap); err != nil {
		return props.Snapshot{}, fmt.Errorf("publish props: %w", err)
	}
	if err := p.publisher.Publish(ctx, p.keys.Odds, odds); err != nil {
		return props.Snapshot{}, fmt.Errorf("publish odds: %w", err)
	}
	return snap, nil
}
