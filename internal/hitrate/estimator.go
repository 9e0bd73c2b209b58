// Package hitrate estimates how often a player clears a prop line, using the
// player's recent games against the current opponent and falling back to
// static base rates when no sample is available.
package hitrate

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
	"github.com/preston-bernstein/mlb-props-service/internal/logging"
	"github.com/preston-bernstein/mlb-props-service/internal/metrics"
	"github.com/preston-bernstein/mlb-props-service/internal/oddsmath"
	"github.com/preston-bernstein/mlb-props-service/internal/statmap"
)

const (
	// RecentWindow is how many of the latest games are considered.
	RecentWindow = 10
	// MinContextualGames is the smallest opponent-and-hand sample accepted.
	MinContextualGames = 2
	// MinConfidentSample is the sample below which confidence stays Low.
	MinConfidentSample = 5
)

const (
	noteUnknownStat   = "unknown stat; league base rate"
	noteNoPlayer      = "player not resolved; league base rate"
	noteNoContext     = "no opponent context; league base rate"
	noteNoGameLog     = "game log unavailable; league base rate"
	noteNoGames       = "no games played; league base rate"
	noteRelaxedFilter = "too few games vs opponent and hand; last 10 games"
)

// PlayerResolver maps a name to an identity.
type PlayerResolver interface {
	Resolve(ctx context.Context, name string) (players.Identity, bool)
}

// ContextResolver reports the player's current matchup.
type ContextResolver interface {
	Resolve(ctx context.Context, playerID string, group players.Group) (players.OpponentContext, bool)
}

// LogSource returns a player's game log, most recent first.
type LogSource interface {
	Get(ctx context.Context, playerID string, group players.Group) ([]players.GameLogEntry, error)
}

// Estimator produces hit-rate estimates. It never fails: every path ends in
// an estimate, real or fallback.
type Estimator struct {
	players  PlayerResolver
	contexts ContextResolver
	logs     LogSource
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// New constructs an Estimator. recorder and logger may be nil.
func New(playerResolver PlayerResolver, contexts ContextResolver, logs LogSource, recorder *metrics.Recorder, logger *slog.Logger) *Estimator {
	return &Estimator{
		players:  playerResolver,
		contexts: contexts,
		logs:     logs,
		recorder: recorder,
		logger:   logger,
	}
}

// Estimate returns the rate at which player reached threshold in stat.
func (e *Estimator) Estimate(ctx context.Context, player, stat string, threshold float64) props.HitRateEstimate {
	est := e.estimate(ctx, player, stat, threshold)
	e.recorder.RecordEstimate(string(est.Tier))
	logging.Debug(logging.FromContext(ctx, e.logger), "hit rate estimated",
		logging.FieldPlayer, player,
		logging.FieldStat, stat,
		logging.FieldTier, string(est.Tier),
		"hit_rate", est.HitRate,
		"sample_size", est.SampleSize,
	)
	return est
}

// FantasyEstimate runs the fantasy-score composite through the same chain.
func (e *Estimator) FantasyEstimate(ctx context.Context, player string, threshold float64) props.HitRateEstimate {
	return e.Estimate(ctx, player, statmap.MarketFantasyScore, threshold)
}

func (e *Estimator) estimate(ctx context.Context, player, stat string, threshold float64) props.HitRateEstimate {
	desc, ok := statmap.Lookup(stat)
	if !ok {
		return Fallback(player, stat, threshold, players.GroupHitting, stat, noteUnknownStat)
	}

	id, ok := e.players.Resolve(ctx, player)
	if !ok {
		return Fallback(player, stat, threshold, desc.Group, desc.Field, noteNoPlayer)
	}

	oc, ok := e.contexts.Resolve(ctx, id.ID, desc.Group)
	if !ok {
		return Fallback(player, stat, threshold, desc.Group, desc.Field, noteNoContext)
	}

	entries, err := e.logs.Get(ctx, id.ID, desc.Group)
	if err != nil {
		return Fallback(player, stat, threshold, desc.Group, desc.Field, noteNoGameLog)
	}

	recent := entries
	if len(recent) > RecentWindow {
		recent = recent[:RecentWindow]
	}

	sample := matching(recent, oc)
	tier := props.TierContextual
	note := ""
	if len(sample) < MinContextualGames {
		sample = recent
		tier = props.TierRecent
		note = noteRelaxedFilter
	}
	if len(sample) == 0 {
		return Fallback(player, stat, threshold, desc.Group, desc.Field, noteNoGames)
	}

	rate := oddsmath.Round2(Rate(sample, desc.Field, threshold))
	return props.HitRateEstimate{
		Player:      player,
		Stat:        stat,
		Threshold:   threshold,
		HitRate:     rate,
		SampleSize:  len(sample),
		Confidence:  ConfidenceFor(rate, len(sample)),
		Tier:        tier,
		OpponentID:  oc.OpponentID,
		PitcherHand: string(oc.PitcherHand),
		Note:        note,
	}
}

func matching(entries []players.GameLogEntry, oc players.OpponentContext) []players.GameLogEntry {
	var out []players.GameLogEntry
	for _, entry := range entries {
		if entry.OpponentID == oc.OpponentID && entry.PitcherHand == oc.PitcherHand {
			out = append(out, entry)
		}
	}
	return out
}

// Rate is the share of games where field reached threshold. An empty sample
// has rate zero.
func Rate(entries []players.GameLogEntry, field string, threshold float64) float64 {
	if len(entries) == 0 {
		return 0
	}
	hits := 0
	for _, entry := range entries {
		v, ok := statmap.Value(entry.Stats, field)
		if ok && v >= threshold {
			hits++
		}
	}
	return float64(hits) / float64(len(entries))
}

// ConfidenceFor labels a rate by sample size and strength.
func ConfidenceFor(rate float64, sampleSize int) props.Confidence {
	switch {
	case sampleSize < MinConfidentSample:
		return props.ConfidenceLow
	case rate >= 0.60:
		return props.ConfidenceHigh
	case rate >= 0.50:
		return props.ConfidenceMedium
	default:
		return props.ConfidenceLow
	}
}

// Fallback builds a heuristic estimate from the base-rate table.
func Fallback(player, stat string, threshold float64, group players.Group, field, note string) props.HitRateEstimate {
	return props.HitRateEstimate{
		Player:     player,
		Stat:       stat,
		Threshold:  threshold,
		HitRate:    oddsmath.Round2(ScaleForThreshold(BaseRate(group, field), threshold)),
		SampleSize: NominalSampleSize,
		Confidence: props.ConfidenceLow,
		Tier:       props.TierFallback,
		Note:       note,
	}
}
