package testutil

import (
	"time"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
)

// SampleTime is the generation time used by snapshot fixtures.
var SampleTime = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

// SampleProp returns an Over prop quoted at DraftKings.
func SampleProp(player, stat string, line float64, odds int) props.Prop {
	return props.Prop{
		Player:    player,
		Stat:      stat,
		Line:      line,
		Odds:      odds,
		Bookmaker: "DraftKings",
		Side:      props.SideOver,
		EventID:   "evt-1",
	}
}

// SampleEnriched wraps a prop with a recent-tier estimate and the given edge.
func SampleEnriched(p props.Prop, hitRate, edge float64) props.EnrichedProp {
	est := props.HitRateEstimate{
		Player:     p.Player,
		Stat:       p.Stat,
		Threshold:  p.Line,
		HitRate:    hitRate,
		SampleSize: 10,
		Confidence: props.ConfidenceHigh,
		Tier:       props.TierRecent,
	}
	fantasy := est
	fantasy.Stat = "batter_fantasy_score"
	return props.EnrichedProp{
		Prop:               p,
		ContextualHitRate:  est,
		FantasyHitRate:     fantasy,
		Enriched:           true,
		ImpliedProbability: hitRate - edge,
		Edge:               edge,
	}
}

// SampleSnapshot returns three enriched props, two above a 0.05 edge, and the
// one combo they form.
func SampleSnapshot(runID string) props.Snapshot {
	judgeHits := SampleEnriched(SampleProp("Aaron Judge", "batter_hits", 0.5, 100), 0.6, 0.10)
	judgeBases := SampleEnriched(SampleProp("Aaron Judge", "batter_total_bases", 1.5, 120), 0.52, 0.06)
	cole := SampleEnriched(SampleProp("Gerrit Cole", "pitcher_strikeouts", 6.5, -110), 0.54, 0.02)
	return props.Snapshot{
		RunID:       runID,
		GeneratedAt: SampleTime,
		Props:       []props.EnrichedProp{judgeHits, judgeBases, cole},
		Combos: []props.Combo{{
			Players: []string{"Aaron Judge", "Gerrit Cole"},
			Props:   []string{judgeHits.Label(), cole.Label()},
			Edges:   []float64{10, 2},
			AvgEdge: 6,
		}},
	}
}

// SampleOddsSnapshot returns a single game with one book.
func SampleOddsSnapshot(runID string) props.OddsSnapshot {
	return props.OddsSnapshot{
		RunID:       runID,
		GeneratedAt: SampleTime,
		Games: []props.Game{{
			ID:           "evt-1",
			CommenceTime: "2025-06-10T23:05:00Z",
			HomeTeam:     "New York Yankees",
			AwayTeam:     "Boston Red Sox",
			Books:        []props.BookPrice{{Bookmaker: "DraftKings", HomePrice: -150, AwayPrice: 130}},
		}},
	}
}
