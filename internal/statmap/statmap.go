// Package statmap translates odds-provider market keys into stats-provider
// fields and evaluates the composite stats that have no upstream field.
package statmap

import (
	"math"
	"strings"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/players"
)

// Composite field names. They never appear in upstream payloads.
const (
	FieldHitsRunsRBIs = "hits_runs_rbis"
	FieldFantasyScore = "fantasy_score"
)

// MarketFantasyScore is the market used for the fantasy estimate.
const MarketFantasyScore = "batter_fantasy_score"

// Stat describes how a market is evaluated against a game log.
type Stat struct {
	Market    string
	Field     string
	Group     players.Group
	Composite bool
}

var markets = map[string]string{
	"batter_hits":           "hits",
	"batter_rbi":            "rbi",
	"batter_rbis":           "rbi",
	"batter_runs_batted_in": "rbi",
	"batter_runs":           "runs",
	"batter_runs_scored":    "runs",
	"batter_home_runs":      "homeRuns",
	"batter_total_bases":    "totalBases",
	"batter_stolen_bases":   "stolenBases",
	"batter_walks":          "baseOnBalls",
	"batter_strikeouts":     "strikeOuts",
	"batter_hits_runs_rbis": FieldHitsRunsRBIs,
	"batter_fantasy_score":  FieldFantasyScore,
	"pitcher_strikeouts":    "strikeOuts",
	"pitcher_hits_allowed":  "hits",
	"pitcher_earned_runs":   "earnedRuns",
	"pitcher_walks":         "baseOnBalls",
	"pitcher_outs":          "outs",

	// Bare field names used by older payloads.
	"hits":        "hits",
	"rbi":         "rbi",
	"runs":        "runs",
	"homeRuns":    "homeRuns",
	"totalBases":  "totalBases",
	"stolenBases": "stolenBases",
	"strikeOuts":  "strikeOuts",
	"baseOnBalls": "baseOnBalls",
}

// MapStatKey returns the upstream field for a market key. Unknown keys pass
// through unchanged so later stages still have something to look up.
func MapStatKey(marketKey string) string {
	if field, ok := markets[marketKey]; ok {
		return field
	}
	return marketKey
}

// Lookup resolves a market key to its full description.
func Lookup(marketKey string) (Stat, bool) {
	field, ok := markets[marketKey]
	if !ok {
		return Stat{}, false
	}
	return Stat{
		Market:    marketKey,
		Field:     field,
		Group:     GroupFor(marketKey),
		Composite: IsComposite(field),
	}, true
}

// GroupFor reports which stat group a market belongs to.
func GroupFor(marketKey string) players.Group {
	if strings.HasPrefix(marketKey, "pitcher_") {
		return players.GroupPitching
	}
	return players.GroupHitting
}

// IsComposite reports whether field is computed rather than read.
func IsComposite(field string) bool {
	return field == FieldHitsRunsRBIs || field == FieldFantasyScore
}

// ComputeComposite evaluates a composite stat over one game line.
// Unknown composite keys evaluate to zero.
func ComputeComposite(line players.StatLine, compositeKey string) float64 {
	switch compositeKey {
	case FieldHitsRunsRBIs:
		return line.Hits + line.Runs + line.RBI
	case FieldFantasyScore:
		singles := math.Max(0, line.Hits-line.Doubles-line.Triples-line.HomeRuns)
		return singles +
			2*line.Doubles +
			3*line.Triples +
			4*line.HomeRuns +
			line.RBI +
			line.Runs +
			2*line.StolenBases +
			line.BaseOnBalls
	default:
		return 0
	}
}

// Value reads a plain or composite field from a game line.
func Value(line players.StatLine, field string) (float64, bool) {
	if IsComposite(field) {
		return ComputeComposite(line, field), true
	}
	return line.Field(field)
}
