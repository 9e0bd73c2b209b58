package hitrate

import (
	"github.com/preston-bernstein/mlb-props-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-props-service/internal/statmap"
)

// DefaultBaseRate applies to stats with no table entry.
const DefaultBaseRate = 0.35

// NominalSampleSize is reported on fallback estimates.
const NominalSampleSize = 10

type rateKey struct {
	group players.Group
	field string
}

var baseRates = map[rateKey]float64{
	{players.GroupHitting, "hits"}:                    0.35,
	{players.GroupHitting, "totalBases"}:              0.40,
	{players.GroupHitting, "rbi"}:                     0.25,
	{players.GroupHitting, "runs"}:                    0.30,
	{players.GroupHitting, "homeRuns"}:                0.15,
	{players.GroupHitting, "stolenBases"}:             0.08,
	{players.GroupHitting, "baseOnBalls"}:             0.20,
	{players.GroupHitting, "strikeOuts"}:              0.65,
	{players.GroupHitting, statmap.FieldHitsRunsRBIs}: 0.50,
	{players.GroupHitting, statmap.FieldFantasyScore}: 0.45,
	{players.GroupPitching, "strikeOuts"}:             0.55,
	{players.GroupPitching, "hits"}:                   0.45,
	{players.GroupPitching, "earnedRuns"}:             0.35,
	{players.GroupPitching, "baseOnBalls"}:            0.20,
	{players.GroupPitching, "outs"}:                   0.75,
}

// BaseRate returns the league-typical rate of clearing a low line.
func BaseRate(group players.Group, field string) float64 {
	if rate, ok := baseRates[rateKey{group: group, field: field}]; ok {
		return rate
	}
	return DefaultBaseRate
}

// ScaleForThreshold shrinks a base rate as the line climbs.
func ScaleForThreshold(rate, threshold float64) float64 {
	switch {
	case threshold >= 5:
		return rate * 0.65
	case threshold >= 3:
		return rate * 0.80
	case threshold >= 1.5:
		return rate * 0.90
	default:
		return rate
	}
}
