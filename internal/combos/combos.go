// Package combos pairs positive-edge props into two-leg parlays.
package combos

import (
	"sort"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
	"github.com/preston-bernstein/mlb-props-service/internal/oddsmath"
)

const (
	DefaultMinEdge = 0.05
	DefaultLimit   = 15
)

// TwoLeg returns pairs of enriched props from different players whose edge
// exceeds minEdge, best average edge first, at most limit of them. Degraded
// props never qualify.
func TwoLeg(enriched []props.EnrichedProp, minEdge float64, limit int) []props.Combo {
	var legs []props.EnrichedProp
	for _, ep := range enriched {
		if ep.Enriched && ep.Edge > minEdge {
			legs = append(legs, ep)
		}
	}

	out := []props.Combo{}
	for i := 0; i < len(legs); i++ {
		for j := i + 1; j < len(legs); j++ {
			a, b := legs[i], legs[j]
			if a.Player == b.Player {
				continue
			}
			out = append(out, props.Combo{
				Players: []string{a.Player, b.Player},
				Props:   []string{a.Label(), b.Label()},
				Edges:   []float64{percent(a.Edge), percent(b.Edge)},
				AvgEdge: percent((a.Edge + b.Edge) / 2),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgEdge > out[j].AvgEdge
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func percent(edge float64) float64 {
	return oddsmath.Round2(edge * 100)
}
