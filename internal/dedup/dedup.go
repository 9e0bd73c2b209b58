// Package dedup collapses quotes for the same prop across books, keeping the
// best price.
package dedup

import "github.com/preston-bernstein/mlb-props-service/internal/domain/props"

// BetterPrice reports whether candidate pays more than current. Higher
// American odds always pay more: +150 beats +120 and -110 beats -130.
// Equal prices keep current.
func BetterPrice(current, candidate int) bool {
	return candidate > current
}

// Deduplicate returns one prop per (player, stat, line), keeping the best
// price and the order in which keys first appeared.
func Deduplicate(in []props.Prop) []props.Prop {
	if len(in) == 0 {
		return []props.Prop{}
	}
	index := make(map[props.Key]int, len(in))
	out := make([]props.Prop, 0, len(in))
	for _, p := range in {
		key := p.Key()
		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, p)
			continue
		}
		if BetterPrice(out[i].Odds, p.Odds) {
			out[i] = p
		}
	}
	return out
}
