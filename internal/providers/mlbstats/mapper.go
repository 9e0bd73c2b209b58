package mlbstats

import (
	"slices"
	"strconv"
	"strings"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/players"
)

func formatID(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}

func mapEntry(s splitResponse) players.GameLogEntry {
	return players.GameLogEntry{
		Date:        s.Date,
		TeamID:      formatID(s.Team.ID),
		OpponentID:  formatID(s.Opponent.ID),
		PitcherHand: players.ParseHand(s.Pitcher.Hand.Code),
		Stats: players.StatLine{
			Hits:        s.Stat.Hits,
			Doubles:     s.Stat.Doubles,
			Triples:     s.Stat.Triples,
			HomeRuns:    s.Stat.HomeRuns,
			Runs:        s.Stat.Runs,
			RBI:         s.Stat.RBI,
			BaseOnBalls: s.Stat.BaseOnBalls,
			StrikeOuts:  s.Stat.StrikeOuts,
			TotalBases:  s.Stat.TotalBases,
			StolenBases: s.Stat.StolenBases,
			EarnedRuns:  s.Stat.EarnedRuns,
			Outs:        s.Stat.Outs,
		},
	}
}

// mapGameLog converts splits and orders them most-recent-first. Upstream lists
// games oldest-first, so the reversal puts the later game of a doubleheader first.
func mapGameLog(payload statsResponse) []players.GameLogEntry {
	if len(payload.Stats) == 0 {
		return nil
	}
	splits := payload.Stats[0].Splits
	entries := make([]players.GameLogEntry, len(splits))
	for i, s := range splits {
		entries[len(splits)-1-i] = mapEntry(s)
	}
	slices.SortStableFunc(entries, func(a, b players.GameLogEntry) int {
		return strings.Compare(b.Date, a.Date)
	})
	return entries
}
