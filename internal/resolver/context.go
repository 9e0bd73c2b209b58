package resolver

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-props-service/internal/logging"
)

// Contexts derives a player's current matchup from the latest game in their
// log. A player with no game today still resolves to their most recent one.
type Contexts struct {
	logs   *GameLogs
	logger *slog.Logger
}

// NewContexts builds a context resolver over a shared game-log cache.
func NewContexts(logs *GameLogs, logger *slog.Logger) *Contexts {
	return &Contexts{logs: logs, logger: logger}
}

// Resolve returns team, opponent and pitcher hand from the latest entry.
func (c *Contexts) Resolve(ctx context.Context, playerID string, group players.Group) (players.OpponentContext, bool) {
	entries, err := c.logs.Get(ctx, playerID, group)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, c.logger), "opponent context lookup failed",
			"player_id", playerID,
			"group", string(group),
			"err", err,
		)
		return players.OpponentContext{}, false
	}
	if len(entries) == 0 {
		return players.OpponentContext{}, false
	}
	latest := entries[0]
	hand := latest.PitcherHand
	if hand == "" {
		hand = players.HandUnknown
	}
	return players.OpponentContext{
		TeamID:      latest.TeamID,
		OpponentID:  latest.OpponentID,
		PitcherHand: hand,
	}, true
}
