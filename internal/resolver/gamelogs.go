package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/mlb-props-service/internal/cache"
	"github.com/preston-bernstein/mlb-props-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-props-service/internal/providers"
	"github.com/preston-bernstein/mlb-props-service/internal/timeutil"
)

// DefaultGameLogTTL keeps logs for roughly one refresh cycle.
const DefaultGameLogTTL = 10 * time.Minute

type logKey struct {
	playerID string
	group    players.Group
	season   int
}

// GameLogs caches season game logs so the context resolver and the estimator
// share one fetch per player and group.
type GameLogs struct {
	stats  providers.StatsProvider
	cache  *cache.TTLCache[logKey, []players.GameLogEntry]
	flight singleflight.Group
	season int
	now    func() time.Time
	logger *slog.Logger
}

// NewGameLogs builds the cache. season zero follows the calendar year.
func NewGameLogs(stats providers.StatsProvider, ttl time.Duration, season int, now func() time.Time, logger *slog.Logger) *GameLogs {
	if ttl <= 0 {
		ttl = DefaultGameLogTTL
	}
	if now == nil {
		now = time.Now
	}
	return &GameLogs{
		stats:  stats,
		cache:  cache.New[logKey, []players.GameLogEntry](ttl, now),
		season: season,
		now:    now,
		logger: logger,
	}
}

// Get returns the player's log, most recent game first. Errors are not cached.
func (g *GameLogs) Get(ctx context.Context, playerID string, group players.Group) ([]players.GameLogEntry, error) {
	if group == "" {
		group = players.GroupHitting
	}
	key := logKey{playerID: playerID, group: group, season: timeutil.SeasonYear(g.season, g.now())}
	if entries, ok := g.cache.Get(key); ok {
		return entries, nil
	}

	v, err, _ := g.flight.Do(fmt.Sprintf("%s|%s|%d", key.playerID, key.group, key.season), func() (any, error) {
		if entries, ok := g.cache.Get(key); ok {
			return entries, nil
		}
		entries, err := g.stats.GameLog(ctx, key.playerID, key.group, key.season)
		if err != nil {
			return nil, err
		}
		g.cache.Set(key, entries)
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]players.GameLogEntry), nil
}
