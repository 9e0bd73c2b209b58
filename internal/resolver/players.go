// Package resolver turns player names into upstream identities and game logs
// into opponent context, caching both in front of the stats provider.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/mlb-props-service/internal/cache"
	"github.com/preston-bernstein/mlb-props-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-props-service/internal/logging"
	"github.com/preston-bernstein/mlb-props-service/internal/providers"
)

// DefaultPlayerTTL bounds how long a name lookup is trusted.
const DefaultPlayerTTL = time.Hour

type lookup struct {
	identity players.Identity
	found    bool
}

// Players resolves names to identities. Successful and not-found answers are
// cached for the TTL; upstream failures are not.
type Players struct {
	stats  providers.StatsProvider
	cache  *cache.TTLCache[string, lookup]
	flight singleflight.Group
	logger *slog.Logger
}

// NewPlayers builds a resolver. A non-positive ttl uses DefaultPlayerTTL and
// a nil now uses time.Now.
func NewPlayers(stats providers.StatsProvider, ttl time.Duration, now func() time.Time, logger *slog.Logger) *Players {
	if ttl <= 0 {
		ttl = DefaultPlayerTTL
	}
	return &Players{
		stats:  stats,
		cache:  cache.New[string, lookup](ttl, now),
		logger: logger,
	}
}

// Resolve returns the identity for name, or false when the player is unknown
// or the stats provider could not be reached.
func (p *Players) Resolve(ctx context.Context, name string) (players.Identity, bool) {
	if hit, ok := p.cache.Get(name); ok {
		return hit.identity, hit.found
	}

	v, _, _ := p.flight.Do(name, func() (any, error) {
		if hit, ok := p.cache.Get(name); ok {
			return hit, nil
		}
		id, err := p.stats.SearchPlayer(ctx, name)
		switch {
		case err == nil:
			res := lookup{identity: id, found: true}
			p.cache.Set(name, res)
			return res, nil
		case errors.Is(err, providers.ErrNotFound):
			res := lookup{}
			p.cache.Set(name, res)
			return res, nil
		default:
			logging.Warn(logging.FromContext(ctx, p.logger), "player lookup failed",
				logging.FieldPlayer, name,
				"err", err,
			)
			return lookup{}, nil
		}
	})
	res := v.(lookup)
	return res.identity, res.found
}

// Cached reports how many names are held, fresh or stale.
func (p *Players) Cached() int {
	return p.cache.Len()
}
