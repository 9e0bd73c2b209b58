package server

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/mlb-props-service/internal/config"
	"github.com/preston-bernstein/mlb-props-service/internal/store"
)

// storeComponents is what the pipeline publishes to and the HTTP layer reads.
type storeComponents struct {
	keys      store.Keys
	memory    *store.MemoryStore
	reader    store.Reader
	publisher store.Publisher
	redis     *redis.Client
}

var newRedisClient = store.NewRedisClient

// buildStores always keeps an in-process copy. With a Redis URL the snapshots
// are also written to Redis, which then backs the read routes.
func buildStores(cfg config.RedisConfig, logger *slog.Logger) (storeComponents, error) {
	keys := store.Keys{Props: cfg.PropsKey, Odds: cfg.OddsKey}.WithDefaults()
	memory := store.NewMemoryStore(keys)
	out := storeComponents{keys: keys, memory: memory, reader: memory, publisher: memory}
	if cfg.URL == "" {
		return out, nil
	}

	client, err := newRedisClient(cfg.URL)
	if err != nil {
		return storeComponents{}, err
	}
	rs := store.NewRedisStore(client, keys, logger)
	out.reader = rs
	out.publisher = store.MultiPublisher{memory, rs}
	out.redis = client
	return out, nil
}
