package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
	"github.com/preston-bernstein/mlb-props-service/internal/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RedisClient is the subset of *redis.Client the store uses.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisStore publishes snapshots as JSON strings with no expiry, so a reader
// always sees the last complete run.
type RedisStore struct {
	client RedisClient
	keys   Keys
	logger *slog.Logger
}

// NewRedisStore wraps a connected client.
func NewRedisStore(client RedisClient, keys Keys, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, keys: keys.WithDefaults(), logger: logger}
}

// NewRedisClient parses a redis:// URL into a client.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Publish overwrites key with the JSON encoding of payload.
func (s *RedisStore) Publish(ctx context.Context, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	logging.Debug(logging.FromContext(ctx, s.logger), "snapshot published",
		logging.FieldKey, key,
		"bytes", len(data),
	)
	return nil
}

// Load decodes the value under key into dest. It reports false when the key
// has never been written.
func (s *RedisStore) Load(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Props loads the latest props snapshot.
func (s *RedisStore) Props(ctx context.Context) (props.Snapshot, bool, error) {
	var snap props.Snapshot
	ok, err := s.Load(ctx, s.keys.Props, &snap)
	return snap, ok, err
}

// Odds loads the latest odds snapshot.
func (s *RedisStore) Odds(ctx context.Context) (props.OddsSnapshot, bool, error) {
	var snap props.OddsSnapshot
	ok, err := s.Load(ctx, s.keys.Odds, &snap)
	return snap, ok, err
}
