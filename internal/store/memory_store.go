package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
)

// MemoryStore keeps the latest snapshots in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	keys  Keys
	props *props.Snapshot
	odds  *props.OddsSnapshot
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore(keys Keys) *MemoryStore {
	return &MemoryStore{keys: keys.WithDefaults()}
}

// Publish replaces the snapshot stored under key. Unknown keys and payload
// types are rejected.
func (s *MemoryStore) Publish(ctx context.Context, key string, payload any) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case s.keys.Props:
		snap, ok := payload.(props.Snapshot)
		if !ok {
			return fmt.Errorf("memory store: %s expects props.Snapshot, got %T", key, payload)
		}
		s.props = &snap
	case s.keys.Odds:
		snap, ok := payload.(props.OddsSnapshot)
		if !ok {
			return fmt.Errorf("memory store: %s expects props.OddsSnapshot, got %T", key, payload)
		}
		s.odds = &snap
	default:
		return fmt.Errorf("memory store: unknown key %q", key)
	}
	return nil
}

// Props returns a copy of the latest props snapshot.
func (s *MemoryStore) Props(ctx context.Context) (props.Snapshot, bool, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.props == nil {
		return props.Snapshot{}, false, nil
	}
	snap := *s.props
	snap.Props = slices.Clone(snap.Props)
	snap.Combos = slices.Clone(snap.Combos)
	return snap, true, nil
}

// Odds returns a copy of the latest odds snapshot.
func (s *MemoryStore) Odds(ctx context.Context) (props.OddsSnapshot, bool, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.odds == nil {
		return props.OddsSnapshot{}, false, nil
	}
	snap := *s.odds
	snap.Games = slices.Clone(snap.Games)
	return snap, true, nil
}
