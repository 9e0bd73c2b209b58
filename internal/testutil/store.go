package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
	"github.com/preston-bernstein/mlb-props-service/internal/store"
)

// NewStoreWithSnapshots returns a memory store preloaded with both snapshots.
func NewStoreWithSnapshots(t *testing.T, snap props.Snapshot, odds props.OddsSnapshot) *store.MemoryStore {
	t.Helper()
	ms := store.NewMemoryStore(store.DefaultKeys())
	if err := ms.Publish(context.Background(), store.DefaultPropsKey, snap); err != nil {
		t.Fatalf("seed props: %v", err)
	}
	if err := ms.Publish(context.Background(), store.DefaultOddsKey, odds); err != nil {
		t.Fatalf("seed odds: %v", err)
	}
	return ms
}

// RecordingPublisher keeps every published payload by key.
type RecordingPublisher struct {
	mu        sync.Mutex
	Published map[string][]any
	Err       error
}

func (p *RecordingPublisher) Publish(ctx context.Context, key string, payload any) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Published == nil {
		p.Published = make(map[string][]any)
	}
	p.Published[key] = append(p.Published[key], payload)
	return p.Err
}

// Count returns how many payloads were published under key.
func (p *RecordingPublisher) Count(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Published[key])
}
