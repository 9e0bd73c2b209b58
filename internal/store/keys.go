package store

import (
	"context"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
)

// Default snapshot keys.
const (
	DefaultPropsKey = "mlb_props"
	DefaultOddsKey  = "mlb_odds"
)

// Keys names where each snapshot is published.
type Keys struct {
	Props string
	Odds  string
}

// DefaultKeys returns the standard key names.
func DefaultKeys() Keys {
	return Keys{Props: DefaultPropsKey, Odds: DefaultOddsKey}
}

// WithDefaults fills any empty key with its standard name.
func (k Keys) WithDefaults() Keys {
	if k.Props == "" {
		k.Props = DefaultPropsKey
	}
	if k.Odds == "" {
		k.Odds = DefaultOddsKey
	}
	return k
}

// Publisher replaces the payload stored under key.
type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
}

// Reader returns the latest published snapshots. ok is false until the first
// publish.
type Reader interface {
	Props(ctx context.Context) (props.Snapshot, bool, error)
	Odds(ctx context.Context) (props.OddsSnapshot, bool, error)
}
