package providers

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
)

// OddsProvider fetches sportsbook prices for upcoming games.
type OddsProvider interface {
	FetchMoneylines(ctx context.Context) ([]props.Game, error)
	FetchPlayerProps(ctx context.Context) ([]props.Prop, error)
}

// StatsProvider fetches player identities and per-game stat lines.
// A search with no match returns ErrNotFound.
type StatsProvider interface {
	SearchPlayer(ctx context.Context, name string) (players.Identity, error)
	GameLog(ctx context.Context, playerID string, group players.Group, season int) ([]players.GameLogEntry, error)
}

// Doer is the subset of *http.Client the upstream clients depend on.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to Doer.
type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}
