package testutil

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
	"github.com/preston-bernstein/mlb-props-service/internal/providers"
)

// StubOdds returns canned odds data.
type StubOdds struct {
	Games    []props.Game
	Props    []props.Prop
	GamesErr error
	PropsErr error
	Calls    atomic.Int32
}

func (s *StubOdds) FetchMoneylines(ctx context.Context) ([]props.Game, error) {
	_ = ctx
	return s.Games, s.GamesErr
}

func (s *StubOdds) FetchPlayerProps(ctx context.Context) ([]props.Prop, error) {
	_ = ctx
	s.Calls.Add(1)
	return s.Props, s.PropsErr
}

// StubStats resolves names from a map and returns one log for every player.
type StubStats struct {
	IDs  map[string]string
	Logs []players.GameLogEntry
	Err  error
}

func (s StubStats) SearchPlayer(ctx context.Context, name string) (players.Identity, error) {
	_ = ctx
	if s.Err != nil {
		return players.Identity{}, s.Err
	}
	id, ok := s.IDs[name]
	if !ok {
		return players.Identity{}, providers.ErrNotFound
	}
	return players.Identity{Name: name, ID: id}, nil
}

func (s StubStats) GameLog(ctx context.Context, playerID string, group players.Group, season int) ([]players.GameLogEntry, error) {
	_ = ctx
	_ = playerID
	_ = group
	_ = season
	return s.Logs, s.Err
}

// UnavailableOdds fails every call with ErrProviderUnavailable.
type UnavailableOdds struct{}

func (UnavailableOdds) FetchMoneylines(ctx context.Context) ([]props.Game, error) {
	_ = ctx
	return nil, providers.ErrProviderUnavailable
}

func (UnavailableOdds) FetchPlayerProps(ctx context.Context) ([]props.Prop, error) {
	_ = ctx
	return nil, providers.ErrProviderUnavailable
}
