package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/players"
	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
	"github.com/preston-bernstein/mlb-props-service/internal/providers"
	"github.com/preston-bernstein/mlb-props-service/internal/timeutil"
)

const gamesPerLog = 12

type fixturePlayer struct {
	id      string
	teamID  string
	seed    int
	pitcher bool
}

var roster = map[string]fixturePlayer{
	"Aaron Judge":   {id: "592450", teamID: "147", seed: 3},
	"Juan Soto":     {id: "665742", teamID: "121", seed: 5},
	"Shohei Ohtani": {id: "660271", teamID: "119", seed: 7},
	"Gerrit Cole":   {id: "543037", teamID: "147", seed: 2, pitcher: true},
	"Zack Wheeler":  {id: "554430", teamID: "143", seed: 4, pitcher: true},
}

var opponents = []string{"111", "110", "143", "121"}

// Provider returns deterministic odds and stats for local runs and tests.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

var (
	_ providers.OddsProvider  = (*Provider)(nil)
	_ providers.StatsProvider = (*Provider)(nil)
)

// FetchMoneylines returns two upcoming games.
func (p *Provider) FetchMoneylines(ctx context.Context) ([]props.Game, error) {
	_ = ctx
	start := p.now().UTC().Truncate(time.Hour)
	return []props.Game{
		{
			ID:           "fixture-1",
			CommenceTime: timeutil.FormatWindowBound(start.Add(2 * time.Hour)),
			HomeTeam:     "New York Yankees",
			AwayTeam:     "Boston Red Sox",
			Books: []props.BookPrice{
				{Bookmaker: "DraftKings", HomePrice: -145, AwayPrice: 125},
				{Bookmaker: "FanDuel", HomePrice: -140, AwayPrice: 120},
			},
		},
		{
			ID:           "fixture-2",
			CommenceTime: timeutil.FormatWindowBound(start.Add(4 * time.Hour)),
			HomeTeam:     "Philadelphia Phillies",
			AwayTeam:     "New York Mets",
			Books: []props.BookPrice{
				{Bookmaker: "BetMGM", HomePrice: -110, AwayPrice: -110},
			},
		},
	}, nil
}

// FetchPlayerProps returns a small board with cross-book duplicates.
func (p *Provider) FetchPlayerProps(ctx context.Context) ([]props.Prop, error) {
	_ = ctx
	return []props.Prop{
		{Player: "Aaron Judge", Stat: "batter_hits", Line: 1.5, Odds: -110, Bookmaker: "DraftKings", Side: props.SideOver, EventID: "fixture-1"},
		{Player: "Aaron Judge", Stat: "batter_hits", Line: 1.5, Odds: 105, Bookmaker: "FanDuel", Side: props.SideOver, EventID: "fixture-1"},
		{Player: "Aaron Judge", Stat: "batter_total_bases", Line: 1.5, Odds: -125, Bookmaker: "BetMGM", Side: props.SideOver, EventID: "fixture-1"},
		{Player: "Aaron Judge", Stat: "batter_home_runs", Line: 0.5, Odds: 240, Bookmaker: "DraftKings", Side: props.SideOver, EventID: "fixture-1"},
		{Player: "Juan Soto", Stat: "batter_home_runs", Line: 0.5, Odds: 320, Bookmaker: "FanDuel", Side: props.SideOver, EventID: "fixture-2"},
		{Player: "Juan Soto", Stat: "batter_hits", Line: 0.5, Odds: -250, Bookmaker: "BetMGM", Side: props.SideOver, EventID: "fixture-2"},
		{Player: "Shohei Ohtani", Stat: "batter_total_bases", Line: 2.5, Odds: 150, Bookmaker: "DraftKings", Side: props.SideOver, EventID: "fixture-2"},
		{Player: "Gerrit Cole", Stat: "pitcher_strikeouts", Line: 6.5, Odds: -120, Bookmaker: "FanDuel", Side: props.SideOver, EventID: "fixture-1"},
		{Player: "Gerrit Cole", Stat: "pitcher_strikeouts", Line: 6.5, Odds: -130, Bookmaker: "DraftKings", Side: props.SideOver, EventID: "fixture-1"},
		{Player: "Zack Wheeler", Stat: "pitcher_outs", Line: 18.5, Odds: -105, Bookmaker: "BetMGM", Side: props.SideUnder, EventID: "fixture-2"},
		{Player: "Call-Up Rookie", Stat: "batter_hits", Line: 0.5, Odds: -160, Bookmaker: "FanDuel", Side: props.SideOver, EventID: "fixture-2"},
	}, nil
}

// SearchPlayer resolves roster names; anyone else is not found.
func (p *Provider) SearchPlayer(ctx context.Context, name string) (players.Identity, error) {
	_ = ctx
	fp, ok := roster[name]
	if !ok {
		return players.Identity{}, fmt.Errorf("%w: player %q", providers.ErrNotFound, name)
	}
	return players.Identity{Name: name, ID: fp.id}, nil
}

// GameLog returns twelve synthetic games ending yesterday, most recent first.
func (p *Provider) GameLog(ctx context.Context, playerID string, group players.Group, season int) ([]players.GameLogEntry, error) {
	_ = ctx
	_ = season
	var fp fixturePlayer
	found := false
	for _, candidate := range roster {
		if candidate.id == playerID {
			fp, found = candidate, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: player id %s", providers.ErrNotFound, playerID)
	}
	if fp.pitcher != (group == players.GroupPitching) {
		return nil, nil
	}

	today := p.now().UTC().Truncate(24 * time.Hour)
	entries := make([]players.GameLogEntry, 0, gamesPerLog)
	for i := 0; i < gamesPerLog; i++ {
		k := i + fp.seed
		hand := players.HandRight
		if k%3 == 0 {
			hand = players.HandLeft
		}
		entries = append(entries, players.GameLogEntry{
			Date:        timeutil.FormatDate(today.AddDate(0, 0, -(i + 1))),
			TeamID:      fp.teamID,
			OpponentID:  opponents[k%len(opponents)],
			PitcherHand: hand,
			Stats:       statLine(k, fp.pitcher),
		})
	}
	return entries, nil
}

func statLine(k int, pitcher bool) players.StatLine {
	if pitcher {
		return players.StatLine{
			StrikeOuts:  float64(4 + k%5),
			Hits:        float64(3 + k%4),
			EarnedRuns:  float64(k % 4),
			BaseOnBalls: float64(k % 3),
			Outs:        float64(15 + k%7),
		}
	}
	hits := float64(k % 3)
	doubles := float64(k % 2)
	if doubles > hits {
		doubles = hits
	}
	homeRuns := 0.0
	if k%4 == 0 && hits > doubles {
		homeRuns = 1
	}
	singles := hits - doubles - homeRuns
	return players.StatLine{
		Hits:        hits,
		Doubles:     doubles,
		HomeRuns:    homeRuns,
		Runs:        float64(k % 2),
		RBI:         float64((k + 1) % 3),
		BaseOnBalls: float64(k % 2),
		StrikeOuts:  float64(k % 3),
		TotalBases:  singles + 2*doubles + 4*homeRuns,
		StolenBases: float64(k % 5 / 4),
	}
}
