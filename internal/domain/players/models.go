package players

import "strings"

// Identity is a player name resolved to a stable upstream identifier.
type Identity struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Hand is the throwing hand of the opposing pitcher.
type Hand string

const (
	HandLeft    Hand = "L"
	HandRight   Hand = "R"
	HandUnknown Hand = "U"
)

// ParseHand normalizes upstream pitch-hand codes and descriptions.
func ParseHand(raw string) Hand {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "L", "LEFT":
		return HandLeft
	case "R", "RIGHT":
		return HandRight
	default:
		return HandUnknown
	}
}

// Group selects the upstream stat group.
type Group string

const (
	GroupHitting  Group = "hitting"
	GroupPitching Group = "pitching"
)

// OpponentContext describes the matchup a player is currently facing.
type OpponentContext struct {
	TeamID      string `json:"teamId"`
	OpponentID  string `json:"opponentId"`
	PitcherHand Hand   `json:"pitcherHand"`
}

// GameLogEntry is one completed game for a player.
type GameLogEntry struct {
	Date        string   `json:"date"`
	TeamID      string   `json:"teamId"`
	OpponentID  string   `json:"opponentId"`
	PitcherHand Hand     `json:"pitcherHand"`
	Stats       StatLine `json:"stats"`
}

// StatLine holds the raw counting stats for a single game. Batting and
// pitching lines share the struct; fields that do not apply stay zero.
type StatLine struct {
	Hits        float64 `json:"hits"`
	Doubles     float64 `json:"doubles"`
	Triples     float64 `json:"triples"`
	HomeRuns    float64 `json:"homeRuns"`
	Runs        float64 `json:"runs"`
	RBI         float64 `json:"rbi"`
	BaseOnBalls float64 `json:"baseOnBalls"`
	StrikeOuts  float64 `json:"strikeOuts"`
	TotalBases  float64 `json:"totalBases"`
	StolenBases float64 `json:"stolenBases"`
	EarnedRuns  float64 `json:"earnedRuns"`
	Outs        float64 `json:"outs"`
}

// Field returns the named upstream stat. Unknown names report false.
func (s StatLine) Field(name string) (float64, bool) {
	switch name {
	case "hits":
		return s.Hits, true
	case "doubles":
		return s.Doubles, true
	case "triples":
		return s.Triples, true
	case "homeRuns":
		return s.HomeRuns, true
	case "runs":
		return s.Runs, true
	case "rbi":
		return s.RBI, true
	case "baseOnBalls":
		return s.BaseOnBalls, true
	case "strikeOuts":
		return s.StrikeOuts, true
	case "totalBases":
		return s.TotalBases, true
	case "stolenBases":
		return s.StolenBases, true
	case "earnedRuns":
		return s.EarnedRuns, true
	case "outs":
		return s.Outs, true
	default:
		return 0, false
	}
}
