package props

import (
	"fmt"
	"strconv"
	"time"
)

// Side is the direction of a prop outcome.
type Side string

const (
	SideOver  Side = "Over"
	SideUnder Side = "Under"
)

// Prop is one sportsbook quote for a player proposition.
type Prop struct {
	Player    string  `json:"player"`
	Stat      string  `json:"stat"`
	Line      float64 `json:"line"`
	Odds      int     `json:"odds"`
	Bookmaker string  `json:"bookmaker"`
	Side      Side    `json:"side,omitempty"`
	EventID   string  `json:"eventId,omitempty"`
}

// Key identifies a prop independent of book and price.
type Key struct {
	Player string
	Stat   string
	Line   float64
}

// Key returns the (player, stat, line) identity.
func (p Prop) Key() Key {
	return Key{Player: p.Player, Stat: p.Stat, Line: p.Line}
}

// Label renders the prop for display, e.g. "Aaron Judge Over 1.5 batter_hits".
func (p Prop) Label() string {
	side := p.Side
	if side == "" {
		side = SideOver
	}
	return fmt.Sprintf("%s %s %s %s", p.Player, side, strconv.FormatFloat(p.Line, 'f', -1, 64), p.Stat)
}

// BookPrice is a single book's moneyline for a game.
type BookPrice struct {
	Bookmaker  string `json:"bookmaker"`
	HomePrice  int    `json:"homePrice"`
	AwayPrice  int    `json:"awayPrice"`
	LastUpdate string `json:"lastUpdate,omitempty"`
}

// Game is an upcoming event with its moneylines.
type Game struct {
	ID           string      `json:"id"`
	CommenceTime string      `json:"commenceTime"`
	HomeTeam     string      `json:"homeTeam"`
	AwayTeam     string      `json:"awayTeam"`
	Books        []BookPrice `json:"books"`
}

// Confidence labels how much weight an estimate deserves.
type Confidence string

const (
	ConfidenceLow     Confidence = "Low"
	ConfidenceMedium  Confidence = "Medium"
	ConfidenceHigh    Confidence = "High"
	ConfidenceUnknown Confidence = "Unknown"
)

// Valid reports whether c is one of the known labels.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh, ConfidenceUnknown:
		return true
	}
	return false
}

// Tier records which step of the estimation chain produced an estimate.
type Tier string

const (
	TierContextual Tier = "contextual"
	TierRecent     Tier = "recent"
	TierFallback   Tier = "fallback"
	TierDegraded   Tier = "degraded"
)

// HitRateEstimate is the atomic output of the estimator. Every prop gets one,
// whatever happened upstream.
type HitRateEstimate struct {
	Player      string     `json:"player"`
	Stat        string     `json:"stat"`
	Threshold   float64    `json:"threshold"`
	HitRate     float64    `json:"hitRate"`
	SampleSize  int        `json:"sampleSize"`
	Confidence  Confidence `json:"confidence"`
	Tier        Tier       `json:"tier"`
	OpponentID  string     `json:"opponentId,omitempty"`
	PitcherHand string     `json:"pitcherHand,omitempty"`
	Note        string     `json:"note,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// IsFallback reports whether the estimate came from static heuristics rather
// than a real game sample.
func (e HitRateEstimate) IsFallback() bool {
	return e.Tier == TierFallback || e.Tier == TierDegraded
}

// EnrichedProp is a prop with both estimates attached.
type EnrichedProp struct {
	Prop
	ContextualHitRate  HitRateEstimate `json:"contextualHitRate"`
	FantasyHitRate     HitRateEstimate `json:"fantasyHitRate"`
	Enriched           bool            `json:"enriched"`
	Error              string          `json:"error,omitempty"`
	ImpliedProbability float64         `json:"impliedProbability"`
	Edge               float64         `json:"edge"`
}

// Combo is a two-leg pairing of positive-edge props. Edges are percentages.
type Combo struct {
	Players []string  `json:"players"`
	Props   []string  `json:"props"`
	Edges   []float64 `json:"edges"`
	AvgEdge float64   `json:"avgEdge"`
}

// Snapshot is the published result of one enrichment run.
type Snapshot struct {
	RunID       string         `json:"runId"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Props       []EnrichedProp `json:"props"`
	Combos      []Combo        `json:"combos"`
}

// OddsSnapshot is the published moneyline board of one run.
type OddsSnapshot struct {
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`
	Games       []Game    `json:"games"`
}
