package mlbstats

const (
	providerName = "mlbstats"

	defaultBaseURL = "https://statsapi.mlb.com/api/v1"
	statsGameLog   = "gameLog"
)

type searchResponse struct {
	People []personResponse `json:"people"`
}

type personResponse struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

type statsResponse struct {
	Stats []statGroupResponse `json:"stats"`
}

type statGroupResponse struct {
	Splits []splitResponse `json:"splits"`
}

type splitResponse struct {
	Date     string       `json:"date"`
	Team     refResponse  `json:"team"`
	Opponent refResponse  `json:"opponent"`
	Pitcher  pitcherRef   `json:"pitcher"`
	Stat     statResponse `json:"stat"`
}

type refResponse struct {
	ID int `json:"id"`
}

type pitcherRef struct {
	ID   int `json:"id"`
	Hand struct {
		Code string `json:"code"`
	} `json:"hand"`
}

type statResponse struct {
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
