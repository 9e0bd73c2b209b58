package oddsapi

import "time"

const (
	providerName = "oddsapi"

	defaultBaseURL     = "https://api.the-odds-api.com/v4"
	defaultSport       = "baseball_mlb"
	defaultRegions     = "us"
	defaultLookahead   = 48 * time.Hour
	defaultBatchDelay  = time.Second
	defaultHTTPTimeout = 20 * time.Second
	defaultPoint       = 0.5

	oddsFormat = "american"
	marketH2H  = "h2h"
	sideUnder  = "Under"
)

