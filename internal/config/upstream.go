package config

import "time"

// OddsAPIConfig controls how we talk to the odds provider.
type OddsAPIConfig struct {
	BaseURL    string
	APIKey     string
	Sport      string
	Regions    string
	Lookahead  time.Duration
	BatchDelay time.Duration
	Timeout    time.Duration
	// BookTitles is the closed allow-list applied to response bookmaker titles.
	BookTitles []string
	// PreferredBooks are bookmaker keys sent on the request.
	PreferredBooks []string
	MarketBatches  [][]string
}

// StatsConfig controls the player stats provider and the caches in front of it.
type StatsConfig struct {
	BaseURL         string
	Timeout         time.Duration
	RatePerSecond   float64
	Season          int // zero means the current calendar year
	PlayerCacheTTL  time.Duration
	GameLogCacheTTL time.Duration
}

// RedisConfig controls snapshot publishing. An empty URL disables Redis.
type RedisConfig struct {
	URL      string
	OddsKey  string
	PropsKey string
}

func loadOddsAPI() OddsAPIConfig {
	return OddsAPIConfig{
		BaseURL:        envOrDefault(envOddsBaseURL, defaultOddsBaseURL),
		APIKey:         envOrDefault(envOddsAPIKey, ""),
		Sport:          envOrDefault(envOddsSport, defaultOddsSport),
		Regions:        envOrDefault(envOddsRegions, defaultOddsRegions),
		Lookahead:      durationEnvOrDefault(envOddsLookahead, defaultOddsLookahead),
		BatchDelay:     durationEnvOrDefault(envOddsBatchDelay, defaultOddsBatchDelay),
		Timeout:        durationEnvOrDefault(envOddsTimeout, defaultOddsTimeout),
		BookTitles:     DefaultBookTitles(),
		PreferredBooks: listEnvOrDefault(envOddsBooks, DefaultPreferredBooks()),
		MarketBatches:  DefaultMarketBatches(),
	}
}

func loadStats() StatsConfig {
	return StatsConfig{
		BaseURL:         envOrDefault(envStatsBaseURL, defaultStatsBaseURL),
		Timeout:         durationEnvOrDefault(envStatsTimeout, defaultStatsTimeout),
		RatePerSecond:   floatEnvOrDefault(envStatsRate, defaultStatsRate),
		Season:          intEnvOrDefault(envStatsSeason, 0),
		PlayerCacheTTL:  durationEnvOrDefault(envPlayerCacheTTL, defaultPlayerCacheTTL),
		GameLogCacheTTL: durationEnvOrDefault(envGameLogCacheTTL, defaultGameLogCacheTTL),
	}
}

func loadRedis() RedisConfig {
	return RedisConfig{
		URL:      envOrDefault(envRedisURL, ""),
		OddsKey:  envOrDefault(envRedisOddsKey, defaultRedisOddsKey),
		PropsKey: envOrDefault(envRedisPropsKey, defaultRedisPropsKey),
	}
}

func copyBatches(in [][]string) [][]string {
	out := make([][]string, 0, len(in))
	for _, batch := range in {
		out = append(out, append([]string(nil), batch...))
	}
	return out
}
