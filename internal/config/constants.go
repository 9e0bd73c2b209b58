package config

import "time"

const (
	envPort              = "PORT"
	envProvider          = "PROVIDER"
	envRefreshSchedule   = "REFRESH_SCHEDULE"
	envEnrichConcurrency = "ENRICH_CONCURRENCY"
	envOverridesFile     = "PROPS_CONFIG_FILE"
	envLogLevel          = "LOG_LEVEL"
	envLogFormat         = "LOG_FORMAT"
	envAdminToken        = "ADMIN_TOKEN"
	envMetricsPort       = "METRICS_PORT"
	envMetricsOn         = "METRICS_ENABLED"
	envOtelEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService       = "OTEL_SERVICE_NAME"
	envOtelInsecure      = "OTEL_EXPORTER_OTLP_INSECURE"

	envOddsAPIKey     = "ODDS_API_KEY"
	envOddsBaseURL    = "ODDS_API_BASE_URL"
	envOddsSport      = "ODDS_API_SPORT"
	envOddsRegions    = "ODDS_API_REGIONS"
	envOddsLookahead  = "ODDS_LOOKAHEAD"
	envOddsBatchDelay = "ODDS_BATCH_DELAY"
	envOddsTimeout    = "ODDS_HTTP_TIMEOUT"
	envOddsBooks      = "ODDS_API_BOOKMAKERS"

	envStatsBaseURL    = "STATS_API_BASE_URL"
	envStatsTimeout    = "STATS_HTTP_TIMEOUT"
	envStatsRate       = "STATS_RATE_PER_SEC"
	envStatsSeason     = "STATS_SEASON"
	envPlayerCacheTTL  = "PLAYER_CACHE_TTL"
	envGameLogCacheTTL = "GAMELOG_CACHE_TTL"
	envRedisURL        = "REDIS_URL"
	envRedisOddsKey    = "REDIS_KEY_ODDS"
	envRedisPropsKey   = "REDIS_KEY_PROPS"

	defaultPort     = "4000"
	defaultProvider = "fixture"
	// The odds quota is the binding constraint; two hours keeps a full slate under it.
	defaultRefreshSchedule   = "@every 2h"
	defaultEnrichConcurrency = 10
	defaultLogLevel          = "info"
	defaultLogFormat         = "json"
	defaultMetricsPort       = "9090"
	defaultServiceName       = "mlb-props-service"

	defaultOddsBaseURL    = "https://api.the-odds-api.com/v4"
	defaultOddsSport      = "baseball_mlb"
	defaultOddsRegions    = "us"
	defaultOddsLookahead  = 48 * Duration(time.Hour)
	defaultOddsBatchDelay = Duration(time.Second)
	defaultOddsTimeout    = 20 * Duration(time.Second)

	defaultStatsBaseURL    = "https://statsapi.mlb.com/api/v1"
	defaultStatsTimeout    = 10 * Duration(time.Second)
	defaultStatsRate       = 5.0
	defaultPlayerCacheTTL  = Duration(time.Hour)
	defaultGameLogCacheTTL = 10 * Duration(time.Minute)

	defaultRedisOddsKey  = "mlb_odds"
	defaultRedisPropsKey = "mlb_props"
)

// Sportsbook and market defaults. The odds client falls back to these too,
// so read them through the Default* accessors below.
var (
	defaultBookTitles     = []string{"DraftKings", "FanDuel", "BetMGM"}
	defaultPreferredBooks = []string{"draftkings", "fanduel", "betmgm"}
	defaultMarketBatches  = [][]string{
		{"batter_hits", "batter_home_runs", "batter_total_bases"},
		{"pitcher_strikeouts", "pitcher_earned_runs", "pitcher_outs", "pitcher_hits_allowed"},
	}
)

// DefaultBookTitles returns a copy of the sportsbook title allow-list.
func DefaultBookTitles() []string { return append([]string(nil), defaultBookTitles...) }

// DefaultPreferredBooks returns a copy of the bookmaker keys sent upstream.
func DefaultPreferredBooks() []string { return append([]string(nil), defaultPreferredBooks...) }

// DefaultMarketBatches returns a copy of the per-event market batches.
func DefaultMarketBatches() [][]string { return copyBatches(defaultMarketBatches) }
