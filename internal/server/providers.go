package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/mlb-props-service/internal/config"
	"github.com/preston-bernstein/mlb-props-service/internal/metrics"
	"github.com/preston-bernstein/mlb-props-service/internal/providers"
	"github.com/preston-bernstein/mlb-props-service/internal/providers/fixture"
	"github.com/preston-bernstein/mlb-props-service/internal/providers/mlbstats"
	"github.com/preston-bernstein/mlb-props-service/internal/providers/oddsapi"
)

const (
	providerFixture  = "fixture"
	providerOddsAPI  = "oddsapi"
	providerMLBStats = "mlbstats"
)

// buildProviders selects the odds and stats sources for cfg.Provider. Live
// clients sit behind the shared retry, pacing and breaker chain.
func buildProviders(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (providers.OddsProvider, providers.StatsProvider) {
	switch normalizeProviderName(cfg.Provider) {
	case providerFixture:
		fx := fixture.New()
		return fx, fx
	case providerOddsAPI:
		return buildOddsClient(cfg.OddsAPI, logger, recorder), buildStatsClient(cfg.Stats, logger, recorder)
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		fx := fixture.New()
		return fx, fx
	}
}

func buildOddsClient(cfg config.OddsAPIConfig, logger *slog.Logger, recorder *metrics.Recorder) *oddsapi.Client {
	doer := providers.NewUpstreamDoer(nil, providers.ChainConfig{
		Provider: providerOddsAPI,
		Timeout:  cfg.Timeout,
	}, logger, recorder)
	return oddsapi.NewClient(oddsapi.Config{
		BaseURL:        cfg.BaseURL,
		APIKey:         cfg.APIKey,
		Sport:          cfg.Sport,
		Regions:        cfg.Regions,
		Lookahead:      cfg.Lookahead,
		BatchDelay:     cfg.BatchDelay,
		BookTitles:     cfg.BookTitles,
		PreferredBooks: cfg.PreferredBooks,
		MarketBatches:  cfg.MarketBatches,
		HTTPClient:     doer,
		Logger:         logger,
	})
}

func buildStatsClient(cfg config.StatsConfig, logger *slog.Logger, recorder *metrics.Recorder) *mlbstats.Client {
	doer := providers.NewUpstreamDoer(nil, providers.ChainConfig{
		Provider:      providerMLBStats,
		Timeout:       cfg.Timeout,
		RatePerSecond: cfg.RatePerSecond,
		Burst:         1,
	}, logger, recorder)
	return mlbstats.NewClient(mlbstats.Config{
		BaseURL:    cfg.BaseURL,
		HTTPClient: doer,
		Timeout:    cfg.Timeout,
		Logger:     logger,
	})
}

// normalizeProviderName lower-cases the configured name; empty means fixture.
func normalizeProviderName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return providerFixture
	}
	return name
}
