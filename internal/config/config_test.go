package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Provider != defaultProvider {
		t.Fatalf("expected default provider %s, got %s", defaultProvider, cfg.Provider)
	}
	if cfg.RefreshSchedule != defaultRefreshSchedule {
		t.Fatalf("expected default schedule %s, got %s", defaultRefreshSchedule, cfg.RefreshSchedule)
	}
	if cfg.EnrichConcurrency != 10 {
		t.Fatalf("expected concurrency 10, got %d", cfg.EnrichConcurrency)
	}
	if cfg.OddsAPI.BaseURL != defaultOddsBaseURL || cfg.OddsAPI.APIKey != "" {
		t.Fatalf("unexpected odds api defaults: %+v", cfg.OddsAPI)
	}
	if cfg.OddsAPI.Lookahead != 48*time.Hour {
		t.Fatalf("expected 48h lookahead, got %s", cfg.OddsAPI.Lookahead)
	}
	if !reflect.DeepEqual(cfg.OddsAPI.BookTitles, []string{"DraftKings", "FanDuel", "BetMGM"}) {
		t.Fatalf("unexpected book titles %v", cfg.OddsAPI.BookTitles)
	}
	if len(cfg.OddsAPI.MarketBatches) != 2 || len(cfg.OddsAPI.MarketBatches[1]) != 4 {
		t.Fatalf("unexpected market batches %v", cfg.OddsAPI.MarketBatches)
	}
	if cfg.Stats.PlayerCacheTTL != time.Hour {
		t.Fatalf("expected 1h player cache ttl, got %s", cfg.Stats.PlayerCacheTTL)
	}
	if cfg.Stats.Season != 0 {
		t.Fatalf("expected season unset, got %d", cfg.Stats.Season)
	}
	if cfg.Redis.URL != "" || cfg.Redis.PropsKey != "mlb_props" || cfg.Redis.OddsKey != "mlb_odds" {
		t.Fatalf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected service name %s, got %s", defaultServiceName, cfg.Metrics.ServiceName)
	}
}

func TestLoadDefaultsAreNotShared(t *testing.T) {
	first, _ := Load()
	first.OddsAPI.MarketBatches[0][0] = "mutated"
	first.OddsAPI.BookTitles[0] = "mutated"

	second, _ := Load()
	if second.OddsAPI.MarketBatches[0][0] != "batter_hits" || second.OddsAPI.BookTitles[0] != "DraftKings" {
		t.Fatalf("defaults leaked between loads")
	}
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envProvider, "oddsapi")
	t.Setenv(envOddsAPIKey, "secret-key")
	t.Setenv(envOddsBaseURL, "http://example.com/v4")
	t.Setenv(envOddsBooks, "draftkings, ,caesars")
	t.Setenv(envOddsBatchDelay, "250ms")
	t.Setenv(envEnrichConcurrency, "4")
	t.Setenv(envStatsRate, "2.5")
	t.Setenv(envStatsSeason, "2024")
	t.Setenv(envRedisURL, "redis://localhost:6379/0")
	t.Setenv(envAdminToken, "admin-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "5000" || cfg.Provider != "oddsapi" {
		t.Fatalf("unexpected port/provider %s/%s", cfg.Port, cfg.Provider)
	}
	if cfg.OddsAPI.APIKey != "secret-key" || cfg.OddsAPI.BaseURL != "http://example.com/v4" {
		t.Fatalf("unexpected odds api config %+v", cfg.OddsAPI)
	}
	if !reflect.DeepEqual(cfg.OddsAPI.PreferredBooks, []string{"draftkings", "caesars"}) {
		t.Fatalf("unexpected preferred books %v", cfg.OddsAPI.PreferredBooks)
	}
	if cfg.OddsAPI.BatchDelay != 250*time.Millisecond {
		t.Fatalf("expected batch delay 250ms, got %s", cfg.OddsAPI.BatchDelay)
	}
	if cfg.AdminToken != "admin-secret" {
		t.Fatalf("expected admin token, got %q", cfg.AdminToken)
	}
	if cfg.EnrichConcurrency != 4 {
		t.Fatalf("expected concurrency 4, got %d", cfg.EnrichConcurrency)
	}
	if cfg.Stats.RatePerSecond != 2.5 || cfg.Stats.Season != 2024 {
		t.Fatalf("unexpected stats config %+v", cfg.Stats)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected redis url %s", cfg.Redis.URL)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv(envOddsLookahead, "not-a-duration")
	t.Setenv(envOddsTimeout, "0s")
	t.Setenv(envEnrichConcurrency, "-3")
	t.Setenv(envStatsRate, "fast")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OddsAPI.Lookahead != defaultOddsLookahead {
		t.Fatalf("expected default lookahead on invalid value, got %s", cfg.OddsAPI.Lookahead)
	}
	if cfg.OddsAPI.Timeout != defaultOddsTimeout {
		t.Fatalf("expected default timeout on non-positive value, got %s", cfg.OddsAPI.Timeout)
	}
	if cfg.EnrichConcurrency != defaultEnrichConcurrency {
		t.Fatalf("expected default concurrency, got %d", cfg.EnrichConcurrency)
	}
	if cfg.Stats.RatePerSecond != defaultStatsRate {
		t.Fatalf("expected default rate, got %v", cfg.Stats.RatePerSecond)
	}
}

func TestLoadAppliesOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "props.yaml")
	body := []byte(`book_titles: [DraftKings]
preferred_books: [draftkings]
market_batches:
  - [batter_hits]
  - []
refresh_schedule: "@every 30m"
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write overrides: %v", err)
	}
	t.Setenv(envOverridesFile, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg.OddsAPI.BookTitles, []string{"DraftKings"}) {
		t.Fatalf("unexpected book titles %v", cfg.OddsAPI.BookTitles)
	}
	if !reflect.DeepEqual(cfg.OddsAPI.MarketBatches, [][]string{{"batter_hits"}}) {
		t.Fatalf("unexpected market batches %v", cfg.OddsAPI.MarketBatches)
	}
	if cfg.RefreshSchedule != "@every 30m" {
		t.Fatalf("unexpected schedule %s", cfg.RefreshSchedule)
	}
}

func TestLoadReportsBadOverridesFile(t *testing.T) {
	t.Setenv(envOverridesFile, filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing overrides file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("book_titles: {"), 0o600); err != nil {
		t.Fatalf("write overrides: %v", err)
	}
	if _, err := LoadOverrides(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOverridesApplyNilConfig(t *testing.T) {
	Overrides{RefreshSchedule: "@hourly"}.Apply(nil)
}

func TestMetricsTelemetryConversion(t *testing.T) {
	m := MetricsConfig{Enabled: true, Port: "9191", OtlpEndpoint: "collector:4318", ServiceName: "svc", OtlpInsecure: true}
	tc := m.Telemetry()
	if !tc.Enabled || tc.Port != "9191" || tc.OtlpEndpoint != "collector:4318" || tc.ServiceName != "svc" || !tc.OtlpInsecure {
		t.Fatalf("unexpected telemetry config %+v", tc)
	}
}

func TestDefaultBookAndMarketListsAreCopies(t *testing.T) {
	titles := DefaultBookTitles()
	titles[0] = "Caesars"
	batches := DefaultMarketBatches()
	batches[0][0] = "batter_walks"
	books := DefaultPreferredBooks()
	books[0] = "caesars"

	if DefaultBookTitles()[0] != "DraftKings" || DefaultPreferredBooks()[0] != "draftkings" {
		t.Fatalf("expected book defaults unaffected by caller mutation")
	}
	if DefaultMarketBatches()[0][0] != "batter_hits" {
		t.Fatalf("expected market batches unaffected by caller mutation")
	}
}
