package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/mlb-props-service/internal/config"
	"github.com/preston-bernstein/mlb-props-service/internal/enrich"
	httpserver "github.com/preston-bernstein/mlb-props-service/internal/http"
	"github.com/preston-bernstein/mlb-props-service/internal/http/handlers"
	"github.com/preston-bernstein/mlb-props-service/internal/hitrate"
	"github.com/preston-bernstein/mlb-props-service/internal/logging"
	"github.com/preston-bernstein/mlb-props-service/internal/metrics"
	"github.com/preston-bernstein/mlb-props-service/internal/pipeline"
	"github.com/preston-bernstein/mlb-props-service/internal/poller"
	"github.com/preston-bernstein/mlb-props-service/internal/providers"
	"github.com/preston-bernstein/mlb-props-service/internal/resolver"
)

var metricsSetup = metrics.Setup

// Server owns the refresh loop, the API listener and the metrics listener.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	stores        storeComponents
	pipeline      *pipeline.Pipeline
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// deps lets tests swap the upstream sources and the recorder.
type deps struct {
	odds     providers.OddsProvider
	stats    providers.StatsProvider
	recorder *metrics.Recorder
}

// New wires providers, caches, the pipeline, the poller and the HTTP surface
// from cfg.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServer(cfg, logger, deps{})
}

func newServer(cfg config.Config, logger *slog.Logger, d deps) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, d.recorder)

	odds, stats := d.odds, d.stats
	if odds == nil || stats == nil {
		builtOdds, builtStats := buildProviders(cfg, logger, recorder)
		if odds == nil {
			odds = builtOdds
		}
		if stats == nil {
			stats = builtStats
		}
	}

	stores, err := buildStores(cfg.Redis, logger)
	if err != nil {
		return nil, err
	}

	pipe := buildPipeline(cfg, odds, stats, stores, recorder, logger)
	plr, err := poller.New(pipe, logger, cfg.RefreshSchedule)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		stores:        stores,
		pipeline:      pipe,
		httpServer:    buildHTTPServer(cfg, stores, pipe, plr, recorder, logger),
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}, nil
}

func buildPipeline(cfg config.Config, odds providers.OddsProvider, stats providers.StatsProvider, stores storeComponents, recorder *metrics.Recorder, logger *slog.Logger) *pipeline.Pipeline {
	playerResolver := resolver.NewPlayers(stats, cfg.Stats.PlayerCacheTTL, nil, logger)
	logs := resolver.NewGameLogs(stats, cfg.Stats.GameLogCacheTTL, cfg.Stats.Season, nil, logger)
	contexts := resolver.NewContexts(logs, logger)
	estimator := hitrate.New(playerResolver, contexts, logs, recorder, logger)

	return pipeline.New(pipeline.Config{
		Odds:      odds,
		Enricher:  enrich.New(estimator, cfg.EnrichConcurrency, logger),
		Publisher: stores.publisher,
		Keys:      stores.keys,
		Recorder:  recorder,
		Logger:    logger,
	})
}

func buildHTTPServer(cfg config.Config, stores storeComponents, pipe *pipeline.Pipeline, plr Poller, recorder *metrics.Recorder, logger *slog.Logger) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	routerCfg := httpserver.RouterConfig{
		Handler:  handlers.NewHandler(stores.reader, logger, statusFn),
		Logger:   logger,
		Recorder: recorder,
	}
	if cfg.AdminToken != "" {
		routerCfg.Admin = handlers.NewAdminHandler(pipe, cfg.AdminToken, logger)
	}

	return netHTTPServer{srv: &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpserver.NewRouter(routerCfg),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}
}

// Run starts the listeners and the poller, then blocks until ctx is done and
// shuts everything down.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", slog.Any("err", err))
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", slog.Any("err", err))
		}
	}

	if s.stores.redis != nil {
		if err := s.stores.redis.Close(); err != nil {
			logging.Warn(s.logger, "redis close failed", slog.Any("err", err))
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := cfg.Metrics.Telemetry()

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", slog.Any("err", err))
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{srv: &http.Server{
			Addr:              ":" + recCfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: readTimeout,
		}}
	}
	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(logger, name+" server failed", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the API handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
