package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/mlb-props-service/internal/http/handlers"
	"github.com/preston-bernstein/mlb-props-service/internal/http/middleware"
	"github.com/preston-bernstein/mlb-props-service/internal/http/requestutil"
	"github.com/preston-bernstein/mlb-props-service/internal/metrics"
)

// RouterConfig collects what NewRouter mounts. Admin may be nil, in which
// case the refresh route is not registered.
type RouterConfig struct {
	Handler  *handlers.Handler
	Admin    *handlers.AdminHandler
	Logger   *slog.Logger
	Recorder *metrics.Recorder
}

// NewRouter registers the public read routes and the optional admin route.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestutil.HeaderRequestID},
		ExposedHeaders: []string{requestutil.HeaderRequestID},
		MaxAge:         300,
	}))
	r.Use(middleware.Logging(cfg.Logger, cfg.Recorder))

	h := cfg.Handler
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/odds", h.Odds)
	r.Get("/props", h.Props)
	r.Get("/combos", h.Combos)

	if cfg.Admin != nil {
		r.Post("/admin/refresh", cfg.Admin.Refresh)
	}
	return r
}
