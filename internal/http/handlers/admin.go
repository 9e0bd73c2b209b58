package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
	"github.com/preston-bernstein/mlb-props-service/internal/http/requestutil"
	"github.com/preston-bernstein/mlb-props-service/internal/logging"
)

// Refresher runs one pipeline cycle.
type Refresher interface {
	Run(ctx context.Context) (props.Snapshot, error)
}

// AdminHandler exposes operator endpoints guarded by a bearer token.
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// Refresh runs the pipeline immediately. A refresh already in flight is
// joined rather than duplicated. The run outlives a disconnecting client.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(logger, "admin unauthorized",
			slog.String("path", r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", logger)
		return
	}

	snap, err := h.refresher.Run(context.WithoutCancel(r.Context()))
	if err != nil {
		logging.Warn(logger, "admin refresh failed", slog.Any("err", err))
		writeError(w, r, http.StatusBadGateway, "refresh failed", logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"runId":  snap.RunID,
		"props":  len(snap.Props),
		"combos": len(snap.Combos),
		"status": "ok",
	}, logger)
	logging.Info(logger, "admin refresh complete",
		slog.String(logging.FieldRunID, snap.RunID),
		slog.Int(logging.FieldCount, len(snap.Props)),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + h.token
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
