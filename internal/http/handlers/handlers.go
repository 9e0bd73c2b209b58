// Package handlers serves the cached snapshots over HTTP.
package handlers

import (
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-props-service/internal/domain/props"
	"github.com/preston-bernstein/mlb-props-service/internal/logging"
	"github.com/preston-bernstein/mlb-props-service/internal/poller"
	"github.com/preston-bernstein/mlb-props-service/internal/store"
)

const (
	msgOddsMissing   = "Odds not cached yet"
	msgPropsMissing  = "Props not cached yet"
	msgCombosMissing = "Combos not cached yet"
	msgStoreDown     = "snapshot store unavailable"
)

// Handler wires read routes to the snapshot store.
type Handler struct {
	reader   store.Reader
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case the
// service always reports ready.
func NewHandler(reader store.Reader, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		reader:   reader,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports liveness.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the refresh loop has produced data recently.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Odds returns the latest moneyline board.
func (h *Handler) Odds(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	snap, ok, err := h.reader.Odds(r.Context())
	if err != nil {
		logging.Error(logger, "odds snapshot load failed", err)
		writeError(w, r, nethttp.StatusBadGateway, msgStoreDown, logger)
		return
	}
	if !ok {
		writeError(w, r, nethttp.StatusServiceUnavailable, msgOddsMissing, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, snap, logger)
}

// Props returns the latest enriched props. Optional filters: player and stat
// (case-insensitive exact match) and min_edge.
func (h *Handler) Props(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	filter, err := parsePropFilter(r)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), logger)
		return
	}
	snap, ok := h.loadProps(w, r, msgPropsMissing)
	if !ok {
		return
	}
	snap.Props = filter.apply(snap.Props)
	writeJSON(w, nethttp.StatusOK, snap, logger)
}

// Combos returns the two-leg combos from the latest run.
func (h *Handler) Combos(w nethttp.ResponseWriter, r *nethttp.Request) {
	snap, ok := h.loadProps(w, r, msgCombosMissing)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, comboResponse{
		RunID:       snap.RunID,
		GeneratedAt: snap.GeneratedAt,
		Combos:      snap.Combos,
	}, loggerFromContext(r, h.logger))
}

func (h *Handler) loadProps(w nethttp.ResponseWriter, r *nethttp.Request, missing string) (props.Snapshot, bool) {
	logger := loggerFromContext(r, h.logger)
	snap, ok, err := h.reader.Props(r.Context())
	if err != nil {
		logging.Error(logger, "props snapshot load failed", err)
		writeError(w, r, nethttp.StatusBadGateway, msgStoreDown, logger)
		return props.Snapshot{}, false
	}
	if !ok {
		writeError(w, r, nethttp.StatusServiceUnavailable, missing, logger)
		return props.Snapshot{}, false
	}
	return snap, true
}

type comboResponse struct {
	RunID       string        `json:"runId"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Combos      []props.Combo `json:"combos"`
}

type propFilter struct {
	player  string
	stat    string
	minEdge *float64
}

type badRequest string

func (e badRequest) Error() string { return string(e) }

func parsePropFilter(r *nethttp.Request) (propFilter, error) {
	q := r.URL.Query()
	f := propFilter{
		player: strings.TrimSpace(q.Get("player")),
		stat:   strings.TrimSpace(q.Get("stat")),
	}
	if raw := strings.TrimSpace(q.Get("min_edge")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return propFilter{}, badRequest("invalid min_edge (expected a number)")
		}
		f.minEdge = &v
	}
	return f, nil
}

func (f propFilter) apply(in []props.EnrichedProp) []props.EnrichedProp {
	if f.player == "" && f.stat == "" && f.minEdge == nil {
		return in
	}
	out := make([]props.EnrichedProp, 0, len(in))
	for _, ep := range in {
		if f.player != "" && !strings.EqualFold(ep.Player, f.player) {
			continue
		}
		if f.stat != "" && !strings.EqualFold(ep.Stat, f.stat) {
			continue
		}
		if f.minEdge != nil && ep.Edge < *f.minEdge {
			continue
		}
		out = append(out, ep)
	}
	return out
}
