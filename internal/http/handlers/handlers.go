package handlers

import (
	"log/slog"
	nethttp "net/http"
	"strings"

	"github.com/preston-bernstein/pyramid-service/internal/app/pyramids"
	"github.com/preston-bernstein/pyramid-service/internal/poller"
)

// Limits caps the size of pyramids requested over HTTP. Zero disables a limit.
type Limits struct {
	MaxLevels        int
	MaxTeamsPerLevel int
}

// Handler wires HTTP routes to the pyramid service.
type Handler struct {
	svc      *pyramids.Service
	logger   *slog.Logger
	limits   Limits
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil when no library poller runs.
func NewHandler(svc *pyramids.Service, logger *slog.Logger, limits Limits, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		limits:   limits,
		statusFn: statusFn,
	}
}

// ServeHTTP dispatches without a mux; handy for tests and benchmarks.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/themes":
		h.Themes(w, r)
	case strings.HasPrefix(r.URL.Path, "/themes/"):
		h.ThemeByKey(w, r)
	case r.URL.Path == "/pyramids":
		h.Pyramids(w, r)
	case strings.HasPrefix(r.URL.Path, "/pyramids/"):
		h.PyramidByID(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
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
