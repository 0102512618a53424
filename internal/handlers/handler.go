package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/markerbridge/markerbridge/internal/bridge"
	"github.com/markerbridge/markerbridge/internal/cache"
	"github.com/markerbridge/markerbridge/internal/ws"
)

// KeyFunc returns the stored engine credential, or "" when there is none.
type KeyFunc func() string

type Handler struct {
	bridge *bridge.Bridge
	hub    *ws.Hub
	apiKey KeyFunc
	qr     *cache.Single[[]byte]
	logger *slog.Logger
}

func New(b *bridge.Bridge, hub *ws.Hub, apiKey KeyFunc, logger *slog.Logger) *Handler {
	if apiKey == nil {
		apiKey = func() string { return "" }
	}
	return &Handler{
		bridge: b,
		hub:    hub,
		apiKey: apiKey,
		qr:     cache.NewSingle[[]byte](time.Hour),
		logger: logger,
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.Warn("malformed request body", "path", r.URL.Path, "err", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func accepted(w http.ResponseWriter) {
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
