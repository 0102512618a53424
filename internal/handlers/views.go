package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/markerbridge/markerbridge/internal/engine"
)

// SlotFunc returns the host layout slot a view tag renders into.
type SlotFunc func(tag string) engine.Slot

func (h *Handler) HandleMountView(slots SlotFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := chi.URLParam(r, "tag")
		var slot engine.Slot
		if slots != nil {
			slot = slots(tag)
		}
		h.bridge.MountView(tag, slot)
		accepted(w)
	}
}

func (h *Handler) HandleUnmountView(w http.ResponseWriter, r *http.Request) {
	h.bridge.UnmountView(chi.URLParam(r, "tag"))
	accepted(w)
}

func (h *Handler) HandleCamera(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	h.bridge.SetCameraEnabled(chi.URLParam(r, "tag"), enabled)
	accepted(w)
}
