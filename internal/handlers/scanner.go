package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"

	"github.com/markerbridge/markerbridge/internal/engine"
)

type initRequest struct {
	APIKey     string `json:"apiKey"`
	CallbackID string `json:"callbackId"`
}

// HandleInit starts initialization. The outcome is pushed over the event
// socket as a callback message tagged with callbackId.
func (h *Handler) HandleInit(w http.ResponseWriter, r *http.Request) {
	var req initRequest
	if !h.decode(w, r, &req) {
		return
	}

	key := req.APIKey
	if key == "" {
		key = h.apiKey()
	}

	var onSuccess func()
	var onError func(string)
	if req.CallbackID != "" {
		id := req.CallbackID
		onSuccess = func() { h.hub.Resolve(id, "") }
		onError = func(msg string) {
			if msg == "" {
				msg = "initialization failed"
			}
			h.hub.Resolve(id, msg)
		}
	}

	h.bridge.Initialize(key, onSuccess, onError)
	accepted(w)
}

func (h *Handler) HandleLaunchScanner(w http.ResponseWriter, r *http.Request) {
	h.bridge.LaunchScanner()
	accepted(w)
}

func (h *Handler) HandleCloseScanner(w http.ResponseWriter, r *http.Request) {
	h.bridge.CloseScanner()
	accepted(w)
}

func (h *Handler) HandleStartScanning(w http.ResponseWriter, r *http.Request) {
	h.bridge.StartScanning()
	accepted(w)
}

func (h *Handler) HandleStopScanning(w http.ResponseWriter, r *http.Request) {
	h.bridge.StopScanning()
	accepted(w)
}

func (h *Handler) HandleTroubleshoot(w http.ResponseWriter, r *http.Request) {
	h.bridge.StartTroubleshoot()
	accepted(w)
}

type activityResult struct {
	RequestCode int `json:"requestCode"`
	ResultCode  int `json:"resultCode"`
}

// HandleActivityResult relays a foreground-return signal from the host.
func (h *Handler) HandleActivityResult(w http.ResponseWriter, r *http.Request) {
	var req activityResult
	if !h.decode(w, r, &req) {
		return
	}
	h.bridge.OnActivityResult(req.RequestCode, req.ResultCode)
	accepted(w)
}

type performRequest struct {
	Properties map[string]any `json:"properties"`
}

func (h *Handler) HandlePerformMarker(w http.ResponseWriter, r *http.Request) {
	var req performRequest
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}
	h.bridge.PerformMarker(chi.URLParam(r, "markerID"), req.Properties)
	accepted(w)
}

// HandleMarkerQR renders a printable QR code for a marker id, for pointing a
// device camera at during development.
func (h *Handler) HandleMarkerQR(w http.ResponseWriter, r *http.Request) {
	markerID := chi.URLParam(r, "markerID")
	png, err := h.qr.Get(markerID, func() ([]byte, error) {
		return qrcode.Encode(markerID, qrcode.Medium, 256)
	})
	if err != nil {
		h.logger.Error("qr encode failed", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

type modeBody struct {
	Mode engine.Mode `json:"mode"`
}

func (h *Handler) HandleGetMode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, modeBody{Mode: h.bridge.Mode()})
}

func (h *Handler) HandleSetMode(w http.ResponseWriter, r *http.Request) {
	var req modeBody
	if !h.decode(w, r, &req) {
		return
	}
	h.bridge.SetMode(req.Mode)
	accepted(w)
}
