package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type valueBody struct {
	Value string `json:"value"`
}

func (h *Handler) HandleUserInfo(w http.ResponseWriter, r *http.Request) {
	var info map[string]string
	if !h.decode(w, r, &info) {
		return
	}
	h.bridge.SetUserInfo(info)
	accepted(w)
}

func (h *Handler) HandleScannerParams(w http.ResponseWriter, r *http.Request) {
	var params map[string]string
	if !h.decode(w, r, &params) {
		return
	}
	h.bridge.SetScannerParams(params)
	accepted(w)
}

func (h *Handler) HandleScannerParam(w http.ResponseWriter, r *http.Request) {
	var req valueBody
	if !h.decode(w, r, &req) {
		return
	}
	h.bridge.AddScannerParam(chi.URLParam(r, "key"), req.Value)
	accepted(w)
}

func (h *Handler) HandleDynamicProfile(w http.ResponseWriter, r *http.Request) {
	var profile map[string]any
	if !h.decode(w, r, &profile) {
		return
	}
	h.bridge.SetDynamicProfile(profile)
	accepted(w)
}

func (h *Handler) HandleDynamicProfileValue(w http.ResponseWriter, r *http.Request) {
	var req valueBody
	if !h.decode(w, r, &req) {
		return
	}
	h.bridge.SetDynamicProfileValue(chi.URLParam(r, "key"), req.Value)
	accepted(w)
}

func (h *Handler) HandleEnv(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Env string `json:"env"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	h.bridge.SetEnvironment(req.Env)
	accepted(w)
}

func (h *Handler) HandleLogo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Visible bool `json:"visible"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	h.bridge.SetLogoVisible(req.Visible)
	accepted(w)
}

func (h *Handler) HandleAdLabel(w http.ResponseWriter, r *http.Request) {
	var req valueBody
	if !h.decode(w, r, &req) {
		return
	}
	h.bridge.SetCustomAdLabel(req.Value)
	accepted(w)
}

func (h *Handler) HandleAppUserID(w http.ResponseWriter, r *http.Request) {
	var req valueBody
	if !h.decode(w, r, &req) {
		return
	}
	h.bridge.SetAppUserID(req.Value)
	accepted(w)
}
