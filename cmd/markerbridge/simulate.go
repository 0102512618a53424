package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/markerbridge/markerbridge/internal/engine/simulator"
)

// mountSimulator exposes endpoints that make the simulated engine fire the
// callbacks a camera would.
func mountSimulator(r chi.Router, eng *simulator.Engine, logger *slog.Logger) {
	r.Route("/sim", func(r chi.Router) {
		r.Post("/detect", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				Type  string `json:"type"`
				Data  string `json:"data"`
				Error string `json:"error"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				http.Error(w, "Bad Request", http.StatusBadRequest)
				return
			}
			if body.Type == "" {
				body.Type = "QR"
			}
			eng.Detect(body.Type, body.Data, body.Error)
			w.WriteHeader(http.StatusAccepted)
		})

		r.Post("/content/{markerID}", func(w http.ResponseWriter, req *http.Request) {
			var data map[string]any
			if req.ContentLength != 0 {
				if err := json.NewDecoder(req.Body).Decode(&data); err != nil {
					http.Error(w, "Bad Request", http.StatusBadRequest)
					return
				}
			}
			if err := eng.Resolve(chi.URLParam(req, "markerID"), data); err != nil {
				logger.Error("simulated content failed", "err", err)
			}
			w.WriteHeader(http.StatusAccepted)
		})
	})
}
