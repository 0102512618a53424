package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/markerbridge/markerbridge/internal/handlers"
	"github.com/markerbridge/markerbridge/internal/middleware"
)

// New wires the host command surface. index, when non-nil, serves the host
// page at "/".
func New(h *handlers.Handler, slots handlers.SlotFunc, index http.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)

	if index != nil {
		r.Handle("/", index)
	}
	r.Get("/ws", h.HandleWS)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Logger(logger))

		r.Post("/init", h.HandleInit)

		r.Post("/scanner/launch", h.HandleLaunchScanner)
		r.Post("/scanner/close", h.HandleCloseScanner)
		r.Post("/scanning/start", h.HandleStartScanning)
		r.Post("/scanning/stop", h.HandleStopScanning)
		r.Post("/troubleshoot", h.HandleTroubleshoot)
		r.Post("/activity-result", h.HandleActivityResult)

		r.Put("/user-info", h.HandleUserInfo)
		r.Put("/scanner-params", h.HandleScannerParams)
		r.Put("/scanner-params/{key}", h.HandleScannerParam)
		r.Put("/dynamic-profile", h.HandleDynamicProfile)
		r.Put("/dynamic-profile/{key}", h.HandleDynamicProfileValue)
		r.Put("/env", h.HandleEnv)
		r.Put("/logo", h.HandleLogo)
		r.Put("/ad-label", h.HandleAdLabel)
		r.Put("/app-user-id", h.HandleAppUserID)

		r.Post("/markers/{markerID}/perform", h.HandlePerformMarker)
		r.Get("/markers/{markerID}/qr.png", h.HandleMarkerQR)

		r.Get("/mode", h.HandleGetMode)
		r.Put("/mode", h.HandleSetMode)

		r.Post("/views/{tag}", h.HandleMountView(slots))
		r.Delete("/views/{tag}", h.HandleUnmountView)
		r.Put("/views/{tag}/camera", h.HandleCamera)
	})

	return r
}
