package http

import (
	"net/http"

	"gpstrack/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	auth service.AuthService,
	tokens service.TokenService,
	devices service.DeviceService,
	footprints service.FootprintService,
) http.Handler {
	h := &Handler{
		auth:       auth,
		tokens:     tokens,
		devices:    devices,
		footprints: footprints,
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public: registration and token exchange.
	r.Route("/register", func(r chi.Router) {
		r.Post("/", h.handleRegister)
	})
	r.Route("/token", func(r chi.Router) {
		r.Post("/", h.handleObtainToken)
		r.Route("/refresh", func(r chi.Router) {
			r.Post("/", h.handleRefreshToken)
		})
	})

	// Resource endpoints: bearer auth happens before any handler.
	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(tokens, auth))

		r.Route("/device", func(r chi.Router) {
			r.Get("/", h.handleListDevices)
			r.Post("/", h.handleCreateDevice)
			r.Route("/{deviceID}", func(r chi.Router) {
				r.Get("/", h.handleGetDevice)
				r.Patch("/", h.handlePatchDevice)
				r.Delete("/", h.handleDeleteDevice)
			})
		})

		r.Route("/gps-footprint", func(r chi.Router) {
			r.Get("/", h.handleListFootprints)
			r.Post("/", h.handleCreateFootprint)
			r.Route("/{footprintID}", func(r chi.Router) {
				r.Get("/", h.handleGetFootprint)
				r.Patch("/", h.handlePatchFootprint)
				r.Delete("/", h.handleDeleteFootprint)
			})
		})
	})

	return r
}
