// Package httpapi exposes the gateway over HTTP. It is a thin
// translation layer: the auth stack upstream resolves the session and
// forwards the caller identity in headers; handlers here decode
// requests, call the gateway service, and map its error taxonomy onto
// status codes.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/roamly/objectgw/pkg/gateway"
	"github.com/roamly/objectgw/pkg/health"
)

// Handler serves the gateway API.
type Handler struct {
	svc *gateway.Service
	log *slog.Logger
}

// New builds the router. The checks back the readiness probe; pass nil
// to serve liveness only.
func New(svc *gateway.Service, log *slog.Logger, checks health.Checks) http.Handler {
	h := &Handler{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(checks, health.WithLogger(log)))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/uploads", h.issueUploadGrant)
		r.Post("/objects", h.upload)
		r.Put("/objects/acl", h.assignPolicy)
		r.Get("/objects/*", h.download)
		r.Delete("/objects/*", h.remove)
		r.Get("/public/*", h.publicURL)
	})

	return r
}
