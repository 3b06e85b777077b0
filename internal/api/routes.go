// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"net/http"

	"github.com/ManuGH/capctl/internal/control/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	PathDeeplinks = "/api/v1/deeplinks"
	PathActions   = "/api/v1/actions"
	PathSession   = "/api/v1/session"
)

func (s *Server) routes() http.Handler {
	r := middleware.NewRouter(middleware.StackConfig{
		EnableMetrics:  true,
		TracingService: s.cfg.TracingService,
		EnableLogging:  true,
	})

	r.Get("/healthz", s.health.ServeHealth)
	r.Get("/readyz", s.health.ServeReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/actions", s.handleActions)
		r.Get("/session", s.handleSession)
		r.Group(func(r chi.Router) {
			if s.cfg.RateLimit.RequestLimit > 0 {
				r.Use(middleware.RateLimit(s.cfg.RateLimit))
			}
			r.Post("/deeplinks", s.handleDeeplink)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusNotFound, "api/not_found", "Not Found", "NOT_FOUND", "no route for "+r.URL.Path, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusMethodNotAllowed, "api/method_not_allowed", "Method Not Allowed", "METHOD_NOT_ALLOWED", "", nil)
	})

	return r
}
