// Package api exposes the vector record pipeline over a REST API:
// encode, decode, and hash operations plus access to the run journal.
//
// All routes under /api/v1 require an X-API-Key header. The /metrics
// endpoint is left unprotected for Prometheus scraping.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the HTTP handler with all routes configured
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.metrics.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		// Health check
		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		// Pipeline operations
		r.Post("/encode", s.metrics.InstrumentHandler("POST", "/api/v1/encode", s.handleEncode))
		r.Post("/decode", s.metrics.InstrumentHandler("POST", "/api/v1/decode", s.handleDecode))
		r.Post("/hash", s.metrics.InstrumentHandler("POST", "/api/v1/hash", s.handleHash))

		// Run journal
		r.Get("/runs", s.metrics.InstrumentHandler("GET", "/api/v1/runs", s.handleListRuns))
		r.Get("/runs/{id}", s.metrics.InstrumentHandler("GET", "/api/v1/runs/{id}", s.handleGetRun))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(server *Server) error {
	// Start background metrics updater
	go server.startMetricsUpdater()

	addr := fmt.Sprintf("%s:%d", server.config.Bind, server.config.Port)
	server.logger.Info().
		Str("addr", addr).
		Str("metrics", fmt.Sprintf("http://%s/metrics", addr)).
		Msg("starting REST API server")

	return http.ListenAndServe(addr, server.Router())
}
