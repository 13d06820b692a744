// ImmichFrame - Random Photo Frame Powered by Immich
// Copyright 2026 XanderStrike
// SPDX-License-Identifier: GPL-3.0-or-later
// https://github.com/XanderStrike/ImmichFrame

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions tunes the HTTP middleware stack.
type RouterOptions struct {
	// CORSOrigins lists allowed origins. Empty allows any.
	CORSOrigins []string

	// RateLimitRequests caps requests per client IP per window.
	// Zero disables rate limiting.
	RateLimitRequests int

	// RateLimitWindow is the rate limit window. Zero means one minute.
	RateLimitWindow time.Duration
}

// NewRouter wires the frame API routes with the global middleware
// stack: request IDs, real IP extraction, panic recovery, CORS, and
// per-IP rate limiting.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health endpoints stay outside the rate limit so orchestrator
	// probes are never rejected.
	r.Get("/health/live", h.HealthLive)
	r.Get("/health/ready", h.HealthReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if opts.RateLimitRequests > 0 {
			window := opts.RateLimitWindow
			if window <= 0 {
				window = time.Minute
			}
			r.Use(httprate.LimitByIP(opts.RateLimitRequests, window))
		}
		r.Use(PrometheusMetrics())

		r.Get("/assets", h.Assets)
		r.Get("/assets/count", h.AssetCount)
		r.Post("/cache/clear", h.ClearCache)
	})

	return r
}
