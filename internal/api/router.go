// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the chi router.
//
// Middleware order:
//  1. RequestIDWithLogging - request ID for log correlation
//  2. RealIP - client IP for rate limiting
//  3. Recoverer - panic recovery
//  4. CORS
//  5. gzip compression of JSON bodies
//  6. per-group rate limit, security headers and Prometheus metrics
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}

	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics)

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimitCustom(RateLimitHealth))
			r.Get("/health", h.Health)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())

			r.Get("/places/popular", h.Popular)
			r.Get("/recommendations/cache/stats", h.CacheStats)

			r.Route("/users/{userID}", func(r chi.Router) {
				r.Get("/recommendations", h.Recommendations)
				r.Get("/recommendations/content", h.ContentRecommendations)
				r.Get("/recommendations/collaborative", h.CollaborativeRecommendations)
				r.Get("/eligibility", h.Eligibility)

				r.Group(func(r chi.Router) {
					r.Use(mw.RateLimitCustom(RateLimitWrite))
					r.Use(mw.MaxBodySize())
					r.Post("/ratings", h.SubmitRatings)
					r.Delete("/recommendations/cache", h.InvalidateCache)
				})
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
