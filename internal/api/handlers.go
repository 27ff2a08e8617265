// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/recommend"
	"github.com/tomtom215/wayfarer/internal/validation"
)

// DefaultRequestTimeout bounds a single recommendation request.
const DefaultRequestTimeout = 10 * time.Second

// CatalogCounter reports the number of catalog items.
type CatalogCounter interface {
	CountItems(ctx context.Context) (int, error)
}

// Handler serves the recommendation API.
type Handler struct {
	engine         *recommend.Engine
	catalog        CatalogCounter
	logger         zerolog.Logger
	startTime      time.Time
	version        string
	requestTimeout time.Duration
}

// NewHandler creates the API handler.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(engine *recommend.Engine, catalog CatalogCounter, version string, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:         engine,
		catalog:        catalog,
		logger:         logger.With().Str("component", "api").Logger(),
		startTime:      time.Now(),
		version:        version,
		requestTimeout: DefaultRequestTimeout,
	}
}

// SetRequestTimeout overrides the per-request deadline.
func (h *Handler) SetRequestTimeout(d time.Duration) {
	if d > 0 {
		h.requestTimeout = d
	}
}

// requestContext attaches the handler logger and a deadline to r's context.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx := logging.ContextWithLogger(r.Context(), h.logger)
	return context.WithTimeout(ctx, h.requestTimeout)
}

// userRequest parses the user path parameter. It writes a 400 and returns
// false when the ID is invalid.
func (h *Handler) userRequest(w http.ResponseWriter, r *http.Request) (recommend.UserID, bool) {
	user, ok := userIDParam(r)
	if !ok {
		h.logger.Debug().
			Str("user_id", sanitizeLogValue(chi.URLParam(r, "userID"))).
			Msg("rejected invalid user id")
		respondError(w, http.StatusBadRequest, "INVALID_USER_ID", "userID must be a positive integer", nil)
		return 0, false
	}
	return user, true
}

// Health reports readiness. It answers 503 until artifacts are loaded so
// load balancers hold traffic back.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ready := h.engine.Ready()

	resp := models.HealthResponse{
		Status:        "loading",
		Ready:         ready,
		Version:       h.version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	if ready {
		resp.Status = "ready"
	}
	if h.catalog != nil {
		if n, err := h.catalog.CountItems(r.Context()); err == nil {
			resp.CatalogSize = n
		} else {
			h.logger.Warn().Err(err).Msg("health check could not count catalog")
		}
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
		w.Header().Set("Retry-After", retryAfterSeconds)
	}
	respondSuccess(w, r, status, resp, start)
}

// Popular returns the highest rated places.
//
// Query: limit (1-100, default recommend.default_popular_limit)
func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, ok := boundedIntParam(w, r, "limit", h.engine.Config().Limits.DefaultPopularLimit, "min=1,max=100")
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	items, err := h.engine.Popular(ctx, limit)
	if err != nil {
		respondEngineError(w, r.WithContext(ctx), err)
		return
	}
	if items == nil {
		items = []recommend.Recommendation{}
	}

	respondSuccess(w, r, http.StatusOK, models.PopularResponse{
		Strategy: recommend.StrategyPopularity,
		Items:    items,
		Count:    len(items),
	}, start)
}

type recommendFunc func(ctx context.Context, user recommend.UserID, topN int) (*recommend.Result, error)

// Recommendations returns the hybrid recommendations for a user.
//
// Query: top_n (>= 1, default recommend.default_top_n, capped at
// recommend.max_top_n)
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	h.serveRecommendations(w, r, h.engine.Recommend)
}

// ContentRecommendations returns content-similarity-only recommendations.
func (h *Handler) ContentRecommendations(w http.ResponseWriter, r *http.Request) {
	h.serveRecommendations(w, r, h.engine.ContentOnly)
}

// CollaborativeRecommendations returns collaborative-only recommendations.
func (h *Handler) CollaborativeRecommendations(w http.ResponseWriter, r *http.Request) {
	h.serveRecommendations(w, r, h.engine.CollaborativeOnly)
}

func (h *Handler) serveRecommendations(w http.ResponseWriter, r *http.Request, fn recommendFunc) {
	start := time.Now()
	user, ok := h.userRequest(w, r)
	if !ok {
		return
	}

	topN, ok := boundedIntParam(w, r, "top_n", h.engine.Config().Limits.DefaultTopN, "min=1")
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()
	ctx = logging.ContextWithUserID(ctx, int64(user))

	result, err := fn(ctx, user, topN)
	if err != nil {
		respondEngineError(w, r.WithContext(ctx), err)
		return
	}

	logging.Ctx(ctx).Debug().
		Str("strategy", string(result.Strategy)).
		Int("count", len(result.Items)).
		Bool("cache_hit", result.Meta.CacheHit).
		Msg("recommendations served")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   models.NewRecommendationsResponse(user, result),
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      result.Meta.CacheHit,
			RequestID:   logging.RequestIDFromContext(ctx),
		},
	})
}

// Eligibility reports how many more ratings the user needs for hybrid
// recommendations.
func (h *Handler) Eligibility(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	user, ok := h.userRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	elig, err := h.engine.Classify(ctx, user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to read user ratings", err)
		return
	}
	respondSuccess(w, r, http.StatusOK, elig, start)
}

// SubmitRatings stores a batch of ratings and invalidates the user's cache.
func (h *Handler) SubmitRatings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	user, ok := h.userRequest(w, r)
	if !ok {
		return
	}

	var req models.SubmitRatingsRequest
	if err := decodeJSONBody(r, &req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "VALIDATION_ERROR", "Request body too large", nil)
			return
		}
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()
	ctx = logging.ContextWithUserID(ctx, int64(user))

	elig, err := h.engine.SubmitRatings(ctx, user, req.Ratings)
	if err != nil {
		respondEngineError(w, r.WithContext(ctx), err)
		return
	}

	respondSuccess(w, r, http.StatusCreated, models.SubmitRatingsResponse{
		Stored:      len(req.Ratings),
		Eligibility: elig,
	}, start)
}

// InvalidateCache drops the user's cached recommendations.
func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	user, ok := h.userRequest(w, r)
	if !ok {
		return
	}

	h.engine.InvalidateUser(user)
	respondSuccess(w, r, http.StatusOK, models.InvalidateResponse{
		UserID:        int64(user),
		InvalidatedAt: time.Now(),
	}, start)
}

// CacheStats exposes result cache statistics and engine counters.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cfg := h.engine.Config()
	respondSuccess(w, r, http.StatusOK, models.CacheStatsResponse{
		Enabled: cfg.Cache.Enabled,
		TTL:     cfg.Cache.TTL.String(),
		Stats:   h.engine.CacheStats(),
		Engine:  h.engine.GetMetrics(),
	}, start)
}
