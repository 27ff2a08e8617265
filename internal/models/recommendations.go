// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package models

import (
	"time"

	"github.com/tomtom215/wayfarer/internal/recommend"
)

// HealthResponse reports process and artifact readiness.
type HealthResponse struct {
	Status        string  `json:"status"` // "ready" or "loading"
	Ready         bool    `json:"ready"`
	Version       string  `json:"version,omitempty"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	CatalogSize   int     `json:"catalog_size"`
}

// RecommendationsResponse is the payload of the recommendation endpoints.
type RecommendationsResponse struct {
	UserID   int64                      `json:"user_id"`
	Strategy recommend.Strategy         `json:"strategy"`
	Items    []recommend.Recommendation `json:"items"`
	Count    int                        `json:"count"`
	Meta     recommend.ResultMeta       `json:"meta"`
}

// NewRecommendationsResponse builds the payload from an engine result.
func NewRecommendationsResponse(user recommend.UserID, r *recommend.Result) RecommendationsResponse {
	items := r.Items
	if items == nil {
		items = []recommend.Recommendation{}
	}
	return RecommendationsResponse{
		UserID:   int64(user),
		Strategy: r.Strategy,
		Items:    items,
		Count:    len(items),
		Meta:     r.Meta,
	}
}

// PopularResponse is the payload of the popular places endpoint.
type PopularResponse struct {
	Strategy recommend.Strategy         `json:"strategy"`
	Items    []recommend.Recommendation `json:"items"`
	Count    int                        `json:"count"`
}

// SubmitRatingsRequest is the body of a rating submission.
//
//	{"ratings": [{"item_id": 12, "rating": 4}, {"item_id": 40, "rating": 5}]}
type SubmitRatingsRequest struct {
	Ratings []recommend.RatingInput `json:"ratings" validate:"required,min=1,max=100,dive"`
}

// SubmitRatingsResponse reports what was stored and the user's new eligibility.
type SubmitRatingsResponse struct {
	Stored      int                   `json:"stored"`
	Eligibility recommend.Eligibility `json:"eligibility"`
}

// CacheStatsResponse exposes result cache statistics.
type CacheStatsResponse struct {
	Enabled bool                    `json:"enabled"`
	TTL     string                  `json:"ttl"`
	Stats   recommend.CacheStats    `json:"stats"`
	Engine  recommend.EngineMetrics `json:"engine"`
}

// InvalidateResponse confirms a cache invalidation.
type InvalidateResponse struct {
	UserID        int64     `json:"user_id"`
	InvalidatedAt time.Time `json:"invalidated_at"`
}
