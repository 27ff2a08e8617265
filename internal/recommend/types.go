// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"context"
	"time"
)

// ItemID is the canonical place identifier. Exclusion and lookups compare
// ItemIDs by value only.
type ItemID int64

// UserID is the canonical user identifier.
type UserID int64

// LikedThreshold is the minimum rating that counts as a "liked" item for
// content similarity.
const LikedThreshold = 3

// Location describes where a place is.
type Location struct {
	// Address is the free-text address shown to users.
	Address string `json:"address,omitempty"`

	// Latitude and Longitude are optional WGS84 coordinates.
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Item is a point of interest from the catalog.
type Item struct {
	// ID is the stable place identifier.
	ID ItemID `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Category is the place category (beach, museum, park, ...).
	Category string `json:"category,omitempty"`

	// Description is the free-text description used for content vectors.
	Description string `json:"description,omitempty"`

	// Location is the address and coordinates.
	Location Location `json:"location"`

	// AggregateRating is the current average rating (0-5).
	AggregateRating float64 `json:"aggregate_rating"`

	// ReviewCount is the number of reviews behind AggregateRating.
	ReviewCount int `json:"review_count"`

	// ImageURL and ThumbnailURL are opaque presentation hints.
	ImageURL     string `json:"image_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// Interaction is a single user rating of a place.
type Interaction struct {
	UserID    UserID    `json:"user_id"`
	ItemID    ItemID    `json:"item_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// Liked reports whether the rating counts as a positive content signal.
func (i Interaction) Liked() bool {
	return i.Rating >= LikedThreshold
}

// ScoreMap maps item IDs to raw, unbounded scores.
type ScoreMap map[ItemID]float64

// Strategy is the scoring strategy chosen for a request.
type Strategy string

const (
	// StrategyPopularity ranks by aggregate rating for cold-start users.
	StrategyPopularity Strategy = "popularity_fallback"

	// StrategyContentOnly uses content similarity alone.
	StrategyContentOnly Strategy = "content_only"

	// StrategyCollaborativeOnly uses the collaborative model alone.
	StrategyCollaborativeOnly Strategy = "collaborative_only"

	// StrategyHybrid blends content and collaborative scores.
	StrategyHybrid Strategy = "hybrid"
)

// Source records which signals contributed to a blended item.
type Source string

const (
	SourceBoth          Source = "both"
	SourceContent       Source = "content"
	SourceCollaborative Source = "collaborative"
	SourcePopularity    Source = "popularity"
)

// Recommendation is a ranked catalog item with its score breakdown.
type Recommendation struct {
	Item

	// BlendScore is the final ranking score.
	BlendScore float64 `json:"blend_score"`

	// ContentScore and CollabScore are the normalized signal values used in
	// the blend. A missing signal contributes 0.
	ContentScore float64 `json:"content_score"`
	CollabScore  float64 `json:"collab_score"`

	// Alpha is the collaborative weight applied to this item.
	Alpha float64 `json:"alpha"`

	// Strategy is the strategy that produced this item.
	Strategy Strategy `json:"strategy"`

	// Source lists the signals that scored this item.
	Source Source `json:"source"`
}

// ResultMeta carries request-level diagnostics.
type ResultMeta struct {
	RequestID       string    `json:"request_id"`
	Alpha           float64   `json:"alpha"`
	UserRatingCount int       `json:"user_rating_count"`
	ContentScored   int       `json:"content_scored"`
	CollabScored    int       `json:"collab_scored"`
	Degraded        bool      `json:"degraded"`
	DegradedReason  string    `json:"degraded_reason,omitempty"`
	CacheHit        bool      `json:"cache_hit"`
	LatencyMS       int64     `json:"latency_ms"`
	ModelVersion    string    `json:"model_version,omitempty"`
	ComputedAt      time.Time `json:"computed_at"`
}

// Result is the response of Engine.Recommend.
type Result struct {
	Items    []Recommendation `json:"items"`
	Strategy Strategy         `json:"strategy"`
	Meta     ResultMeta       `json:"meta"`
}

// clone returns a copy whose item slice is not shared with the receiver.
func (r *Result) clone() *Result {
	if r == nil {
		return nil
	}
	out := *r
	out.Items = make([]Recommendation, len(r.Items))
	copy(out.Items, r.Items)
	return &out
}

// Eligibility describes how far a user is from hybrid recommendations.
type Eligibility struct {
	UserID          UserID   `json:"user_id"`
	Strategy        Strategy `json:"strategy"`
	Alpha           float64  `json:"alpha,omitempty"`
	Eligible        bool     `json:"eligible"`
	RatingsCount    int      `json:"ratings_count"`
	MinimumRequired int      `json:"minimum_required"`
	RatingsNeeded   int      `json:"ratings_needed"`
}

// RatingInput is a single rating submitted by a user.
type RatingInput struct {
	ItemID ItemID `json:"item_id" validate:"required,gt=0"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
}

// CatalogProvider supplies catalog items.
type CatalogProvider interface {
	// AllItems returns every catalog item.
	AllItems(ctx context.Context) ([]Item, error)

	// Item returns a single item or ErrItemNotFound.
	Item(ctx context.Context, id ItemID) (Item, error)
}

// InteractionStore supplies and persists user ratings.
type InteractionStore interface {
	AllInteractions(ctx context.Context) ([]Interaction, error)
	UserInteractions(ctx context.Context, userID UserID) ([]Interaction, error)
	CountUserInteractions(ctx context.Context, userID UserID) (int, error)

	// UpsertInteraction stores the rating, replacing any earlier rating of the
	// same item by the same user.
	UpsertInteraction(ctx context.Context, in Interaction) error
}

// ContentScorer produces content-similarity scores.
type ContentScorer interface {
	// Score returns accumulated similarity for every candidate. ok is false
	// when liked is empty and no content signal exists.
	Score(liked, exclude map[ItemID]struct{}) (scores ScoreMap, ok bool)
}

// CollaborativeScorer produces model-predicted scores.
type CollaborativeScorer interface {
	// Score returns predictions for every encodable, non-excluded item.
	// Returns ErrUnencodableUser when the user is unknown to the model.
	Score(ctx context.Context, userID UserID, exclude map[ItemID]struct{}) (ScoreMap, error)

	// Version identifies the loaded model.
	Version() string
}

// Resources is the immutable set of artifacts the engine scores with.
type Resources struct {
	Content       ContentScorer
	Collaborative CollaborativeScorer
}
