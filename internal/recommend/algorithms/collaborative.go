// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package algorithms

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/recommend"
)

// Model predicts preference scores for one encoded user against a batch of
// encoded items. The result has one score per entry of items, in order.
type Model interface {
	PredictBatch(ctx context.Context, user int, items []int) ([]float64, error)
	Version() string
}

// Encoding maps domain IDs to the dense indices a Model was trained with.
type Encoding struct {
	Users map[recommend.UserID]int
	Items map[recommend.ItemID]int
}

// Validate checks that both maps are injective and use non-negative indices.
func (e Encoding) Validate() error {
	seenUsers := make(map[int]recommend.UserID, len(e.Users))
	for id, idx := range e.Users {
		if idx < 0 {
			return fmt.Errorf("%w: user %d has negative index %d", recommend.ErrArtifactShapeMismatch, id, idx)
		}
		if other, dup := seenUsers[idx]; dup {
			return fmt.Errorf("%w: users %d and %d share index %d", recommend.ErrArtifactShapeMismatch, other, id, idx)
		}
		seenUsers[idx] = id
	}
	seenItems := make(map[int]recommend.ItemID, len(e.Items))
	for id, idx := range e.Items {
		if idx < 0 {
			return fmt.Errorf("%w: item %d has negative index %d", recommend.ErrArtifactShapeMismatch, id, idx)
		}
		if other, dup := seenItems[idx]; dup {
			return fmt.Errorf("%w: items %d and %d share index %d", recommend.ErrArtifactShapeMismatch, other, id, idx)
		}
		seenItems[idx] = id
	}
	return nil
}

// EncodeUser resolves a user index. Absent users are never mapped to 0.
func (e Encoding) EncodeUser(id recommend.UserID) (int, error) {
	idx, ok := e.Users[id]
	if !ok {
		return 0, fmt.Errorf("user %d: %w", id, recommend.ErrUnencodableUser)
	}
	return idx, nil
}

// EncodeItem resolves an item index.
func (e Encoding) EncodeItem(id recommend.ItemID) (int, error) {
	idx, ok := e.Items[id]
	if !ok {
		return 0, fmt.Errorf("item %d: %w", id, recommend.ErrUnencodableItem)
	}
	return idx, nil
}

// Collaborative scores every encodable catalog place for a user with one
// batch model call per request.
type Collaborative struct {
	base

	model   Model
	enc     Encoding
	catalog recommend.CatalogProvider
	logger  zerolog.Logger
}

// NewCollaborative creates a collaborative scorer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCollaborative(model Model, enc Encoding, catalog recommend.CatalogProvider, logger zerolog.Logger) (*Collaborative, error) {
	if model == nil {
		return nil, fmt.Errorf("collaborative model is required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog provider is required")
	}
	if err := enc.Validate(); err != nil {
		return nil, err
	}
	return &Collaborative{
		base:    newBase("collaborative", model.Version()),
		model:   model,
		enc:     enc,
		catalog: catalog,
		logger:  logger.With().Str("component", "collaborative").Logger(),
	}, nil
}

// Score implements recommend.CollaborativeScorer.
//
// The candidate set is the catalog minus exclude minus places absent from the
// item encoding; those are dropped rather than scored 0. The model is never
// called with an empty batch.
func (c *Collaborative) Score(ctx context.Context, userID recommend.UserID, exclude map[recommend.ItemID]struct{}) (recommend.ScoreMap, error) {
	userIdx, err := c.enc.EncodeUser(userID)
	if err != nil {
		return nil, err
	}

	items, err := c.catalog.AllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	ids := make([]recommend.ItemID, 0, len(items))
	indices := make([]int, 0, len(items))
	dropped := 0
	for _, it := range items {
		if _, skip := exclude[it.ID]; skip {
			continue
		}
		idx, err := c.enc.EncodeItem(it.ID)
		if err != nil {
			dropped++
			continue
		}
		ids = append(ids, it.ID)
		indices = append(indices, idx)
	}

	if dropped > 0 {
		c.logger.Debug().Int("dropped", dropped).Msg("skipped unencodable places")
	}
	if len(indices) == 0 {
		return nil, recommend.ErrEmptyCandidateSet
	}
	if contextCancelled(ctx) {
		return nil, ctx.Err()
	}

	metrics.RecommendInferenceBatchSize.Observe(float64(len(indices)))
	preds, err := c.model.PredictBatch(ctx, userIdx, indices)
	if err != nil {
		return nil, fmt.Errorf("model inference: %w", err)
	}
	if len(preds) != len(indices) {
		return nil, fmt.Errorf("model returned %d predictions for %d items", len(preds), len(indices))
	}

	scores := make(recommend.ScoreMap, len(ids))
	for i, id := range ids {
		scores[id] = preds[i]
	}
	return scores, nil
}
