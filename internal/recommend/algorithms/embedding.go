// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package algorithms

import (
	"context"
	"fmt"

	"github.com/tomtom215/wayfarer/internal/recommend"
)

// EmbeddingParams are the learned weights of an embedding model.
type EmbeddingParams struct {
	Version     string
	UserFactors [][]float64
	ItemFactors [][]float64

	// Biases are optional; nil means zero.
	UserBias   []float64
	ItemBias   []float64
	GlobalBias float64
}

// EmbeddingModel predicts
//
//	score(u, i) = dot(U[u], V[i]) + b_u + b_i + b
//
// from factors trained offline.
type EmbeddingModel struct {
	version string
	dim     int
	users   [][]float64
	items   [][]float64
	userB   []float64
	itemB   []float64
	global  float64
}

// NewEmbeddingModel validates the parameters and builds a model.
func NewEmbeddingModel(p EmbeddingParams) (*EmbeddingModel, error) {
	if len(p.UserFactors) == 0 || len(p.ItemFactors) == 0 {
		return nil, fmt.Errorf("%w: model has no user or item factors", recommend.ErrArtifactShapeMismatch)
	}
	dim := len(p.UserFactors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: zero factor dimension", recommend.ErrArtifactShapeMismatch)
	}
	for i, row := range p.UserFactors {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: user factor %d has %d dims, want %d",
				recommend.ErrArtifactShapeMismatch, i, len(row), dim)
		}
	}
	for i, row := range p.ItemFactors {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: item factor %d has %d dims, want %d",
				recommend.ErrArtifactShapeMismatch, i, len(row), dim)
		}
	}
	if p.UserBias != nil && len(p.UserBias) != len(p.UserFactors) {
		return nil, fmt.Errorf("%w: %d user biases for %d users",
			recommend.ErrArtifactShapeMismatch, len(p.UserBias), len(p.UserFactors))
	}
	if p.ItemBias != nil && len(p.ItemBias) != len(p.ItemFactors) {
		return nil, fmt.Errorf("%w: %d item biases for %d items",
			recommend.ErrArtifactShapeMismatch, len(p.ItemBias), len(p.ItemFactors))
	}

	return &EmbeddingModel{
		version: p.Version,
		dim:     dim,
		users:   p.UserFactors,
		items:   p.ItemFactors,
		userB:   p.UserBias,
		itemB:   p.ItemBias,
		global:  p.GlobalBias,
	}, nil
}

// Users returns the number of encoded users.
func (m *EmbeddingModel) Users() int { return len(m.users) }

// Items returns the number of encoded items.
func (m *EmbeddingModel) Items() int { return len(m.items) }

// Version implements Model.
func (m *EmbeddingModel) Version() string { return m.version }

// PredictBatch implements Model.
func (m *EmbeddingModel) PredictBatch(ctx context.Context, user int, items []int) ([]float64, error) {
	if user < 0 || user >= len(m.users) {
		return nil, fmt.Errorf("user index %d out of range [0,%d)", user, len(m.users))
	}
	u := m.users[user]
	ub := 0.0
	if m.userB != nil {
		ub = m.userB[user]
	}

	out := make([]float64, len(items))
	for n, idx := range items {
		if n%1024 == 0 && contextCancelled(ctx) {
			return nil, ctx.Err()
		}
		if idx < 0 || idx >= len(m.items) {
			return nil, fmt.Errorf("item index %d out of range [0,%d)", idx, len(m.items))
		}
		v := m.items[idx]
		s := m.global + ub
		if m.itemB != nil {
			s += m.itemB[idx]
		}
		for k := 0; k < m.dim; k++ {
			s += u[k] * v[k]
		}
		out[n] = s
	}
	return out, nil
}
