// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package artifact

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfarer/internal/recommend"
	"github.com/tomtom215/wayfarer/internal/recommend/algorithms"
)

// ModelFile is the on-disk form of a collaborative embedding model.
// Encoder keys are decimal domain IDs, values are dense model indices.
type ModelFile struct {
	Version     string         `json:"version"`
	UserEncoder map[string]int `json:"user_encoder"`
	ItemEncoder map[string]int `json:"item_encoder"`
	UserFactors [][]float64    `json:"user_factors"`
	ItemFactors [][]float64    `json:"item_factors"`
	UserBias    []float64      `json:"user_bias,omitempty"`
	ItemBias    []float64      `json:"item_bias,omitempty"`
	GlobalBias  float64        `json:"global_bias"`
}

// ReadModel decodes and validates a model, returning the model and its
// encoding.
func ReadModel(r io.Reader) (*algorithms.EmbeddingModel, algorithms.Encoding, error) {
	var mf ModelFile
	if err := json.NewDecoder(r).Decode(&mf); err != nil {
		return nil, algorithms.Encoding{}, fmt.Errorf("decode model: %w", err)
	}

	model, err := algorithms.NewEmbeddingModel(algorithms.EmbeddingParams{
		Version:     mf.Version,
		UserFactors: mf.UserFactors,
		ItemFactors: mf.ItemFactors,
		UserBias:    mf.UserBias,
		ItemBias:    mf.ItemBias,
		GlobalBias:  mf.GlobalBias,
	})
	if err != nil {
		return nil, algorithms.Encoding{}, err
	}

	enc := algorithms.Encoding{
		Users: make(map[recommend.UserID]int, len(mf.UserEncoder)),
		Items: make(map[recommend.ItemID]int, len(mf.ItemEncoder)),
	}
	for key, idx := range mf.UserEncoder {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, algorithms.Encoding{}, fmt.Errorf("user encoder key %q: %w", key, err)
		}
		if idx >= model.Users() {
			return nil, algorithms.Encoding{}, fmt.Errorf("%w: user %d encoded to %d but model has %d users",
				recommend.ErrArtifactShapeMismatch, id, idx, model.Users())
		}
		enc.Users[recommend.UserID(id)] = idx
	}
	for key, idx := range mf.ItemEncoder {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, algorithms.Encoding{}, fmt.Errorf("item encoder key %q: %w", key, err)
		}
		if idx >= model.Items() {
			return nil, algorithms.Encoding{}, fmt.Errorf("%w: item %d encoded to %d but model has %d items",
				recommend.ErrArtifactShapeMismatch, id, idx, model.Items())
		}
		enc.Items[recommend.ItemID(id)] = idx
	}
	if err := enc.Validate(); err != nil {
		return nil, algorithms.Encoding{}, err
	}

	return model, enc, nil
}

// LoadModel reads a model file from path.
func LoadModel(path string) (*algorithms.EmbeddingModel, algorithms.Encoding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, algorithms.Encoding{}, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()
	return ReadModel(f)
}
