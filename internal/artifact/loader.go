// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package artifact

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/recommend"
	"github.com/tomtom215/wayfarer/internal/recommend/algorithms"
)

// Paths locates the offline artifacts.
type Paths struct {
	SimilarityMatrix string
	SimilarityIndex  string
	Model            string
}

// Loader builds recommend.Resources from the artifacts on disk.
type Loader struct {
	paths   Paths
	breaker BreakerOptions
	catalog recommend.CatalogProvider
	logger  zerolog.Logger
}

// BreakerOptions controls whether model inference runs behind a circuit
// breaker.
type BreakerOptions struct {
	Enabled  bool
	Settings algorithms.BreakerSettings
}

// NewLoader creates a loader. The catalog bounds the collaborative
// candidate set.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLoader(paths Paths, breaker BreakerOptions, catalog recommend.CatalogProvider, logger zerolog.Logger) *Loader {
	return &Loader{
		paths:   paths,
		breaker: breaker,
		catalog: catalog,
		logger:  logger.With().Str("component", "artifact_loader").Logger(),
	}
}

// Load reads the similarity matrix and the model concurrently. Any error,
// including recommend.ErrArtifactShapeMismatch, is returned as is and no
// partial resources are produced.
func (l *Loader) Load(ctx context.Context) (*recommend.Resources, error) {
	var (
		content *algorithms.ContentSimilarity
		model   *algorithms.EmbeddingModel
		enc     algorithms.Encoding
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Now()
		c, err := LoadSimilarity(l.paths.SimilarityMatrix, l.paths.SimilarityIndex)
		metrics.RecordArtifactLoad("similarity", time.Since(start), err)
		if err != nil {
			return fmt.Errorf("similarity artifact: %w", err)
		}
		content = c
		l.logger.Info().
			Int("places", c.Size()).
			Str("version", c.Version()).
			Dur("duration", time.Since(start)).
			Msg("Loaded similarity matrix")
		return gctx.Err()
	})

	g.Go(func() error {
		start := time.Now()
		m, e, err := LoadModel(l.paths.Model)
		metrics.RecordArtifactLoad("model", time.Since(start), err)
		if err != nil {
			return fmt.Errorf("model artifact: %w", err)
		}
		model, enc = m, e
		l.logger.Info().
			Int("users", m.Users()).
			Int("items", m.Items()).
			Str("version", m.Version()).
			Dur("duration", time.Since(start)).
			Msg("Loaded collaborative model")
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var inference algorithms.Model = model
	if l.breaker.Enabled {
		inference = algorithms.NewBreakerModel(model, l.breaker.Settings, l.logger)
	}

	collab, err := algorithms.NewCollaborative(inference, enc, l.catalog, l.logger)
	if err != nil {
		return nil, err
	}

	l.reportCoverage(ctx, content, enc)

	return &recommend.Resources{Content: content, Collaborative: collab}, nil
}

// reportCoverage logs how much of the live catalog each artifact knows.
func (l *Loader) reportCoverage(ctx context.Context, content *algorithms.ContentSimilarity, enc algorithms.Encoding) {
	items, err := l.catalog.AllItems(ctx)
	if err != nil {
		l.logger.Warn().Err(err).Msg("Could not read catalog for coverage report")
		return
	}
	var noRow, noCode int
	for _, it := range items {
		if _, ok := content.Similarity(it.ID, it.ID); !ok {
			noRow++
		}
		if _, err := enc.EncodeItem(it.ID); err != nil {
			noCode++
		}
	}
	if noRow > 0 || noCode > 0 {
		l.logger.Warn().
			Int("catalog", len(items)).
			Int("missing_similarity", noRow).
			Int("missing_encoding", noCode).
			Msg("Catalog places not covered by artifacts")
	}
}
