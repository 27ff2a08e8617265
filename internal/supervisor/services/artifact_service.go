// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/recommend"
)

// ArtifactLoader reads the offline artifacts into engine resources.
type ArtifactLoader interface {
	Load(ctx context.Context) (*recommend.Resources, error)
}

// ResourceSink receives loaded resources. *recommend.Engine satisfies it.
type ResourceSink interface {
	SetResources(r recommend.Resources) error
}

// ArtifactService loads artifacts once and hands them to the engine.
//
// Outcomes:
//   - success: resources published, returns suture.ErrDoNotRestart
//   - shape mismatch: returns suture.ErrTerminateSupervisorTree, the
//     process must not serve with artifacts that disagree with the catalog
//   - anything else (missing file, I/O error): returned, suture restarts
//     the service with backoff
type ArtifactService struct {
	loader ArtifactLoader
	sink   ResourceSink
	logger zerolog.Logger
	name   string
}

// NewArtifactService creates the loader service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewArtifactService(loader ArtifactLoader, sink ResourceSink, logger zerolog.Logger) *ArtifactService {
	return &ArtifactService{
		loader: loader,
		sink:   sink,
		logger: logger.With().Str("service", "artifact-loader").Logger(),
		name:   "artifact-loader",
	}
}

// Serve implements suture.Service.
func (s *ArtifactService) Serve(ctx context.Context) error {
	start := time.Now()
	s.logger.Info().Msg("loading recommendation artifacts")

	res, err := s.loader.Load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, recommend.ErrArtifactShapeMismatch) {
			s.logger.Error().Err(err).Msg("artifacts do not match the catalog, stopping")
			return suture.ErrTerminateSupervisorTree
		}
		s.logger.Warn().Err(err).Msg("artifact load failed, will retry")
		return fmt.Errorf("load artifacts: %w", err)
	}

	if err := s.sink.SetResources(*res); err != nil {
		// Resources can only be published once; a second load is a no-op.
		s.logger.Warn().Err(err).Msg("resources not published")
		return suture.ErrDoNotRestart
	}

	metrics.ResourcesReady.Set(1)
	s.logger.Info().
		Dur("duration", time.Since(start)).
		Msg("recommendation artifacts loaded")
	return suture.ErrDoNotRestart
}

// String identifies the service in supervisor logs.
func (s *ArtifactService) String() string {
	return s.name
}
