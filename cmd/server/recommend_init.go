// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/artifact"
	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/recommend"
	"github.com/tomtom215/wayfarer/internal/store"
	"github.com/tomtom215/wayfarer/internal/supervisor"
	"github.com/tomtom215/wayfarer/internal/supervisor/services"
)

// seedCatalog loads the optional catalog seed into an empty store.
func seedCatalog(ctx context.Context, cfg *config.Config, st *store.BadgerStore, logger zerolog.Logger) error {
	if cfg.Store.SeedPath == "" {
		return nil
	}
	n, err := st.SeedFile(ctx, cfg.Store.SeedPath)
	if err != nil {
		return fmt.Errorf("seed catalog from %s: %w", cfg.Store.SeedPath, err)
	}
	if n > 0 {
		logger.Info().Int("places", n).Str("path", cfg.Store.SeedPath).Msg("catalog seeded")
	}
	return nil
}

// initRecommend creates the engine and registers its background services:
// the one-shot artifact loader and the cache janitor on the engine layer,
// store GC on the data layer. Requests issued before the loader finishes
// wait up to recommend.ready_timeout and then get 503.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, st *store.BadgerStore, logger zerolog.Logger, tree *supervisor.SupervisorTree) (*recommend.Engine, error) {
	engineCfg := cfg.EngineConfig()
	engine, err := recommend.NewEngine(engineCfg, st, st, logger.With().Str("component", "engine").Logger())
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	engine.SetObserver(metrics.RecommendObserver{})
	metrics.ResourcesReady.Set(0)

	logger.Info().
		Int("min_for_hybrid", engineCfg.MinForHybrid).
		Int("alpha_tiers", len(engineCfg.AlphaTiers)).
		Bool("cache_enabled", engineCfg.Cache.Enabled).
		Dur("cache_ttl", engineCfg.Cache.TTL).
		Msg("recommendation engine created")

	loader := artifact.NewLoader(cfg.ArtifactPaths(), cfg.BreakerOptions(), st, logger)
	tree.AddEngineService(services.NewArtifactService(loader, engine, logger))

	if engineCfg.Cache.Enabled {
		tree.AddEngineService(services.NewCacheJanitorService(engine, cfg.Recommend.CachePurgeInterval, logger))
	}
	if !cfg.Store.InMemory && cfg.Store.GCInterval > 0 {
		tree.AddDataService(services.NewStoreGCService(st, cfg.Store.GCInterval, logger))
	}

	return engine, nil
}
