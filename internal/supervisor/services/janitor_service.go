// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/recommend"
)

// CachePurger is the cache maintenance subset of *recommend.Engine.
type CachePurger interface {
	PurgeExpired() int
	CacheStats() recommend.CacheStats
}

// CacheJanitorService drops expired recommendation results on a ticker.
// Expired entries are never served; purging only bounds memory.
type CacheJanitorService struct {
	cache    CachePurger
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitorService creates the janitor. A non-positive interval
// means one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheJanitorService(cache CachePurger, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitorService{
		cache:    cache,
		interval: interval,
		logger:   logger.With().Str("service", "cache-janitor").Logger(),
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("cache janitor running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *CacheJanitorService) sweep() {
	purged := s.cache.PurgeExpired()
	size := s.cache.CacheStats().Size

	metrics.RecommendCachePurged.Add(float64(purged))
	metrics.RecommendCacheEntries.Set(float64(size))

	if purged > 0 {
		s.logger.Debug().Int("purged", purged).Int("remaining", size).Msg("expired recommendations purged")
	}
}

// String identifies the service in supervisor logs.
func (s *CacheJanitorService) String() string {
	return s.name
}

// GarbageCollector reclaims storage space. *store.BadgerStore satisfies it.
type GarbageCollector interface {
	RunGC() error
}

// StoreGCService runs value log garbage collection periodically.
type StoreGCService struct {
	store    GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewStoreGCService creates the GC service. A non-positive interval means
// ten minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStoreGCService(store GarbageCollector, interval time.Duration, logger zerolog.Logger) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "store-gc").Logger(),
		name:     "store-gc",
	}
}

// Serve implements suture.Service. GC errors are logged and do not restart
// the service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.RunGC(); err != nil {
				s.logger.Warn().Err(err).Msg("store GC failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("store GC complete")
		}
	}
}

// String identifies the service in supervisor logs.
func (s *StoreGCService) String() string {
	return s.name
}
