// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package config

import (
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/wayfarer/internal/artifact"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/recommend"
	"github.com/tomtom215/wayfarer/internal/recommend/algorithms"
	"github.com/tomtom215/wayfarer/internal/store"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig
//  2. Config File: optional YAML file (CONFIG_PATH, config.yaml, /etc/wayfarer/config.yaml)
//  3. Environment Variables: mapped names such as HTTP_PORT or RECOMMEND_CACHE_TTL
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("invalid configuration")
//	}
//	engine, err := recommend.NewEngine(cfg.EngineConfig(), catalog, ratings, logger)
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Store     StoreConfig     `koanf:"store"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// StoreConfig holds the BadgerDB catalog and ratings store settings
type StoreConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	SyncWrites bool          `koanf:"sync_writes"`
	GCInterval time.Duration `koanf:"gc_interval"` // 0 disables value log GC
	GCRatio    float64       `koanf:"gc_ratio"`
	SeedPath   string        `koanf:"seed_path"` // JSON catalog loaded when the store is empty
}

// ArtifactsConfig holds the paths of the offline-built scoring artifacts
type ArtifactsConfig struct {
	SimilarityMatrix string `koanf:"similarity_matrix"` // .npy, square float matrix
	SimilarityIndex  string `koanf:"similarity_index"`  // JSON row -> place id snapshot
	Model            string `koanf:"model"`             // JSON embedding model with encoders
}

// AlphaTierConfig is one engagement tier. MaxRatings 0 marks the open-ended last tier.
type AlphaTierConfig struct {
	MaxRatings int     `koanf:"max_ratings"`
	Alpha      float64 `koanf:"alpha"`
}

// BreakerConfig holds circuit breaker settings for model inference
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
}

// RecommendConfig holds recommendation engine settings
type RecommendConfig struct {
	MinForHybrid        int               `koanf:"min_for_hybrid"`
	AlphaTiers          []AlphaTierConfig `koanf:"alpha_tiers"`
	DefaultTopN         int               `koanf:"default_top_n"`
	MaxTopN             int               `koanf:"max_top_n"`
	DefaultPopularLimit int               `koanf:"default_popular_limit"`
	CacheEnabled        bool              `koanf:"cache_enabled"`
	CacheTTL            time.Duration     `koanf:"cache_ttl"`
	CacheMaxEntries     int               `koanf:"cache_max_entries"`
	CachePurgeInterval  time.Duration     `koanf:"cache_purge_interval"`
	ReadyTimeout        time.Duration     `koanf:"ready_timeout"`
	MinBatchRatings     int               `koanf:"min_batch_ratings"`
	Breaker             BreakerConfig     `koanf:"breaker"`
}

// SecurityConfig holds HTTP hardening settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`
}

// Load reads configuration from defaults, the config file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// LoggingOptions converts the logging section for logging.Init.
func (c *Config) LoggingOptions() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}

// StoreOptions converts the store section for store.Open.
func (c *Config) StoreOptions() store.Config {
	return store.Config{
		Path:       c.Store.Path,
		InMemory:   c.Store.InMemory,
		SyncWrites: c.Store.SyncWrites,
		GCRatio:    c.Store.GCRatio,
	}
}

// ArtifactPaths converts the artifacts section for artifact.NewLoader.
func (c *Config) ArtifactPaths() artifact.Paths {
	return artifact.Paths{
		SimilarityMatrix: c.Artifacts.SimilarityMatrix,
		SimilarityIndex:  c.Artifacts.SimilarityIndex,
		Model:            c.Artifacts.Model,
	}
}

// BreakerOptions converts the breaker settings for artifact.NewLoader.
func (c *Config) BreakerOptions() artifact.BreakerOptions {
	b := c.Recommend.Breaker
	return artifact.BreakerOptions{
		Enabled: b.Enabled,
		Settings: algorithms.BreakerSettings{
			MinRequests:  b.MinRequests,
			FailureRatio: b.FailureRatio,
			Interval:     b.Interval,
			Timeout:      b.Timeout,
		},
	}
}

// EngineConfig converts the recommend section into an engine configuration.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	tiers := make([]recommend.AlphaTier, len(r.AlphaTiers))
	for i, t := range r.AlphaTiers {
		maxRatings := t.MaxRatings
		if maxRatings == 0 {
			maxRatings = math.MaxInt
		}
		tiers[i] = recommend.AlphaTier{MaxRatings: maxRatings, Alpha: t.Alpha}
	}
	return &recommend.Config{
		MinForHybrid: r.MinForHybrid,
		AlphaTiers:   tiers,
		Limits: recommend.LimitsConfig{
			DefaultTopN:         r.DefaultTopN,
			MaxTopN:             r.MaxTopN,
			DefaultPopularLimit: r.DefaultPopularLimit,
		},
		Cache: recommend.CacheConfig{
			Enabled:    r.CacheEnabled,
			TTL:        r.CacheTTL,
			MaxEntries: r.CacheMaxEntries,
		},
		ReadyTimeout:    r.ReadyTimeout,
		MinBatchRatings: r.MinBatchRatings,
	}
}
