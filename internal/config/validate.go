// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/wayfarer/internal/logging"
)

// Validate checks that the configuration is complete and consistent
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateArtifacts(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateSecurity()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server read and write timeouts must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

func (c *Config) validateStore() error {
	opts := c.StoreOptions()
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if c.Store.GCInterval < 0 {
		return fmt.Errorf("STORE_GC_INTERVAL must not be negative, got %v", c.Store.GCInterval)
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	if c.Artifacts.SimilarityMatrix == "" {
		return fmt.Errorf("ARTIFACT_SIMILARITY_PATH is required")
	}
	if c.Artifacts.SimilarityIndex == "" {
		return fmt.Errorf("ARTIFACT_SIMILARITY_INDEX_PATH is required")
	}
	if c.Artifacts.Model == "" {
		return fmt.Errorf("ARTIFACT_MODEL_PATH is required")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	tiers := c.Recommend.AlphaTiers
	for i, t := range tiers {
		if t.MaxRatings == 0 && i != len(tiers)-1 {
			return fmt.Errorf("recommend.alpha_tiers[%d]: only the last tier may be open-ended", i)
		}
	}
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	if c.Recommend.CacheEnabled && c.Recommend.CachePurgeInterval <= 0 {
		return fmt.Errorf("RECOMMEND_CACHE_PURGE_INTERVAL must be positive when caching is enabled")
	}
	b := c.Recommend.Breaker
	if b.Enabled && (b.FailureRatio <= 0 || b.FailureRatio > 1) {
		return fmt.Errorf("RECOMMEND_BREAKER_FAILURE_RATIO must be in (0,1], got %v", b.FailureRatio)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.Security.MaxBodyBytes)
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}
