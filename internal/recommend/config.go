// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"fmt"
	"math"
	"time"
)

// AlphaTier assigns a collaborative weight to users with at most
// MaxRatings interactions.
type AlphaTier struct {
	// MaxRatings is the inclusive upper bound of the tier.
	// math.MaxInt marks the open-ended last tier.
	MaxRatings int `json:"max_ratings"`

	// Alpha is the weight of the collaborative signal (0-1).
	Alpha float64 `json:"alpha"`
}

// Config contains all configuration for the recommendation engine.
type Config struct {
	// MinForHybrid is the interaction count at which a user becomes
	// eligible for hybrid recommendations. Users with fewer (but at least
	// one) interactions get content-only results.
	// Default: 3.
	MinForHybrid int `json:"min_for_hybrid"`

	// AlphaTiers are evaluated in order; the first tier whose MaxRatings is
	// >= the user's count wins. Must be sorted by MaxRatings and
	// non-decreasing in Alpha.
	AlphaTiers []AlphaTier `json:"alpha_tiers"`

	// Limits contains request size limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`

	// ReadyTimeout is how long a request waits for artifacts before
	// failing with ErrNotReady.
	// Default: 10s.
	ReadyTimeout time.Duration `json:"ready_timeout"`

	// MinBatchRatings is the minimum number of ratings accepted in a single
	// submission.
	// Default: 1.
	MinBatchRatings int `json:"min_batch_ratings"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultTopN is used when a request does not specify topN.
	// Default: 10.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps topN per request.
	// Default: 100.
	MaxTopN int `json:"max_top_n"`

	// DefaultPopularLimit is the default size of the popular list.
	// Default: 12.
	DefaultPopularLimit int `json:"default_popular_limit"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled controls whether results are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is how long a cached result stays valid.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries bounds the cache size. When full, expired entries are
	// purged and then the oldest entry is evicted.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// DefaultAlphaTiers returns the standard engagement tiers.
func DefaultAlphaTiers() []AlphaTier {
	return []AlphaTier{
		{MaxRatings: 5, Alpha: 0.3},
		{MaxRatings: 10, Alpha: 0.5},
		{MaxRatings: 20, Alpha: 0.7},
		{MaxRatings: math.MaxInt, Alpha: 0.8},
	}
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		MinForHybrid: 3,
		AlphaTiers:   DefaultAlphaTiers(),
		Limits: LimitsConfig{
			DefaultTopN:         10,
			MaxTopN:             100,
			DefaultPopularLimit: 12,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
		ReadyTimeout:    10 * time.Second,
		MinBatchRatings: 1,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.MinForHybrid < 1 {
		return fmt.Errorf("min_for_hybrid must be at least 1, got %d", c.MinForHybrid)
	}
	if err := validateTiers(c.AlphaTiers); err != nil {
		return err
	}
	if c.Limits.DefaultTopN <= 0 {
		return fmt.Errorf("limits.default_top_n must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("limits.max_top_n (%d) must be >= default_top_n (%d)",
			c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}
	if c.Limits.DefaultPopularLimit <= 0 {
		return fmt.Errorf("limits.default_popular_limit must be positive, got %d", c.Limits.DefaultPopularLimit)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when caching is enabled, got %v", c.Cache.TTL)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must be non-negative, got %d", c.Cache.MaxEntries)
	}
	if c.ReadyTimeout <= 0 {
		return fmt.Errorf("ready_timeout must be positive, got %v", c.ReadyTimeout)
	}
	if c.MinBatchRatings < 1 {
		return fmt.Errorf("min_batch_ratings must be at least 1, got %d", c.MinBatchRatings)
	}
	return nil
}

func validateTiers(tiers []AlphaTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("alpha_tiers must not be empty")
	}
	for i, t := range tiers {
		if t.Alpha < 0 || t.Alpha > 1 {
			return fmt.Errorf("alpha_tiers[%d].alpha must be in [0,1], got %f", i, t.Alpha)
		}
		if t.MaxRatings < 1 {
			return fmt.Errorf("alpha_tiers[%d].max_ratings must be positive, got %d", i, t.MaxRatings)
		}
		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		if t.MaxRatings <= prev.MaxRatings {
			return fmt.Errorf("alpha_tiers must be sorted by max_ratings: tier %d (%d) <= tier %d (%d)",
				i, t.MaxRatings, i-1, prev.MaxRatings)
		}
		if t.Alpha < prev.Alpha {
			return fmt.Errorf("alpha_tiers must be non-decreasing: tier %d alpha %f < tier %d alpha %f",
				i, t.Alpha, i-1, prev.Alpha)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.AlphaTiers = make([]AlphaTier, len(c.AlphaTiers))
	copy(out.AlphaTiers, c.AlphaTiers)
	return &out
}

// clampTopN applies the default and maximum to a requested topN.
func (c *Config) clampTopN(n int) int {
	if n <= 0 {
		return c.Limits.DefaultTopN
	}
	if n > c.Limits.MaxTopN {
		return c.Limits.MaxTopN
	}
	return n
}
