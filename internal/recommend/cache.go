// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces a fresh result on a cache miss.
type ComputeFunc func(ctx context.Context) (*Result, error)

type cacheKey struct {
	user UserID
	topN int
}

func (k cacheKey) String() string {
	return fmt.Sprintf("hybrid_%d_%d", k.user, k.topN)
}

type cacheEntry struct {
	result     *Result
	computedAt time.Time
	expiresAt  time.Time
}

// CacheStats is a point-in-time view of the cache.
type CacheStats struct {
	Size          int        `json:"size"`
	Keys          []string   `json:"keys"`
	OldestEntry   *time.Time `json:"oldest_entry,omitempty"`
	NewestEntry   *time.Time `json:"newest_entry,omitempty"`
	Hits          int64      `json:"hits"`
	Misses        int64      `json:"misses"`
	Invalidations int64      `json:"invalidations"`
	StaleDrops    int64      `json:"stale_drops"`
}

// Cache memoizes results per (user, topN) with a TTL.
//
// Concurrent misses on the same key share one computation. Every
// invalidation bumps the user's generation; a computation started under an
// older generation is returned to its callers but never stored, and requests
// issued after the invalidation never join it. A user's generation is kept
// only while computations for that user are running.
type Cache struct {
	ttl        time.Duration
	maxEntries int
	logger     zerolog.Logger
	now        func() time.Time

	mu          sync.Mutex
	entries     map[cacheKey]cacheEntry
	generations map[UserID]uint64
	inflight    map[UserID]int

	group singleflight.Group

	hits          atomic.Int64
	misses        atomic.Int64
	invalidations atomic.Int64
	staleDrops    atomic.Int64
}

// NewCache creates a cache. maxEntries <= 0 means unbounded.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCache(ttl time.Duration, maxEntries int, logger zerolog.Logger) *Cache {
	return &Cache{
		ttl:         ttl,
		maxEntries:  maxEntries,
		logger:      logger.With().Str("component", "recommend_cache").Logger(),
		now:         time.Now,
		entries:     make(map[cacheKey]cacheEntry),
		generations: make(map[UserID]uint64),
		inflight:    make(map[UserID]int),
	}
}

// GetOrCompute returns the cached result for (user, topN) or computes and
// stores a new one. hit reports whether the value came from the cache.
// The returned result is a private copy.
func (c *Cache) GetOrCompute(ctx context.Context, user UserID, topN int, fn ComputeFunc) (res *Result, hit bool, err error) {
	key := cacheKey{user: user, topN: topN}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Before(e.expiresAt) {
		c.mu.Unlock()
		c.hits.Add(1)
		return e.result.clone(), true, nil
	}
	gen := c.generations[user]
	c.mu.Unlock()

	c.misses.Add(1)

	flightKey := fmt.Sprintf("%s@%d", key, gen)
	// The computation is detached from the caller's cancellation so that one
	// caller timing out does not fail the others sharing the flight.
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(flightKey, func() (interface{}, error) {
		c.begin(user)
		r, err := fn(detached)
		// Later callers start a new flight rather than join a finished one.
		c.group.Forget(flightKey)
		if err != nil {
			c.finish(user)
			return nil, err
		}
		if err := c.store(key, gen, r); err != nil {
			c.logger.Debug().
				Int64("user_id", int64(user)).
				Int("top_n", topN).
				Err(err).
				Msg("dropped stale cache store")
		}
		return r, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case out := <-ch:
		if out.Err != nil {
			return nil, false, out.Err
		}
		r, _ := out.Val.(*Result)
		return r.clone(), false, nil
	}
}

func (c *Cache) begin(user UserID) {
	c.mu.Lock()
	c.inflight[user]++
	c.mu.Unlock()
}

func (c *Cache) finish(user UserID) {
	c.mu.Lock()
	c.finishLocked(user)
	c.mu.Unlock()
}

// finishLocked ends one computation for user and forgets the user's
// generation once none remain. Must be called with mu held.
func (c *Cache) finishLocked(user UserID) {
	if c.inflight[user] > 1 {
		c.inflight[user]--
		return
	}
	delete(c.inflight, user)
	delete(c.generations, user)
}

// store saves r unless the user's generation moved since gen was read, and
// ends the computation.
func (c *Cache) store(key cacheKey, gen uint64, r *Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.finishLocked(key.user)

	if c.generations[key.user] != gen {
		c.staleDrops.Add(1)
		return ErrCacheInconsistency
	}

	now := c.now()
	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		if _, exists := c.entries[key]; !exists {
			c.evictLocked(now)
		}
	}
	c.entries[key] = cacheEntry{
		result:     r.clone(),
		computedAt: now,
		expiresAt:  now.Add(c.ttl),
	}
	return nil
}

// evictLocked makes room for one entry: expired entries first, then the
// oldest. Must be called with mu held.
func (c *Cache) evictLocked(now time.Time) {
	c.purgeLocked(now)
	if len(c.entries) < c.maxEntries {
		return
	}
	var oldestKey cacheKey
	var oldest time.Time
	first := true
	for k, e := range c.entries {
		if first || e.computedAt.Before(oldest) {
			oldestKey, oldest = k, e.computedAt
			first = false
		}
	}
	delete(c.entries, oldestKey)
}

func (c *Cache) purgeLocked(now time.Time) int {
	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Invalidate removes every entry of user regardless of topN and prevents
// in-flight computations for the user from being stored. Returns the number
// of entries removed.
func (c *Cache) Invalidate(user UserID) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	// With nothing running there is no older computation to fence off.
	if c.inflight[user] > 0 {
		c.generations[user]++
	}
	removed := 0
	for k := range c.entries {
		if k.user == user {
			delete(c.entries, k)
			removed++
		}
	}
	c.invalidations.Add(1)
	return removed
}

// PurgeExpired drops expired entries and returns how many were removed.
func (c *Cache) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.purgeLocked(c.now())
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for user := range c.inflight {
		c.generations[user]++
	}
	c.entries = make(map[cacheKey]cacheEntry)
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := CacheStats{
		Size:          len(c.entries),
		Keys:          make([]string, 0, len(c.entries)),
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Invalidations: c.invalidations.Load(),
		StaleDrops:    c.staleDrops.Load(),
	}
	for k, e := range c.entries {
		stats.Keys = append(stats.Keys, k.String())
		at := e.computedAt
		if stats.OldestEntry == nil || at.Before(*stats.OldestEntry) {
			stats.OldestEntry = &at
		}
		if stats.NewestEntry == nil || at.After(*stats.NewestEntry) {
			newest := at
			stats.NewestEntry = &newest
		}
	}
	sort.Strings(stats.Keys)
	return stats
}
