// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on other internal packages. Storage,
// artifacts and metrics plug in through the interfaces in types.go and the
// Observer below.

// Observer receives engine events, typically for metrics.
type Observer interface {
	RequestCompleted(strategy Strategy, cacheHit bool, latency time.Duration)
	RequestFailed(reason string)
	Degraded(from, to Strategy, reason string)
	CacheInvalidated(removed int)
}

type nopObserver struct{}

func (nopObserver) RequestCompleted(Strategy, bool, time.Duration) {}
func (nopObserver) RequestFailed(string)                           {}
func (nopObserver) Degraded(Strategy, Strategy, string)            {}
func (nopObserver) CacheInvalidated(int)                           {}

// EngineMetrics is a snapshot of engine counters.
type EngineMetrics struct {
	Requests      int64 `json:"requests"`
	Errors        int64 `json:"errors"`
	Degradations  int64 `json:"degradations"`
	RatingsStored int64 `json:"ratings_stored"`
	Ready         bool  `json:"ready"`
}

// Engine decides a strategy per user, scores, blends and caches
// recommendations. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
	gate   Gate

	catalog      CatalogProvider
	interactions InteractionStore
	cache        *Cache
	observer     Observer

	// Artifacts become available once, after asynchronous loading.
	resources atomic.Pointer[Resources]
	ready     chan struct{}
	readyOnce sync.Once

	// Serializes rating writes with the invalidation that follows them.
	writeMu sync.Mutex

	requestCount  atomic.Int64
	errorCount    atomic.Int64
	degradedCount atomic.Int64
	ratingsStored atomic.Int64
}

// NewEngine creates a recommendation engine. Resources must be supplied with
// SetResources before Recommend can complete.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, catalog CatalogProvider, interactions InteractionStore, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if catalog == nil {
		return nil, errors.New("catalog provider is required")
	}
	if interactions == nil {
		return nil, errors.New("interaction store is required")
	}

	logger = logger.With().Str("component", "recommend").Logger()

	e := &Engine{
		config:       cfg.Clone(),
		logger:       logger,
		gate:         NewGate(cfg.MinForHybrid, cfg.AlphaTiers),
		catalog:      catalog,
		interactions: interactions,
		observer:     nopObserver{},
		ready:        make(chan struct{}),
	}
	if cfg.Cache.Enabled {
		e.cache = NewCache(cfg.Cache.TTL, cfg.Cache.MaxEntries, logger)
	}
	return e, nil
}

// SetObserver installs an event observer. Must be called before serving.
func (e *Engine) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	e.observer = o
}

// SetResources publishes the loaded artifacts and releases waiting requests.
// Artifacts are immutable for the life of the engine; a second call fails.
func (e *Engine) SetResources(r Resources) error {
	if r.Content == nil {
		return errors.New("content scorer is required")
	}
	if r.Collaborative == nil {
		return errors.New("collaborative scorer is required")
	}
	if !e.resources.CompareAndSwap(nil, &r) {
		return errors.New("resources already set")
	}
	e.readyOnce.Do(func() { close(e.ready) })

	e.logger.Info().
		Str("model_version", r.Collaborative.Version()).
		Msg("recommendation resources ready")
	return nil
}

// Ready reports whether artifacts have been loaded.
func (e *Engine) Ready() bool {
	return e.resources.Load() != nil
}

// WaitReady blocks until artifacts are loaded, ctx is done or the configured
// ready timeout elapses. Returns ErrNotReady on timeout.
func (e *Engine) WaitReady(ctx context.Context) error {
	_, err := e.waitResources(ctx)
	return err
}

func (e *Engine) waitResources(ctx context.Context) (*Resources, error) {
	if r := e.resources.Load(); r != nil {
		return r, nil
	}

	timer := time.NewTimer(e.config.ReadyTimeout)
	defer timer.Stop()

	select {
	case <-e.ready:
		return e.resources.Load(), nil
	case <-timer.C:
		return nil, ErrNotReady
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrNotReady, ctx.Err())
	}
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Recommend returns up to topN places for user. A non-positive topN uses the
// configured default; values above the maximum are capped.
func (e *Engine) Recommend(ctx context.Context, user UserID, topN int) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)
	topN = e.config.clampTopN(topN)

	logger := e.logger.With().
		Int64("user_id", int64(user)).
		Int("top_n", topN).
		Logger()
	logger.Debug().Msg("processing recommendation request")

	res, err := e.waitResources(ctx)
	if err != nil {
		e.fail("not_ready")
		return nil, err
	}

	compute := func(cctx context.Context) (*Result, error) {
		return e.compute(cctx, res, user, topN)
	}

	var (
		result *Result
		hit    bool
	)
	if e.cache != nil {
		result, hit, err = e.cache.GetOrCompute(ctx, user, topN, compute)
	} else {
		result, err = compute(ctx)
	}
	if err != nil {
		e.fail("compute")
		return nil, fmt.Errorf("recommend user %d: %w", user, err)
	}

	latency := time.Since(start)
	result.Meta.CacheHit = hit
	result.Meta.LatencyMS = latency.Milliseconds()
	if hit {
		result.Meta.RequestID = uuid.NewString()
	}
	e.observer.RequestCompleted(result.Strategy, hit, latency)

	logger.Debug().
		Str("strategy", string(result.Strategy)).
		Bool("cache_hit", hit).
		Int("returned", len(result.Items)).
		Int64("latency_ms", result.Meta.LatencyMS).
		Msg("recommendation complete")

	return result, nil
}

func (e *Engine) fail(reason string) {
	e.errorCount.Add(1)
	e.observer.RequestFailed(reason)
}

// requestData is the per-request snapshot of store and catalog state.
type requestData struct {
	history []Interaction
	items   []Item
	byID    map[ItemID]Item
	ratings map[ItemID]float64
	rated   map[ItemID]struct{}
	liked   map[ItemID]struct{}
}

func (e *Engine) loadRequestData(ctx context.Context, user UserID) (*requestData, error) {
	history, err := e.interactions.UserInteractions(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}
	items, err := e.catalog.AllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	d := &requestData{
		history: history,
		items:   items,
		byID:    make(map[ItemID]Item, len(items)),
		ratings: make(map[ItemID]float64, len(items)),
		rated:   make(map[ItemID]struct{}, len(history)),
		liked:   make(map[ItemID]struct{}, len(history)),
	}
	for _, it := range items {
		d.byID[it.ID] = it
		d.ratings[it.ID] = it.AggregateRating
	}
	for _, in := range history {
		d.rated[in.ItemID] = struct{}{}
		if in.Liked() {
			d.liked[in.ItemID] = struct{}{}
		}
	}
	return d, nil
}

// compute runs the full strategy pipeline without the cache.
func (e *Engine) compute(ctx context.Context, res *Resources, user UserID, topN int) (*Result, error) {
	d, err := e.loadRequestData(ctx, user)
	if err != nil {
		return nil, err
	}

	decision := e.gate.Classify(len(d.history))
	result := &Result{
		Strategy: decision.Strategy,
		Meta: ResultMeta{
			RequestID:       uuid.NewString(),
			Alpha:           decision.Alpha,
			UserRatingCount: len(d.history),
			ModelVersion:    res.Collaborative.Version(),
			ComputedAt:      time.Now(),
		},
	}

	switch decision.Strategy {
	case StrategyPopularity:
		e.popularityInto(result, d, topN)
		return result, nil

	case StrategyContentOnly:
		content, ok := e.contentScores(res, d)
		if !ok {
			e.degrade(result, StrategyPopularity, "no_content_signal")
			e.popularityInto(result, d, topN)
			return result, nil
		}
		e.blendInto(result, d, content, nil, 0, topN)
		return result, nil

	default:
		content, contentOK := e.contentScores(res, d)
		collab, collabErr := e.collabScores(ctx, res, user, d)

		switch {
		case collabErr != nil && !contentOK:
			e.degrade(result, StrategyPopularity, reasonFor(collabErr))
			e.popularityInto(result, d, topN)
		case collabErr != nil:
			e.degrade(result, StrategyContentOnly, reasonFor(collabErr))
			e.blendInto(result, d, content, nil, 0, topN)
		default:
			// Without liked items the content side contributes 0 and the
			// ranking follows the collaborative signal.
			if !contentOK {
				result.Meta.DegradedReason = "no_content_signal"
			}
			e.blendInto(result, d, content, collab, decision.Alpha, topN)
		}
		return result, nil
	}
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, ErrUnencodableUser):
		return "unencodable_user"
	case errors.Is(err, ErrEmptyCandidateSet):
		return "empty_candidate_set"
	default:
		return "collaborative_error"
	}
}

func (e *Engine) degrade(r *Result, to Strategy, reason string) {
	e.degradedCount.Add(1)
	e.observer.Degraded(r.Strategy, to, reason)
	e.logger.Debug().
		Str("from", string(r.Strategy)).
		Str("to", string(to)).
		Str("reason", reason).
		Msg("degraded recommendation strategy")

	r.Strategy = to
	r.Meta.Degraded = true
	r.Meta.DegradedReason = reason
	r.Meta.Alpha = 0
}

// contentScores returns content scores restricted to the current catalog.
// Catalog items unknown to the similarity matrix are kept with score 0.
func (e *Engine) contentScores(res *Resources, d *requestData) (ScoreMap, bool) {
	raw, ok := res.Content.Score(d.liked, d.rated)
	if !ok {
		return nil, false
	}
	scores := make(ScoreMap, len(d.items))
	for _, it := range d.items {
		if _, excluded := d.rated[it.ID]; excluded {
			continue
		}
		scores[it.ID] = raw[it.ID]
	}
	return scores, true
}

func (e *Engine) collabScores(ctx context.Context, res *Resources, user UserID, d *requestData) (ScoreMap, error) {
	raw, err := res.Collaborative.Score(ctx, user, d.rated)
	if err != nil {
		e.logger.Debug().Err(err).Int64("user_id", int64(user)).Msg("collaborative signal unavailable")
		return nil, err
	}
	scores := make(ScoreMap, len(raw))
	for id, s := range raw {
		if _, known := d.byID[id]; known {
			scores[id] = s
		}
	}
	if len(scores) == 0 {
		return nil, ErrEmptyCandidateSet
	}
	return scores, nil
}

func (e *Engine) blendInto(r *Result, d *requestData, content, collab ScoreMap, alpha float64, topN int) {
	r.Meta.ContentScored = len(content)
	r.Meta.CollabScored = len(collab)
	r.Meta.Alpha = alpha

	blended := Blend(BlendInput{
		Content: Normalize(content),
		Collab:  Normalize(collab),
		Alpha:   alpha,
		Exclude: d.rated,
		TopN:    topN,
		Ratings: d.ratings,
	})

	r.Items = make([]Recommendation, 0, len(blended))
	for _, b := range blended {
		item, ok := d.byID[b.ID]
		if !ok {
			continue
		}
		r.Items = append(r.Items, Recommendation{
			Item:         item,
			BlendScore:   b.Score,
			ContentScore: b.ContentScore,
			CollabScore:  b.CollabScore,
			Alpha:        alpha,
			Strategy:     r.Strategy,
			Source:       b.Source,
		})
	}
}

func (e *Engine) popularityInto(r *Result, d *requestData, topN int) {
	ranked := RankByPopularity(d.items, d.rated, topN)
	r.Items = popularRecommendations(ranked)
}

func popularRecommendations(items []Item) []Recommendation {
	out := make([]Recommendation, 0, len(items))
	for _, it := range items {
		out = append(out, Recommendation{
			Item:       it,
			BlendScore: it.AggregateRating,
			Strategy:   StrategyPopularity,
			Source:     SourcePopularity,
		})
	}
	return out
}

// Popular returns the most popular rated places. It does not depend on
// artifacts and never waits for them.
func (e *Engine) Popular(ctx context.Context, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = e.config.Limits.DefaultPopularLimit
	}
	if limit > e.config.Limits.MaxTopN {
		limit = e.config.Limits.MaxTopN
	}
	items, err := e.catalog.AllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	rated := make([]Item, 0, len(items))
	for _, it := range items {
		if it.AggregateRating > 0 {
			rated = append(rated, it)
		}
	}
	return popularRecommendations(RankByPopularity(rated, nil, limit)), nil
}

// ContentOnly returns recommendations from the content signal alone. Users
// without liked places get the popularity ranking.
func (e *Engine) ContentOnly(ctx context.Context, user UserID, topN int) (*Result, error) {
	return e.singleSignal(ctx, user, topN, StrategyContentOnly)
}

// CollaborativeOnly returns recommendations from the collaborative signal
// alone. Users unknown to the model get the popularity ranking.
func (e *Engine) CollaborativeOnly(ctx context.Context, user UserID, topN int) (*Result, error) {
	return e.singleSignal(ctx, user, topN, StrategyCollaborativeOnly)
}

func (e *Engine) singleSignal(ctx context.Context, user UserID, topN int, strategy Strategy) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)
	topN = e.config.clampTopN(topN)

	res, err := e.waitResources(ctx)
	if err != nil {
		e.fail("not_ready")
		return nil, err
	}
	d, err := e.loadRequestData(ctx, user)
	if err != nil {
		e.fail("compute")
		return nil, err
	}

	result := &Result{
		Strategy: strategy,
		Meta: ResultMeta{
			RequestID:       uuid.NewString(),
			UserRatingCount: len(d.history),
			ModelVersion:    res.Collaborative.Version(),
			ComputedAt:      time.Now(),
		},
	}

	if strategy == StrategyContentOnly {
		content, ok := e.contentScores(res, d)
		if ok {
			e.blendInto(result, d, content, nil, 0, topN)
		} else {
			e.degrade(result, StrategyPopularity, "no_content_signal")
			e.popularityInto(result, d, topN)
		}
	} else {
		collab, err := e.collabScores(ctx, res, user, d)
		if err == nil {
			e.blendInto(result, d, nil, collab, 1, topN)
		} else {
			e.degrade(result, StrategyPopularity, reasonFor(err))
			e.popularityInto(result, d, topN)
		}
	}

	latency := time.Since(start)
	result.Meta.LatencyMS = latency.Milliseconds()
	e.observer.RequestCompleted(result.Strategy, false, latency)
	return result, nil
}

// Classify reports the user's current strategy and how many more ratings
// are needed for hybrid recommendations.
func (e *Engine) Classify(ctx context.Context, user UserID) (Eligibility, error) {
	count, err := e.interactions.CountUserInteractions(ctx, user)
	if err != nil {
		return Eligibility{}, fmt.Errorf("count interactions: %w", err)
	}
	return e.gate.Eligibility(user, count), nil
}

// InvalidateUser drops every cached result of user. It must be called after
// a new interaction for the user is persisted.
func (e *Engine) InvalidateUser(user UserID) {
	if e.cache == nil {
		return
	}
	removed := e.cache.Invalidate(user)
	e.observer.CacheInvalidated(removed)
	e.logger.Debug().
		Int64("user_id", int64(user)).
		Int("removed", removed).
		Msg("invalidated cached recommendations")
}

// SubmitRatings validates and upserts ratings for user, then invalidates the
// user's cache before returning. Unknown places are rejected before any
// rating is written.
func (e *Engine) SubmitRatings(ctx context.Context, user UserID, ratings []RatingInput) (Eligibility, error) {
	if len(ratings) < e.config.MinBatchRatings {
		return Eligibility{}, fmt.Errorf("%w: at least %d required, got %d", ErrTooFewRatings, e.config.MinBatchRatings, len(ratings))
	}
	for _, r := range ratings {
		if r.Rating < 1 || r.Rating > 5 {
			return Eligibility{}, fmt.Errorf("item %d: %w", r.ItemID, ErrInvalidRating)
		}
		if _, err := e.catalog.Item(ctx, r.ItemID); err != nil {
			return Eligibility{}, fmt.Errorf("item %d: %w", r.ItemID, err)
		}
	}

	e.writeMu.Lock()
	now := time.Now()
	var writeErr error
	written := 0
	for _, r := range ratings {
		in := Interaction{UserID: user, ItemID: r.ItemID, Rating: r.Rating, Timestamp: now}
		if err := e.interactions.UpsertInteraction(ctx, in); err != nil {
			writeErr = fmt.Errorf("store rating for item %d: %w", r.ItemID, err)
			break
		}
		written++
	}
	// Invalidate even after a partial write so no stale result survives.
	if written > 0 {
		e.InvalidateUser(user)
	}
	e.writeMu.Unlock()

	e.ratingsStored.Add(int64(written))
	if writeErr != nil {
		return Eligibility{}, writeErr
	}

	e.logger.Info().
		Int64("user_id", int64(user)).
		Int("ratings", written).
		Msg("ratings stored")

	return e.Classify(ctx, user)
}

// CacheStats returns cache statistics. The zero value is returned when
// caching is disabled.
func (e *Engine) CacheStats() CacheStats {
	if e.cache == nil {
		return CacheStats{Keys: []string{}}
	}
	return e.cache.Stats()
}

// PurgeExpired drops expired cache entries.
func (e *Engine) PurgeExpired() int {
	if e.cache == nil {
		return 0
	}
	return e.cache.PurgeExpired()
}

// GetMetrics returns a snapshot of engine counters.
func (e *Engine) GetMetrics() EngineMetrics {
	return EngineMetrics{
		Requests:      e.requestCount.Load(),
		Errors:        e.errorCount.Load(),
		Degradations:  e.degradedCount.Load(),
		RatingsStored: e.ratingsStored.Load(),
		Ready:         e.Ready(),
	}
}
