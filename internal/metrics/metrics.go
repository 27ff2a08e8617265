// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/wayfarer/internal/recommend"
)

// Prometheus instrumentation for:
// - Recommendation requests, strategies and degradations
// - Result cache efficiency
// - Artifact loading and readiness
// - Model inference and circuit breaker state
// - Store operations and API endpoints

var (
	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of completed recommendation requests",
		},
		[]string{"strategy", "cache"}, // cache: "hit", "miss"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Recommendation latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"strategy"},
	)

	RecommendFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_failures_total",
			Help: "Total number of failed recommendation requests",
		},
		[]string{"reason"}, // "not_ready", "compute"
	)

	RecommendDegradations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_degradations_total",
			Help: "Total number of requests served by a lesser strategy",
		},
		[]string{"from", "to", "reason"},
	)

	RecommendInferenceBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_inference_batch_size",
			Help:    "Number of candidate places per collaborative model call",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 .. 16384
		},
	)

	// Result Cache Metrics
	RecommendCacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_invalidations_total",
			Help: "Total number of per-user cache invalidations",
		},
	)

	RecommendCacheInvalidatedEntries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_invalidated_entries_total",
			Help: "Total number of cache entries removed by invalidation",
		},
	)

	RecommendCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_cache_entries",
			Help: "Current number of cached recommendation results",
		},
	)

	RecommendCachePurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_purged_total",
			Help: "Total number of expired cache entries purged by the janitor",
		},
	)

	// Artifact Metrics
	ArtifactLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "artifact_load_duration_seconds",
			Help:    "Duration of artifact loading in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"artifact"}, // "similarity", "model"
	)

	ArtifactLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artifact_load_errors_total",
			Help: "Total number of artifact load failures",
		},
		[]string{"artifact"},
	)

	ResourcesReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_resources_ready",
			Help: "1 when the similarity matrix and model are loaded, 0 otherwise",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"operation"},
	)

	RatingsStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratings_stored_total",
			Help: "Total number of ratings upserted",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStoreOperation records the duration and outcome of a store call.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}

// RecordArtifactLoad records an artifact load attempt.
func RecordArtifactLoad(artifact string, duration time.Duration, err error) {
	ArtifactLoadDuration.WithLabelValues(artifact).Observe(duration.Seconds())
	if err != nil {
		ArtifactLoadErrors.WithLabelValues(artifact).Inc()
	}
}

// RecommendObserver forwards engine events to Prometheus.
type RecommendObserver struct{}

var _ recommend.Observer = RecommendObserver{}

// RequestCompleted implements recommend.Observer.
func (RecommendObserver) RequestCompleted(strategy recommend.Strategy, cacheHit bool, latency time.Duration) {
	cache := "miss"
	if cacheHit {
		cache = "hit"
	}
	RecommendRequests.WithLabelValues(string(strategy), cache).Inc()
	RecommendDuration.WithLabelValues(string(strategy)).Observe(latency.Seconds())
}

// RequestFailed implements recommend.Observer.
func (RecommendObserver) RequestFailed(reason string) {
	RecommendFailures.WithLabelValues(reason).Inc()
}

// Degraded implements recommend.Observer.
func (RecommendObserver) Degraded(from, to recommend.Strategy, reason string) {
	RecommendDegradations.WithLabelValues(string(from), string(to), reason).Inc()
}

// CacheInvalidated implements recommend.Observer.
func (RecommendObserver) CacheInvalidated(removed int) {
	RecommendCacheInvalidations.Inc()
	RecommendCacheInvalidatedEntries.Add(float64(removed))
}
