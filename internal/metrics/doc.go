// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package metrics provides Prometheus instrumentation for Wayfarer.

All collectors are registered on the default registry through promauto and
exposed by the API router at /metrics:

	curl http://localhost:8680/metrics

# Available Metrics

Recommendation:
  - recommend_requests_total{strategy,cache}
  - recommend_duration_seconds{strategy}
  - recommend_failures_total{reason}
  - recommend_degradations_total{from,to,reason}
  - recommend_inference_batch_size

Cache:
  - recommend_cache_entries
  - recommend_cache_invalidations_total
  - recommend_cache_invalidated_entries_total
  - recommend_cache_purged_total

Artifacts:
  - artifact_load_duration_seconds{artifact}
  - artifact_load_errors_total{artifact}
  - recommend_resources_ready

Circuit breaker:
  - circuit_breaker_state{name}
  - circuit_breaker_transitions_total{name,from,to}
  - circuit_breaker_requests_total{name,result}

Store and API:
  - store_operation_duration_seconds{operation}
  - store_operation_errors_total{operation}
  - ratings_stored_total
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests

RecommendObserver adapts these collectors to the recommend.Observer
interface so the engine stays free of Prometheus imports.
*/
package metrics
