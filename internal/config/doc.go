// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package config provides layered configuration loading for Wayfarer.

Configuration is built with Koanf v2 from three sources, later ones winning:

 1. Struct defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, ./config.yaml, /etc/wayfarer/config.yaml
 3. Mapped environment variables

# Sections

  - server: HTTP listen address and timeouts
  - logging: zerolog level, format and caller info
  - store: BadgerDB directory, GC schedule and optional catalog seed file
  - artifacts: similarity matrix (.npy), similarity index and model paths
  - recommend: eligibility threshold, alpha tiers, limits, cache and breaker
  - security: CORS origins, per-IP rate limit and request body limit

# Environment Variables

Only names listed in envMappings are read. A few common ones:

	HTTP_PORT                  server.port (default: 8080)
	LOG_LEVEL                  logging.level (default: info)
	STORE_PATH                 store.path (default: /data/wayfarer)
	CATALOG_SEED_PATH          store.seed_path
	ARTIFACT_SIMILARITY_PATH   artifacts.similarity_matrix
	ARTIFACT_MODEL_PATH        artifacts.model
	RECOMMEND_MIN_FOR_HYBRID   recommend.min_for_hybrid (default: 3)
	RECOMMEND_CACHE_TTL        recommend.cache_ttl (default: 5m)
	CORS_ORIGINS               security.cors_origins, comma separated

Alpha tiers can only be set in the YAML file:

	recommend:
	  alpha_tiers:
	    - {max_ratings: 5, alpha: 0.3}
	    - {max_ratings: 10, alpha: 0.5}
	    - {max_ratings: 20, alpha: 0.7}
	    - {max_ratings: 0, alpha: 0.8}   # 0 = no upper bound

The converters (EngineConfig, StoreOptions, ArtifactPaths, BreakerOptions,
LoggingOptions) hand each section to the package that consumes it.
*/
package config
