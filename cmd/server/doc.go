// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package main is the entry point for the Wayfarer server.
//
// Wayfarer serves hybrid place recommendations: a content-similarity
// signal from a precomputed item-item matrix and a collaborative signal
// from a trained embedding model, blended with a weight that grows with
// the number of places the user has rated. Users with too few ratings get
// the catalog's most popular places.
//
// # Startup
//
//  1. Configuration: koanf layers (defaults, config.yaml, environment)
//  2. Store: BadgerDB catalog and ratings, seeded from CATALOG_SEED_PATH
//     when empty
//  3. Engine: created immediately; artifacts load in the background under
//     the supervisor, and requests wait up to RECOMMEND_READY_TIMEOUT
//  4. HTTP server on HTTP_HOST:HTTP_PORT
//
// A similarity matrix or model whose shape does not match its index stops
// the process with exit code 1.
//
// # Artifacts
//
//	ARTIFACT_SIMILARITY_PATH        .npy float matrix, N x N
//	ARTIFACT_SIMILARITY_INDEX_PATH  JSON place ID index, N entries
//	ARTIFACT_MODEL_PATH             JSON embedding model with user/item encodings
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests for HTTP_SHUTDOWN_TIMEOUT, then the store is closed.
package main
