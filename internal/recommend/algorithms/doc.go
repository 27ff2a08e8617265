// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package algorithms implements the scoring signals of the hybrid engine.
//
// Each scorer is built once from offline artifacts and implements one of the
// recommend scorer interfaces.
//
// # Scorers
//
// Content-Based Filtering:
//   - ContentSimilarity: sums the rows of a precomputed item x item cosine
//     similarity matrix over the places a user liked
//
// Collaborative Filtering:
//   - Collaborative: one batch prediction per request from an encoded
//     user/item Model
//   - EmbeddingModel: dot product of learned factors plus biases
//   - BreakerModel: circuit breaker around any Model
//
// # Encodings
//
// Collaborative models are trained on dense indices. Encoding maps domain
// IDs to those indices; an ID missing from the encoding is unencodable and
// is never scored as index 0.
//
// # Thread Safety
//
// Scorers hold only immutable state after construction and are safe for
// concurrent use without locking. BreakerModel synchronizes internally.
package algorithms
