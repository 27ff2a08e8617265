// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package recommend implements the hybrid place recommendation engine.
//
// # Architecture
//
// Two independent signals are blended per user:
//
//   - Content similarity: rows of a precomputed item x item cosine matrix,
//     summed over the places a user liked (rating >= 3)
//   - Collaborative: predictions of an offline-trained user/item model
//
// Each signal is min-max normalized (see Normalize) and combined as
//
//	blend = alpha*collab + (1-alpha)*content
//
// where alpha grows with the user's rating count (see Gate).
//
// # Strategy Selection
//
//   - 0 ratings: popularity ranking (aggregate rating, then review count)
//   - 1 to MinForHybrid-1 ratings: content similarity only
//   - MinForHybrid or more: hybrid blend with tiered alpha
//
// Recoverable failures degrade the strategy instead of failing the request:
// hybrid falls back to content-only when the user is unknown to the model,
// and content-only falls back to popularity when the user liked nothing.
//
// # Readiness
//
// The similarity matrix and the collaborative model are loaded once at
// startup and published with Engine.SetResources. Requests block until then
// and fail with ErrNotReady after Config.ReadyTimeout.
//
// # Caching
//
// Results are cached per (user, topN) for Config.Cache.TTL. Concurrent misses
// for one key share a single computation. Engine.SubmitRatings invalidates
// the user's entries synchronously after the write, and computations that
// raced with an invalidation are never stored.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), store, store, logger)
//	if err != nil {
//	    return err
//	}
//	// after artifacts are loaded
//	_ = engine.SetResources(recommend.Resources{Content: cbf, Collaborative: cf})
//
//	res, err := engine.Recommend(ctx, userID, 10)
package recommend
