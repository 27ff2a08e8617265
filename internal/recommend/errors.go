// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import "errors"

var (
	// ErrNotReady is returned when artifacts have not finished loading within
	// the configured wait. Callers may retry.
	ErrNotReady = errors.New("recommendation engine not ready")

	// ErrUnencodableUser means the user is absent from the model's user encoding.
	ErrUnencodableUser = errors.New("user not present in collaborative encoding")

	// ErrUnencodableItem means the item is absent from the model's item encoding.
	ErrUnencodableItem = errors.New("item not present in collaborative encoding")

	// ErrEmptyCandidateSet means no items remained after exclusion.
	ErrEmptyCandidateSet = errors.New("no candidate items after exclusion")

	// ErrArtifactShapeMismatch means a loaded artifact disagrees with its
	// catalog snapshot. The engine must not serve with such an artifact.
	ErrArtifactShapeMismatch = errors.New("artifact shape mismatch")

	// ErrCacheInconsistency marks a cache store that lost a race with an
	// invalidation. It is never returned to callers.
	ErrCacheInconsistency = errors.New("cache entry invalidated during computation")

	// ErrItemNotFound is returned by catalog lookups for unknown items.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidRating is returned for ratings outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrTooFewRatings is returned when a submission is smaller than the
	// configured batch minimum.
	ErrTooFewRatings = errors.New("too few ratings in submission")
)
