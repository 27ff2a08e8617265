// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package api provides the HTTP surface of the recommendation service.

Routes (all JSON, wrapped in models.APIResponse):

	GET    /api/v1/health
	GET    /api/v1/places/popular?limit=12
	GET    /api/v1/users/{userID}/recommendations?top_n=10
	GET    /api/v1/users/{userID}/recommendations/content?top_n=10
	GET    /api/v1/users/{userID}/recommendations/collaborative?top_n=10
	GET    /api/v1/users/{userID}/eligibility
	POST   /api/v1/users/{userID}/ratings
	DELETE /api/v1/users/{userID}/recommendations/cache
	GET    /api/v1/recommendations/cache/stats
	GET    /metrics

Error mapping:

	recommend.ErrNotReady                            503 NOT_READY (Retry-After)
	recommend.ErrItemNotFound                        404 ITEM_NOT_FOUND
	recommend.ErrInvalidRating, ErrTooFewRatings     400 VALIDATION_ERROR
	context.DeadlineExceeded                         504 TIMEOUT
	anything else                                    500 RECOMMEND_ERROR

Requests are rate limited per client IP with go-chi/httprate; write
endpoints have a tighter budget and a body size cap. Metrics are labelled
with the chi route pattern.
*/
package api
