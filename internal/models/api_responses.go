// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package models

import (
	"time"
)

// APIResponse is the envelope every HTTP endpoint returns.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"strategy": "hybrid", "items": [...]},
//	  "metadata": {
//	    "timestamp": "2026-03-02T12:00:00Z",
//	    "query_time_ms": 14,
//	    "request_id": "5f0c..."
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {
//	    "code": "NOT_READY",
//	    "message": "recommendation engine not ready"
//	  },
//	  "metadata": {"timestamp": "2026-03-02T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
//
// Cached is set when a recommendation list came from the result cache; in
// that case QueryTimeMS only covers the cache lookup.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is a machine-readable error.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid body or query parameter
//   - INVALID_USER_ID: Path user id is not a positive integer
//   - ITEM_NOT_FOUND: A rated place is not in the catalog
//   - NOT_READY: Artifacts are still loading (retry later)
//   - STORE_ERROR: Catalog or ratings storage failed
//   - RECOMMEND_ERROR: Scoring failed unexpectedly
//   - RATE_LIMIT_EXCEEDED: Too many requests from this client
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
