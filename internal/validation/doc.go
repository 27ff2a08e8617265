// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package validation provides request validation using go-playground/validator v10.
//
// A single validator is shared process-wide; it caches struct metadata on
// first use and is safe for concurrent use. Error field names come from
// json tags, and nested slice elements are reported by path, so a bad
// rating in a batch surfaces as:
//
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "ratings[1].rating must be at most 5",
//	    "details": {"field": "ratings[1].rating", "tag": "max", "value": 7}
//	}
//
// Request types declare their rules with struct tags:
//
//	type SubmitRatingsRequest struct {
//	    Ratings []recommend.RatingInput `json:"ratings" validate:"required,min=1,max=100,dive"`
//	}
//
// Query parameters are checked one at a time with ValidateVar.
package validation
