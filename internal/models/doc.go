// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package models defines the HTTP wire types of the Wayfarer API: the
// response envelope shared by every endpoint and the request and response
// payloads of the recommendation, rating and cache endpoints.
//
// Domain records (places, ratings, recommendations) are defined in
// internal/recommend and embedded here unchanged so the JSON shape of a
// recommendation is the same everywhere it appears.
package models
