// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package services provides suture.Service wrappers for the service's
// long-running components: the HTTP server, the one-shot artifact loader,
// the result cache janitor and store garbage collection.
package services
