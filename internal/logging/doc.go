// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package logging provides zerolog-based structured logging for Wayfarer.
//
// A single global logger is configured once at startup from the logging
// section of the configuration file. Components take a child of it via
// WithComponent and keep it in their own struct; request handlers use Ctx
// so every line carries the request and user IDs set by the API middleware.
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//	logger := logging.WithComponent("engine")
//	logger.Info().Int("places", n).Msg("catalog loaded")
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("collaborative scorer degraded")
//
// # Output Formats
//
// JSON (production):
//
//	{"level":"info","component":"api","addr":":8080","time":"2026-01-03T10:30:00Z","message":"HTTP server listening"}
//
// Console (development):
//
//	10:30:00 INF HTTP server listening addr=:8080 component=api
//
// # slog Adapter
//
// The supervisor tree logs through sutureslog, which wants an *slog.Logger.
// NewSlogLogger bridges it onto zerolog so both share one sink and level.
//
// # Testing
//
// Tests pass zerolog.Nop() to components, or capture output with
// NewTestLogger(&buf) when they assert on log content.
package logging
