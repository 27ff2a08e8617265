// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/recommend"
	"github.com/tomtom215/wayfarer/internal/validation"
)

// retryAfterSeconds is advertised on 503 responses while artifacts load.
const retryAfterSeconds = "5"

// sanitizeLogValue strips control characters from user-supplied values
// before they reach the logs.
func sanitizeLogValue(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

// respondJSON writes data as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":"error","error":{"code":"INTERNAL_ERROR","message":"failed to encode response"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Debug().Err(err).Msg("Failed to write response")
	}
}

// respondSuccess wraps data in the success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			RequestID:   logging.RequestIDFromContext(r.Context()),
		},
	})
}

// respondError writes an error envelope. err is logged, never echoed.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Err(err).Str("code", code).Int("status", status).Msg(message)
	}
	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondValidationError writes a 400 built from validation failures.
func respondValidationError(w http.ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondJSON(w, http.StatusBadRequest, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		},
	})
}

// respondEngineError maps engine errors onto HTTP status codes.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.Ctx(r.Context())

	switch {
	case errors.Is(err, recommend.ErrNotReady):
		logger.Warn().Err(err).Msg("request rejected, engine not ready")
		w.Header().Set("Retry-After", retryAfterSeconds)
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Recommendation data is still loading, retry shortly", nil)
	case errors.Is(err, recommend.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "ITEM_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, recommend.ErrInvalidRating), errors.Is(err, recommend.ErrTooFewRatings):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn().Err(err).Msg("request timed out")
		respondError(w, http.StatusGatewayTimeout, "TIMEOUT", "Request timed out", nil)
	case errors.Is(err, context.Canceled):
		// client went away; nothing useful to send
		logger.Debug().Err(err).Msg("request cancelled")
	default:
		logger.Error().Err(err).Msg("recommendation request failed")
		respondError(w, http.StatusInternalServerError, "RECOMMEND_ERROR", "Failed to compute recommendations", nil)
	}
}

// userIDParam parses the {userID} path parameter as a positive integer.
func userIDParam(r *http.Request) (recommend.UserID, bool) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return recommend.UserID(id), true
}

// getIntParam parses an optional integer query parameter. ok is false when
// the value is present but not an integer.
func getIntParam(r *http.Request, name string, defaultValue int) (value int, ok bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// boundedIntParam reads name and checks it against tag (e.g. "min=1,max=100").
func boundedIntParam(w http.ResponseWriter, r *http.Request, name string, defaultValue int, tag string) (int, bool) {
	v, ok := getIntParam(r, name, defaultValue)
	if !ok {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", name+" must be an integer", nil)
		return 0, false
	}
	if verr := validation.ValidateVar(v, tag, name); verr != nil {
		respondValidationError(w, verr)
		return 0, false
	}
	return v, true
}

// decodeJSONBody decodes the request body into dst, rejecting unknown fields.
// Read errors (including *http.MaxBytesError) are returned unwrapped.
func decodeJSONBody(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
