// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package algorithms

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/wayfarer/internal/metrics"
)

// BreakerSettings configures BreakerModel.
type BreakerSettings struct {
	// MinRequests is the number of calls in the window before the breaker
	// can trip. Default: 10.
	MinRequests uint32

	// FailureRatio opens the breaker at or above this ratio. Default: 0.6.
	FailureRatio float64

	// Interval resets counts while closed. Default: 1m.
	Interval time.Duration

	// Timeout is how long the breaker stays open. Default: 30s.
	Timeout time.Duration
}

// BreakerModel wraps a Model with a circuit breaker. While open, inference
// fails fast and the engine serves content-only results.
type BreakerModel struct {
	model Model
	cb    *gobreaker.CircuitBreaker[[]float64]
	name  string
}

// NewBreakerModel wraps model with a circuit breaker.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBreakerModel(model Model, s BreakerSettings, logger zerolog.Logger) *BreakerModel {
	if s.MinRequests == 0 {
		s.MinRequests = 10
	}
	if s.FailureRatio <= 0 {
		s.FailureRatio = 0.6
	}
	if s.Interval <= 0 {
		s.Interval = time.Minute
	}
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}

	name := "collaborative-model"
	logger = logger.With().Str("component", "model_breaker").Logger()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]float64](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= s.FailureRatio
		},
		// Cancellation is the caller's choice, not a model failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("model circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerModel{model: model, cb: cb, name: name}
}

// PredictBatch implements Model.
func (b *BreakerModel) PredictBatch(ctx context.Context, user int, items []int) ([]float64, error) {
	out, err := b.cb.Execute(func() ([]float64, error) {
		return b.model.PredictBatch(ctx, user, items)
	})
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
	}
	return out, err
}

// Version implements Model.
func (b *BreakerModel) Version() string {
	return b.model.Version()
}

// State returns the breaker state.
func (b *BreakerModel) State() gobreaker.State {
	return b.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
