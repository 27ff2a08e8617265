// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package algorithms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

func TestBreakerModel_PassThrough(t *testing.T) {
	t.Parallel()

	inner := &mockModel{offset: 1}
	b := NewBreakerModel(inner, BreakerSettings{}, zerolog.Nop())

	got, err := b.PredictBatch(context.Background(), 0, []int{1, 2})
	if err != nil {
		t.Fatalf("PredictBatch() error = %v", err)
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("PredictBatch() = %v, want [2 3]", got)
	}
	if b.Version() != "mock-1" {
		t.Errorf("Version() = %q", b.Version())
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
}

func TestBreakerModel_Trips(t *testing.T) {
	t.Parallel()

	inner := &mockModel{err: errors.New("inference backend down")}
	b := NewBreakerModel(inner, BreakerSettings{
		MinRequests:  3,
		FailureRatio: 0.5,
		Timeout:      time.Hour,
	}, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if _, err := b.PredictBatch(context.Background(), 0, []int{0}); err == nil {
			t.Fatal("expected inner failure")
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}

	_, err := b.PredictBatch(context.Background(), 0, []int{0})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState", err)
	}
	if len(inner.batches) != 3 {
		t.Errorf("inner model called %d times, want 3", len(inner.batches))
	}
}

func TestBreakerModel_CancellationIsNotFailure(t *testing.T) {
	t.Parallel()

	inner := &mockModel{err: context.Canceled}
	b := NewBreakerModel(inner, BreakerSettings{MinRequests: 2, FailureRatio: 0.1}, zerolog.Nop())

	for i := 0; i < 5; i++ {
		_, _ = b.PredictBatch(context.Background(), 0, []int{0})
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed after cancellations", b.State())
	}
}

func TestStateToFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		want  float64
	}{
		{gobreaker.StateClosed, 0},
		{gobreaker.StateHalfOpen, 1},
		{gobreaker.StateOpen, 2},
		{gobreaker.State(42), -1},
	}
	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.want {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}
