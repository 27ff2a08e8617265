// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"math"
	"math/rand"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   ScoreMap
		want ScoreMap
	}{
		{
			name: "empty",
			in:   ScoreMap{},
			want: ScoreMap{},
		},
		{
			name: "nil",
			in:   nil,
			want: ScoreMap{},
		},
		{
			name: "single entry",
			in:   ScoreMap{7: 3.2},
			want: ScoreMap{7: 0.5},
		},
		{
			name: "all equal",
			in:   ScoreMap{1: -2, 2: -2, 3: -2},
			want: ScoreMap{1: 0.5, 2: 0.5, 3: 0.5},
		},
		{
			name: "min max",
			in:   ScoreMap{1: 2, 2: 4, 3: 6},
			want: ScoreMap{1: 0, 2: 0.5, 3: 1},
		},
		{
			name: "negative range",
			in:   ScoreMap{1: -1, 2: 1},
			want: ScoreMap{1: 0, 2: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Normalize() returned %d entries, want %d", len(got), len(tt.want))
			}
			for id, w := range tt.want {
				if math.Abs(got[id]-w) > 1e-12 {
					t.Errorf("Normalize()[%d] = %v, want %v", id, got[id], w)
				}
			}
		})
	}
}

func TestNormalize_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	in := ScoreMap{1: 10, 2: 20}
	_ = Normalize(in)
	if in[1] != 10 || in[2] != 20 {
		t.Errorf("Normalize() modified input: %v", in)
	}
}

func TestNormalize_Bounds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		in := make(ScoreMap)
		n := 1 + rng.Intn(50)
		for i := 0; i < n; i++ {
			in[ItemID(i)] = (rng.Float64() - 0.5) * math.Pow(10, float64(rng.Intn(8)))
		}
		for id, v := range Normalize(in) {
			if v < 0 || v > 1 {
				t.Fatalf("trial %d: Normalize()[%d] = %v out of [0,1]", trial, id, v)
			}
		}
	}
}
