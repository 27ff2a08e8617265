// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import "testing"

func TestInteraction_Liked(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rating int
		want   bool
	}{
		{1, false},
		{2, false},
		{3, true},
		{4, true},
		{5, true},
	}

	for _, tt := range tests {
		in := Interaction{Rating: tt.rating}
		if got := in.Liked(); got != tt.want {
			t.Errorf("Interaction{Rating: %d}.Liked() = %v, want %v", tt.rating, got, tt.want)
		}
	}
}

func TestResult_Clone(t *testing.T) {
	t.Parallel()

	var nilResult *Result
	if nilResult.clone() != nil {
		t.Error("clone of nil should be nil")
	}

	orig := &Result{
		Strategy: StrategyHybrid,
		Items:    []Recommendation{{Item: Item{ID: 1, Name: "a"}}},
		Meta:     ResultMeta{RequestID: "r1"},
	}
	c := orig.clone()
	c.Items[0].Name = "b"
	c.Meta.RequestID = "r2"

	if orig.Items[0].Name != "a" || orig.Meta.RequestID != "r1" {
		t.Error("clone shares state with the original")
	}
}
