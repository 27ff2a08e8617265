// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfarer/internal/recommend"
)

func TestAPIResponse_JSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		resp     APIResponse
		contains []string
		absent   []string
	}{
		{
			name: "success",
			resp: APIResponse{
				Status:   "success",
				Data:     map[string]int{"count": 2},
				Metadata: Metadata{Timestamp: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), QueryTimeMS: 14},
			},
			contains: []string{`"status":"success"`, `"count":2`, `"query_time_ms":14`},
			absent:   []string{`"error"`, `"cached"`, `"request_id"`},
		},
		{
			name: "error",
			resp: APIResponse{
				Status: "error",
				Error:  &APIError{Code: "NOT_READY", Message: "recommendation engine not ready"},
			},
			contains: []string{`"status":"error"`, `"data":null`, `"code":"NOT_READY"`},
			absent:   []string{`"details"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, err := json.Marshal(tt.resp)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			out := string(b)
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("expected %s in %s", s, out)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(out, s) {
					t.Errorf("unexpected %s in %s", s, out)
				}
			}
		})
	}
}

func TestNewRecommendationsResponse(t *testing.T) {
	t.Parallel()

	empty := NewRecommendationsResponse(5, &recommend.Result{Strategy: recommend.StrategyContentOnly})
	if empty.Items == nil || empty.Count != 0 {
		t.Errorf("empty result should serialize as []: %+v", empty)
	}
	if empty.UserID != 5 || empty.Strategy != recommend.StrategyContentOnly {
		t.Errorf("UserID/Strategy = %d/%s", empty.UserID, empty.Strategy)
	}

	r := &recommend.Result{
		Strategy: recommend.StrategyHybrid,
		Items: []recommend.Recommendation{
			{Item: recommend.Item{ID: 7, Name: "Kuta Beach"}, BlendScore: 0.9, Source: recommend.SourceBoth},
		},
		Meta: recommend.ResultMeta{Alpha: 0.5, UserRatingCount: 8},
	}
	got := NewRecommendationsResponse(9, r)
	if got.Count != 1 || got.Items[0].ID != 7 || got.Meta.Alpha != 0.5 {
		t.Errorf("NewRecommendationsResponse() = %+v", got)
	}

	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, s := range []string{`"id":7`, `"name":"Kuta Beach"`, `"blend_score":0.9`, `"source":"both"`} {
		if !strings.Contains(string(b), s) {
			t.Errorf("expected %s in %s", s, b)
		}
	}
}

func TestSubmitRatingsRequest_Decode(t *testing.T) {
	t.Parallel()

	var req SubmitRatingsRequest
	body := `{"ratings":[{"item_id":12,"rating":4},{"item_id":40,"rating":5}]}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(req.Ratings) != 2 || req.Ratings[0].ItemID != 12 || req.Ratings[1].Rating != 5 {
		t.Errorf("decoded = %+v", req.Ratings)
	}
}
