// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package validation

import (
	"strings"
	"testing"
)

type ratingInput struct {
	ItemID int64 `json:"item_id" validate:"required,gt=0"`
	Rating int   `json:"rating" validate:"min=1,max=5"`
}

type ratingsRequest struct {
	Ratings []ratingInput `json:"ratings" validate:"required,min=1,max=3,dive"`
}

type placeQuery struct {
	Name     string  `json:"name" validate:"required,min=2,max=10"`
	Category string  `json:"category" validate:"omitempty,oneof=beach museum park"`
	Lat      float64 `json:"lat" validate:"latitude"`
	Internal string  `json:"-" validate:"omitempty,max=1"`
	NoTag    int     `validate:"gte=0"`
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return the same non-nil instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	req := ratingsRequest{Ratings: []ratingInput{{ItemID: 1, Rating: 5}, {ItemID: 2, Rating: 1}}}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStruct_Ratings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       ratingsRequest
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:      "missing ratings",
			req:       ratingsRequest{},
			wantField: "ratings",
			wantTag:   "required",
			wantMsg:   "ratings is required",
		},
		{
			name:      "too many ratings",
			req:       ratingsRequest{Ratings: make([]ratingInput, 4)},
			wantField: "ratings",
			wantTag:   "max",
			wantMsg:   "ratings must be at most 3 entries",
		},
		{
			name:      "rating above range",
			req:       ratingsRequest{Ratings: []ratingInput{{ItemID: 1, Rating: 4}, {ItemID: 2, Rating: 7}}},
			wantField: "ratings[1].rating",
			wantTag:   "max",
			wantMsg:   "ratings[1].rating must be at most 5",
		},
		{
			name:      "rating zero",
			req:       ratingsRequest{Ratings: []ratingInput{{ItemID: 3, Rating: 0}}},
			wantField: "ratings[0].rating",
			wantTag:   "min",
			wantMsg:   "ratings[0].rating must be at least 1",
		},
		{
			name:      "missing item id",
			req:       ratingsRequest{Ratings: []ratingInput{{Rating: 3}}},
			wantField: "ratings[0].item_id",
			wantTag:   "required",
			wantMsg:   "ratings[0].item_id is required",
		},
		{
			name:      "negative item id",
			req:       ratingsRequest{Ratings: []ratingInput{{ItemID: -4, Rating: 3}}},
			wantField: "ratings[0].item_id",
			wantTag:   "gt",
			wantMsg:   "ratings[0].item_id must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(&tt.req)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   placeQuery
		wantMsg string
	}{
		{"string min", placeQuery{Name: "a"}, "name must be at least 2 characters"},
		{"string max", placeQuery{Name: "abcdefghijk"}, "name must be at most 10 characters"},
		{"oneof", placeQuery{Name: "ok", Category: "mall"}, "category must be one of: beach museum park"},
		{"latitude", placeQuery{Name: "ok", Lat: 91}, "lat must be a valid latitude (-90 to 90)"},
		{"untagged field keeps go name", placeQuery{Name: "ok", NoTag: -1}, "NoTag must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(&tt.input)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if verr.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", verr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError_Single(t *testing.T) {
	t.Parallel()

	req := ratingsRequest{Ratings: []ratingInput{{ItemID: 1, Rating: 9}}}
	apiErr := ValidateStruct(&req).ToAPIError()

	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "ratings[0].rating" {
		t.Errorf("Details[field] = %v", apiErr.Details["field"])
	}
	if apiErr.Details["value"] != 9 {
		t.Errorf("Details[value] = %v, want 9", apiErr.Details["value"])
	}
}

func TestToAPIError_Multiple(t *testing.T) {
	t.Parallel()

	req := ratingsRequest{Ratings: []ratingInput{{ItemID: 0, Rating: 0}}}
	verr := ValidateStruct(&req)
	if verr == nil || len(verr.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %v", verr)
	}

	apiErr := verr.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %#v", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "; ") {
		t.Errorf("Message should join both errors: %q", apiErr.Message)
	}
}

func TestToAPIError_Empty(t *testing.T) {
	t.Parallel()

	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" || apiErr.Message != "Validation failed" {
		t.Errorf("ToAPIError() = %+v", apiErr)
	}
	if (&RequestValidationError{}).Error() != "validation failed" {
		t.Error("empty Error() should be generic")
	}
}

func TestValidateVar(t *testing.T) {
	t.Parallel()

	if verr := ValidateVar(10, "min=1,max=100", "top_n"); verr != nil {
		t.Errorf("ValidateVar(10) = %v", verr)
	}

	verr := ValidateVar(500, "min=1,max=100", "top_n")
	if verr == nil {
		t.Fatal("ValidateVar(500) = nil, want error")
	}
	if got := verr.Error(); got != "top_n must be at most 100" {
		t.Errorf("Error() = %q", got)
	}
	if verr.Errors()[0].Field() != "top_n" || verr.Errors()[0].Param() != "100" {
		t.Errorf("field/param = %q/%q", verr.Errors()[0].Field(), verr.Errors()[0].Param())
	}
}
