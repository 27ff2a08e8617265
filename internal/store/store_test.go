// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package store

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/recommend"
)

// Helper function to create a test store on a temporary directory
func createTestStore(t *testing.T) (*BadgerStore, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "badger-store-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	st, err := Open(Config{Path: dir}, zerolog.Nop())
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("Failed to open store: %v", err)
	}

	cleanup := func() {
		st.Close()
		os.RemoveAll(dir)
	}
	return st, cleanup
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"path set", Config{Path: "/tmp/x"}, false},
		{"in memory without path", Config{InMemory: true}, false},
		{"missing path", Config{}, true},
		{"negative gc ratio", Config{InMemory: true, GCRatio: -0.1}, true},
		{"gc ratio of one", Config{InMemory: true, GCRatio: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBadgerStore_Items(t *testing.T) {
	st, cleanup := createTestStore(t)
	defer cleanup()
	ctx := context.Background()

	items := []recommend.Item{
		{ID: 12, Name: "Harbor Museum", Category: "museum", AggregateRating: 4.4, ReviewCount: 80},
		{ID: 3, Name: "North Beach", Category: "beach", AggregateRating: 4.8, ReviewCount: 210},
		{ID: 7, Name: "Old Town Park", Category: "park", AggregateRating: 3.9, ReviewCount: 45},
	}
	if err := st.PutItems(ctx, items); err != nil {
		t.Fatalf("PutItems() error = %v", err)
	}

	all, err := st.AllItems(ctx)
	if err != nil {
		t.Fatalf("AllItems() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("AllItems() returned %d items, want 3", len(all))
	}
	wantOrder := []recommend.ItemID{3, 7, 12}
	for i, id := range wantOrder {
		if all[i].ID != id {
			t.Errorf("AllItems()[%d].ID = %d, want %d", i, all[i].ID, id)
		}
	}

	got, err := st.Item(ctx, 7)
	if err != nil {
		t.Fatalf("Item(7) error = %v", err)
	}
	if got.Name != "Old Town Park" || got.ReviewCount != 45 {
		t.Errorf("Item(7) = %+v", got)
	}

	_, err = st.Item(ctx, 99)
	if !errors.Is(err, recommend.ErrItemNotFound) {
		t.Errorf("Item(99) error = %v, want ErrItemNotFound", err)
	}

	n, err := st.CountItems(ctx)
	if err != nil || n != 3 {
		t.Errorf("CountItems() = %d, %v; want 3, nil", n, err)
	}
}

func TestBadgerStore_PutItemsRejectsInvalidID(t *testing.T) {
	st, cleanup := createTestStore(t)
	defer cleanup()

	err := st.PutItems(context.Background(), []recommend.Item{{ID: 0, Name: "nowhere"}})
	if err == nil {
		t.Fatal("PutItems() with id 0 should fail")
	}
}

func TestBadgerStore_Seed(t *testing.T) {
	st, cleanup := createTestStore(t)
	defer cleanup()
	ctx := context.Background()

	seed := `[
		{"id": 1, "name": "Lighthouse", "category": "landmark", "aggregate_rating": 4.5, "review_count": 10},
		{"id": 2, "name": "Fish Market", "category": "market", "aggregate_rating": 4.1, "review_count": 33}
	]`

	n, err := st.Seed(ctx, strings.NewReader(seed))
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Seed() = %d, want 2", n)
	}

	// A populated catalog is never reseeded.
	n, err = st.Seed(ctx, strings.NewReader(`[{"id": 3, "name": "Extra"}]`))
	if err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	if n != 0 {
		t.Errorf("second Seed() = %d, want 0", n)
	}
	if _, err := st.Item(ctx, 3); !errors.Is(err, recommend.ErrItemNotFound) {
		t.Errorf("Item(3) error = %v, want ErrItemNotFound", err)
	}
}

func TestBadgerStore_SeedInvalidJSON(t *testing.T) {
	st, cleanup := createTestStore(t)
	defer cleanup()

	if _, err := st.Seed(context.Background(), strings.NewReader("{not json")); err == nil {
		t.Fatal("Seed() with invalid JSON should fail")
	}
}

func TestBadgerStore_Ratings(t *testing.T) {
	st, cleanup := createTestStore(t)
	defer cleanup()
	ctx := context.Background()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ratings := []recommend.Interaction{
		{UserID: 1, ItemID: 5, Rating: 4, Timestamp: ts},
		{UserID: 1, ItemID: 2, Rating: 2, Timestamp: ts},
		{UserID: 2, ItemID: 5, Rating: 5, Timestamp: ts},
		// User 10 must not leak into user 1's prefix scan.
		{UserID: 10, ItemID: 5, Rating: 3, Timestamp: ts},
	}
	for _, r := range ratings {
		if err := st.UpsertInteraction(ctx, r); err != nil {
			t.Fatalf("UpsertInteraction(%+v) error = %v", r, err)
		}
	}

	got, err := st.UserInteractions(ctx, 1)
	if err != nil {
		t.Fatalf("UserInteractions() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("UserInteractions(1) returned %d ratings, want 2", len(got))
	}
	if got[0].ItemID != 2 || got[1].ItemID != 5 {
		t.Errorf("UserInteractions(1) order = [%d %d], want [2 5]", got[0].ItemID, got[1].ItemID)
	}

	count, err := st.CountUserInteractions(ctx, 1)
	if err != nil || count != 2 {
		t.Errorf("CountUserInteractions(1) = %d, %v; want 2, nil", count, err)
	}

	all, err := st.AllInteractions(ctx)
	if err != nil {
		t.Fatalf("AllInteractions() error = %v", err)
	}
	if len(all) != 4 {
		t.Errorf("AllInteractions() returned %d, want 4", len(all))
	}

	count, err = st.CountUserInteractions(ctx, 42)
	if err != nil || count != 0 {
		t.Errorf("CountUserInteractions(42) = %d, %v; want 0, nil", count, err)
	}
}

func TestBadgerStore_UpsertReplaces(t *testing.T) {
	st, cleanup := createTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if err := st.UpsertInteraction(ctx, recommend.Interaction{UserID: 4, ItemID: 9, Rating: 2}); err != nil {
		t.Fatalf("UpsertInteraction() error = %v", err)
	}
	if err := st.UpsertInteraction(ctx, recommend.Interaction{UserID: 4, ItemID: 9, Rating: 5}); err != nil {
		t.Fatalf("UpsertInteraction() error = %v", err)
	}

	got, err := st.UserInteractions(ctx, 4)
	if err != nil {
		t.Fatalf("UserInteractions() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("UserInteractions() returned %d ratings, want 1", len(got))
	}
	if got[0].Rating != 5 {
		t.Errorf("Rating = %d, want 5", got[0].Rating)
	}
	if got[0].Timestamp.IsZero() {
		t.Error("Timestamp should be set on upsert")
	}
}

func TestBadgerStore_InMemory(t *testing.T) {
	t.Parallel()

	st, err := Open(Config{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.UpsertInteraction(ctx, recommend.Interaction{UserID: 1, ItemID: 1, Rating: 3}); err != nil {
		t.Fatalf("UpsertInteraction() error = %v", err)
	}
	if err := st.RunGC(); err != nil {
		t.Errorf("RunGC() on in-memory store error = %v", err)
	}
}

func TestBadgerStore_Closed(t *testing.T) {
	st, cleanup := createTestStore(t)
	defer cleanup()

	if err := st.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Closing twice is a no-op.
	if err := st.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	ctx := context.Background()
	if _, err := st.AllItems(ctx); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("AllItems() after Close error = %v, want ErrStoreClosed", err)
	}
	if err := st.UpsertInteraction(ctx, recommend.Interaction{UserID: 1, ItemID: 1, Rating: 1}); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("UpsertInteraction() after Close error = %v, want ErrStoreClosed", err)
	}
	if err := st.RunGC(); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("RunGC() after Close error = %v, want ErrStoreClosed", err)
	}
}
