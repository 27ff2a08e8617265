// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import "testing"

func fiveItemCatalog() []Item {
	return []Item{
		{ID: 3, Name: "three", AggregateRating: 3, ReviewCount: 30},
		{ID: 1, Name: "five", AggregateRating: 5, ReviewCount: 100},
		{ID: 5, Name: "one", AggregateRating: 1, ReviewCount: 1},
		{ID: 2, Name: "four", AggregateRating: 4, ReviewCount: 50},
		{ID: 4, Name: "two", AggregateRating: 2, ReviewCount: 10},
	}
}

func itemIDs(items []Item) []ItemID {
	out := make([]ItemID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestRankByPopularity(t *testing.T) {
	t.Parallel()

	got := RankByPopularity(fiveItemCatalog(), nil, 10)
	want := []ItemID{1, 2, 3, 4, 5}
	if !equalIDs(itemIDs(got), want) {
		t.Errorf("order = %v, want %v", itemIDs(got), want)
	}
}

func TestRankByPopularity_TieBreak(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ID: 9, AggregateRating: 4.5, ReviewCount: 10},
		{ID: 7, AggregateRating: 4.5, ReviewCount: 10},
		{ID: 8, AggregateRating: 4.5, ReviewCount: 90},
	}
	got := RankByPopularity(items, nil, 0)
	want := []ItemID{8, 7, 9}
	if !equalIDs(itemIDs(got), want) {
		t.Errorf("order = %v, want %v", itemIDs(got), want)
	}
}

func TestRankByPopularity_ExcludeAndUnrated(t *testing.T) {
	t.Parallel()

	items := append(fiveItemCatalog(), Item{ID: 6, Name: "unrated"})
	got := RankByPopularity(items, map[ItemID]struct{}{1: {}, 4: {}}, 0)
	want := []ItemID{2, 3, 5, 6}
	if !equalIDs(itemIDs(got), want) {
		t.Errorf("order = %v, want %v", itemIDs(got), want)
	}
}

func TestRankByPopularity_UnratedCatalog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []Item
		limit int
		want  []ItemID
	}{
		{
			name:  "partly rated",
			items: []Item{{ID: 3}, {ID: 1, AggregateRating: 4}, {ID: 2}},
			limit: 10,
			want:  []ItemID{1, 2, 3},
		},
		{
			name:  "nothing rated",
			items: []Item{{ID: 2}, {ID: 1, ReviewCount: 0}},
			limit: 10,
			want:  []ItemID{1, 2},
		},
		{
			name:  "review count orders unrated",
			items: []Item{{ID: 1}, {ID: 2, ReviewCount: 3}},
			limit: 1,
			want:  []ItemID{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RankByPopularity(tt.items, nil, tt.limit)
			if !equalIDs(itemIDs(got), tt.want) {
				t.Errorf("order = %v, want %v", itemIDs(got), tt.want)
			}
		})
	}
}

func TestRankByPopularity_Limit(t *testing.T) {
	t.Parallel()

	got := RankByPopularity(fiveItemCatalog(), nil, 2)
	if !equalIDs(itemIDs(got), []ItemID{1, 2}) {
		t.Errorf("order = %v, want [1 2]", itemIDs(got))
	}
}

func TestRankByPopularity_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	items := fiveItemCatalog()
	_ = RankByPopularity(items, nil, 0)
	if items[0].ID != 3 {
		t.Error("RankByPopularity() reordered its input")
	}
}
