// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import "sort"

// RankByPopularity orders items by aggregate rating, then review count, then
// ID, drops excluded items, and truncates to limit. Unrated items sort last.
// A non-positive limit returns every remaining item.
func RankByPopularity(items []Item, exclude map[ItemID]struct{}, limit int) []Item {
	out := make([]Item, 0, len(items))
	for i := range items {
		if _, ok := exclude[items[i].ID]; ok {
			continue
		}
		out = append(out, items[i])
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		if a.AggregateRating != b.AggregateRating {
			return a.AggregateRating > b.AggregateRating
		}
		if a.ReviewCount != b.ReviewCount {
			return a.ReviewCount > b.ReviewCount
		}
		return a.ID < b.ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
