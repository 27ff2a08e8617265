// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import "sort"

// Blended is one ranked candidate produced by Blend.
type Blended struct {
	ID           ItemID
	Score        float64
	ContentScore float64
	CollabScore  float64
	Source       Source
}

// BlendInput holds the inputs of a single blend. Content and Collab must
// already be normalized; either may be nil.
type BlendInput struct {
	Content ScoreMap
	Collab  ScoreMap

	// Alpha weights the collaborative score; 1-Alpha weights content.
	Alpha float64

	Exclude map[ItemID]struct{}
	TopN    int

	// Ratings supplies aggregate ratings for tie-breaking equal scores.
	// Missing entries count as 0.
	Ratings map[ItemID]float64
}

// Blend unions both score maps, applies the alpha-weighted combination and
// returns at most TopN candidates ordered by score, then aggregate rating,
// then ID. A candidate scored by only one signal gets 0 for the other.
func Blend(in BlendInput) []Blended {
	if len(in.Content) == 0 && len(in.Collab) == 0 {
		return []Blended{}
	}

	out := make([]Blended, 0, len(in.Content)+len(in.Collab))
	seen := make(map[ItemID]struct{}, len(in.Content)+len(in.Collab))

	add := func(id ItemID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		if _, excluded := in.Exclude[id]; excluded {
			return
		}

		content, hasContent := in.Content[id]
		collab, hasCollab := in.Collab[id]

		src := SourceBoth
		switch {
		case hasContent && !hasCollab:
			src = SourceContent
		case hasCollab && !hasContent:
			src = SourceCollaborative
		}

		out = append(out, Blended{
			ID:           id,
			Score:        in.Alpha*collab + (1-in.Alpha)*content,
			ContentScore: content,
			CollabScore:  collab,
			Source:       src,
		})
	}

	for id := range in.Content {
		add(id)
	}
	for id := range in.Collab {
		add(id)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		ri, rj := in.Ratings[out[i].ID], in.Ratings[out[j].ID]
		if ri != rj {
			return ri > rj
		}
		return out[i].ID < out[j].ID
	})

	if in.TopN >= 0 && len(out) > in.TopN {
		out = out[:in.TopN]
	}
	return out
}
