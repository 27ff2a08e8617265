// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

// neutralScore is assigned to every entry of a map whose values are all equal.
const neutralScore = 0.5

// Normalize rescales scores to [0, 1] using min-max normalization.
// When every value is equal (including a single entry) all values map to 0.5.
// The input is not modified.
func Normalize(scores ScoreMap) ScoreMap {
	out := make(ScoreMap, len(scores))
	if len(scores) == 0 {
		return out
	}

	var minScore, maxScore float64
	first := true
	for _, s := range scores {
		if first {
			minScore, maxScore = s, s
			first = false
			continue
		}
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
	}

	rang := maxScore - minScore
	if rang == 0 {
		for id := range scores {
			out[id] = neutralScore
		}
		return out
	}

	for id, s := range scores {
		v := (s - minScore) / rang
		// Guard rounding at the edges.
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		out[id] = v
	}
	return out
}
