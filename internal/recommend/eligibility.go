// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

// Gate classifies users by interaction count. It holds no mutable state and
// is safe for concurrent use.
type Gate struct {
	minForHybrid int
	tiers        []AlphaTier
}

// NewGate creates a gate from a validated configuration.
func NewGate(minForHybrid int, tiers []AlphaTier) Gate {
	t := make([]AlphaTier, len(tiers))
	copy(t, tiers)
	return Gate{minForHybrid: minForHybrid, tiers: t}
}

// Decision is the outcome of Gate.Classify.
type Decision struct {
	Strategy Strategy

	// Alpha is only meaningful for StrategyHybrid.
	Alpha float64
}

// Classify picks a strategy and alpha for a user with count interactions.
func (g Gate) Classify(count int) Decision {
	switch {
	case count <= 0:
		return Decision{Strategy: StrategyPopularity}
	case count < g.minForHybrid:
		return Decision{Strategy: StrategyContentOnly}
	default:
		return Decision{Strategy: StrategyHybrid, Alpha: g.alpha(count)}
	}
}

// alpha returns the tier alpha for count. Counts beyond the last tier use the
// last tier's alpha.
func (g Gate) alpha(count int) float64 {
	for _, t := range g.tiers {
		if count <= t.MaxRatings {
			return t.Alpha
		}
	}
	return g.tiers[len(g.tiers)-1].Alpha
}

// MinForHybrid returns the hybrid eligibility threshold.
func (g Gate) MinForHybrid() int {
	return g.minForHybrid
}

// Eligibility builds the caller-facing eligibility summary.
func (g Gate) Eligibility(userID UserID, count int) Eligibility {
	d := g.Classify(count)
	needed := g.minForHybrid - count
	if needed < 0 {
		needed = 0
	}
	return Eligibility{
		UserID:          userID,
		Strategy:        d.Strategy,
		Alpha:           d.Alpha,
		Eligible:        d.Strategy == StrategyHybrid,
		RatingsCount:    count,
		MinimumRequired: g.minForHybrid,
		RatingsNeeded:   needed,
	}
}
