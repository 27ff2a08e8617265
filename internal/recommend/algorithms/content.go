// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package algorithms

import (
	"fmt"

	"github.com/tomtom215/wayfarer/internal/recommend"
)

// ContentSimilarity scores places by their similarity to places a user liked.
//
// The matrix is a dense, row-major n x n cosine similarity matrix whose row
// and column i belong to index[i]. A user's score for place j is
//
//	score(j) = sum over liked i of M[i][j]
//
// Liked places are a boolean set; repeated or stronger ratings do not add
// weight.
type ContentSimilarity struct {
	base

	n      int
	data   []float64
	index  []recommend.ItemID
	lookup map[recommend.ItemID]int
}

// NewContentSimilarity builds a scorer over a row-major n x n matrix.
// len(index) must equal n and len(data) must equal n*n; duplicate IDs in the
// index are rejected.
func NewContentSimilarity(index []recommend.ItemID, data []float64, version string) (*ContentSimilarity, error) {
	n := len(index)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty similarity index", recommend.ErrArtifactShapeMismatch)
	}
	if len(data) != n*n {
		return nil, fmt.Errorf("%w: matrix has %d values, want %d (%dx%d)",
			recommend.ErrArtifactShapeMismatch, len(data), n*n, n, n)
	}

	lookup := make(map[recommend.ItemID]int, n)
	for i, id := range index {
		if _, dup := lookup[id]; dup {
			return nil, fmt.Errorf("%w: duplicate item %d in similarity index",
				recommend.ErrArtifactShapeMismatch, id)
		}
		lookup[id] = i
	}

	ids := make([]recommend.ItemID, n)
	copy(ids, index)

	return &ContentSimilarity{
		base:   newBase("content", version),
		n:      n,
		data:   data,
		index:  ids,
		lookup: lookup,
	}, nil
}

// Size returns the matrix dimension.
func (c *ContentSimilarity) Size() int {
	return c.n
}

// Similarity returns M[a][b] and whether both places are in the matrix.
func (c *ContentSimilarity) Similarity(a, b recommend.ItemID) (float64, bool) {
	i, ok := c.lookup[a]
	if !ok {
		return 0, false
	}
	j, ok := c.lookup[b]
	if !ok {
		return 0, false
	}
	return c.data[i*c.n+j], true
}

// Score implements recommend.ContentScorer. Liked places without a matrix
// row are skipped. ok is false when liked is empty.
func (c *ContentSimilarity) Score(liked, exclude map[recommend.ItemID]struct{}) (recommend.ScoreMap, bool) {
	if len(liked) == 0 {
		return nil, false
	}

	acc := make([]float64, c.n)
	for id := range liked {
		row, ok := c.lookup[id]
		if !ok {
			continue
		}
		offset := row * c.n
		for j := 0; j < c.n; j++ {
			acc[j] += c.data[offset+j]
		}
	}

	scores := make(recommend.ScoreMap, c.n)
	for j, id := range c.index {
		if _, skip := exclude[id]; skip {
			continue
		}
		scores[id] = acc[j]
	}
	return scores, true
}
