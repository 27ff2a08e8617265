// Wayfarer - Point of Interest Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package artifact

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/sbinet/npyio"

	"github.com/tomtom215/wayfarer/internal/recommend"
	"github.com/tomtom215/wayfarer/internal/recommend/algorithms"
)

// SimilarityIndex is the catalog snapshot the similarity matrix was built
// from. Row and column i of the matrix belong to the i-th place.
type SimilarityIndex struct {
	Version string `json:"version"`

	// ItemIDs lists place IDs in matrix order.
	ItemIDs []int64 `json:"item_ids,omitempty"`

	// Places is the alternative full snapshot form; only IDs are used and
	// only when ItemIDs is empty.
	Places []struct {
		ID int64 `json:"id"`
	} `json:"places,omitempty"`
}

// IDs returns the place IDs in matrix order.
func (s *SimilarityIndex) IDs() []recommend.ItemID {
	if len(s.ItemIDs) > 0 {
		out := make([]recommend.ItemID, len(s.ItemIDs))
		for i, id := range s.ItemIDs {
			out[i] = recommend.ItemID(id)
		}
		return out
	}
	out := make([]recommend.ItemID, len(s.Places))
	for i, p := range s.Places {
		out[i] = recommend.ItemID(p.ID)
	}
	return out
}

// ReadSimilarityIndex decodes a snapshot from r.
func ReadSimilarityIndex(r io.Reader) (*SimilarityIndex, error) {
	var idx SimilarityIndex
	if err := json.NewDecoder(r).Decode(&idx); err != nil {
		return nil, fmt.Errorf("decode similarity index: %w", err)
	}
	return &idx, nil
}

// ReadMatrix decodes a 2-D float .npy array from r and returns its
// row-major values with the shape.
func ReadMatrix(r io.Reader) (data []float64, rows, cols int, err error) {
	npy, err := npyio.NewReader(r)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("read npy header: %w", err)
	}

	shape := npy.Header.Descr.Shape
	if len(shape) != 2 {
		return nil, 0, 0, fmt.Errorf("%w: matrix must be 2-D, got shape %v",
			recommend.ErrArtifactShapeMismatch, shape)
	}
	rows, cols = shape[0], shape[1]

	switch npy.Header.Descr.Type {
	case "<f8", "f8", "float64":
		if err := npy.Read(&data); err != nil {
			return nil, 0, 0, fmt.Errorf("read npy data: %w", err)
		}
	case "<f4", "f4", "float32":
		var f32 []float32
		if err := npy.Read(&f32); err != nil {
			return nil, 0, 0, fmt.Errorf("read npy data: %w", err)
		}
		data = make([]float64, len(f32))
		for i, v := range f32 {
			data[i] = float64(v)
		}
	default:
		return nil, 0, 0, fmt.Errorf("unsupported npy dtype %q", npy.Header.Descr.Type)
	}

	if len(data) != rows*cols {
		return nil, 0, 0, fmt.Errorf("%w: npy holds %d values for shape %dx%d",
			recommend.ErrArtifactShapeMismatch, len(data), rows, cols)
	}
	if npy.Header.Descr.Fortran {
		data = transpose(data, rows, cols)
	}
	return data, rows, cols, nil
}

// transpose converts column-major data of a rows x cols matrix to row-major.
func transpose(data []float64, rows, cols int) []float64 {
	out := make([]float64, len(data))
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			out[r*cols+c] = data[c*rows+r]
		}
	}
	return out
}

// LoadSimilarity reads the matrix and its index snapshot and builds a
// content scorer. The matrix must be square with one row per indexed place;
// anything else fails with recommend.ErrArtifactShapeMismatch.
func LoadSimilarity(matrixPath, indexPath string) (*algorithms.ContentSimilarity, error) {
	idxFile, err := os.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("open similarity index: %w", err)
	}
	defer idxFile.Close()

	index, err := ReadSimilarityIndex(idxFile)
	if err != nil {
		return nil, err
	}

	mFile, err := os.Open(matrixPath)
	if err != nil {
		return nil, fmt.Errorf("open similarity matrix: %w", err)
	}
	defer mFile.Close()

	data, rows, cols, err := ReadMatrix(mFile)
	if err != nil {
		return nil, err
	}

	ids := index.IDs()
	if rows != cols || rows != len(ids) {
		return nil, fmt.Errorf("%w: matrix is %dx%d but index lists %d places",
			recommend.ErrArtifactShapeMismatch, rows, cols, len(ids))
	}

	return algorithms.NewContentSimilarity(ids, data, index.Version)
}
