// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package model loads the fitted scaler and clustering model that map
// nutrient feature vectors to cluster ids.
//
// Artifacts are YAML files named <name>.yaml in a model directory. Each
// records the feature order and category table version it was fit with;
// loading fails with ErrModelLoad when either disagrees with pkg/types.
package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrModelLoad reports a missing, unreadable, or inconsistent artifact.
var ErrModelLoad = errors.New("model load failed")

// Scaler transforms raw feature rows into the space the clustering model
// was fit in.
type Scaler interface {
	Transform(batch [][]float64) ([][]float64, error)
}

// Assigner maps scaled feature rows to cluster ids.
type Assigner interface {
	Predict(batch [][]float64) ([]int, error)
}

// StandardScaler standardizes each column: (x - mean) / scale.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

// NewStandardScaler returns a scaler over len(mean) columns. Every scale
// value must be non-zero.
func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 {
		return nil, fmt.Errorf("scaler has no columns")
	}
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("scaler mean has %d columns, scale has %d", len(mean), len(scale))
	}
	for i, s := range scale {
		if s == 0 {
			return nil, fmt.Errorf("scaler column %d has zero scale", i)
		}
	}
	return &StandardScaler{
		mean:  append([]float64(nil), mean...),
		scale: append([]float64(nil), scale...),
	}, nil
}

// Dim returns the number of columns the scaler accepts.
func (s *StandardScaler) Dim() int { return len(s.mean) }

// Transform returns a new scaled batch; the input is not modified.
func (s *StandardScaler) Transform(batch [][]float64) ([][]float64, error) {
	out := make([][]float64, len(batch))
	for i, row := range batch {
		if len(row) != len(s.mean) {
			return nil, fmt.Errorf("row %d has %d columns, scaler expects %d", i, len(row), len(s.mean))
		}
		scaled := floats.SubTo(make([]float64, len(row)), row, s.mean)
		floats.Div(scaled, s.scale)
		out[i] = scaled
	}
	return out, nil
}

// KMeans assigns each row to its nearest centroid by Euclidean distance.
// Ties go to the lower centroid index.
type KMeans struct {
	centroids *mat.Dense
}

// NewKMeans returns a model over the given centroids, which must all share
// one dimension.
func NewKMeans(centroids [][]float64) (*KMeans, error) {
	if len(centroids) == 0 {
		return nil, fmt.Errorf("kmeans has no centroids")
	}
	dim := len(centroids[0])
	if dim == 0 {
		return nil, fmt.Errorf("kmeans centroids are empty")
	}
	m := mat.NewDense(len(centroids), dim, nil)
	for i, c := range centroids {
		if len(c) != dim {
			return nil, fmt.Errorf("centroid %d has %d columns, want %d", i, len(c), dim)
		}
		m.SetRow(i, c)
	}
	return &KMeans{centroids: m}, nil
}

// K returns the number of clusters.
func (m *KMeans) K() int {
	k, _ := m.centroids.Dims()
	return k
}

// Dim returns the number of columns the model accepts.
func (m *KMeans) Dim() int {
	_, d := m.centroids.Dims()
	return d
}

// Predict returns one cluster id per row.
func (m *KMeans) Predict(batch [][]float64) ([]int, error) {
	k, dim := m.centroids.Dims()
	ids := make([]int, len(batch))
	for i, row := range batch {
		if len(row) != dim {
			return nil, fmt.Errorf("row %d has %d columns, model expects %d", i, len(row), dim)
		}
		best, bestDist := 0, math.Inf(1)
		for c := 0; c < k; c++ {
			if d := floats.Distance(row, m.centroids.RawRowView(c), 2); d < bestDist {
				best, bestDist = c, d
			}
		}
		ids[i] = best
	}
	return ids, nil
}
