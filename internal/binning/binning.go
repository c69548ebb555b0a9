// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package binning discretizes continuous nutrient columns into ordinal
// quartile bins. Bin indexes share the integer domain of
// types.NutrientCategory (1 = lowest quartile).
package binning

import (
	"math"
	"sort"

	"github.com/pdiddy/recipe-recommender/pkg/types"
)

// quartiles are the quantile levels of the bin edges.
var quartiles = []float64{0, 0.25, 0.5, 0.75, 1}

// Edges returns the quartile edges of values with duplicate edges removed.
// Quantiles use linear interpolation between order statistics. The result
// has at most five strictly increasing values; nil for empty input.
func Edges(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	edges := make([]float64, 0, len(quartiles))
	for _, q := range quartiles {
		e := quantile(sorted, q)
		if len(edges) > 0 && e <= edges[len(edges)-1] {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Quartiles labels each value with its quartile bin, 1 through 4, in input
// order. Bins are right-closed and the first bin includes the minimum.
//
// When repeated values collapse quartile edges, the degenerate edges are
// dropped and labels run 1..k for the k remaining bins, so a skewed column
// may use fewer than four labels. A constant column is labelled 1
// throughout.
func Quartiles(values []float64) []int {
	edges := Edges(values)
	labels := make([]int, len(values))
	if len(edges) < 2 {
		for i := range labels {
			labels[i] = 1
		}
		return labels
	}

	upper := edges[1:]
	for i, v := range values {
		// First bin whose upper edge is >= v.
		j := sort.SearchFloat64s(upper, v)
		if j >= len(upper) {
			j = len(upper) - 1
		}
		labels[i] = j + 1
	}
	return labels
}

// Columns bins each nutrient column of recipes independently and assembles
// one FeatureVector per recipe, in types.FeatureOrder.
func Columns(recipes []types.Recipe) []types.FeatureVector {
	vectors := make([]types.FeatureVector, len(recipes))
	column := make([]float64, len(recipes))

	for col, n := range types.FeatureOrder {
		for i := range recipes {
			column[i] = recipes[i].Nutrient(n)
		}
		for i, label := range Quartiles(column) {
			vectors[i][col] = label
		}
	}
	return vectors
}
