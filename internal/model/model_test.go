// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/recipe-recommender/pkg/types"
)

func ones(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestStandardScalerTransform(t *testing.T) {
	sc, err := NewStandardScaler([]float64{1, 2}, []float64{2, 0.5})
	require.NoError(t, err)

	in := [][]float64{{3, 2}, {1, 3}}
	out, err := sc.Transform(in)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0}, {0, 2}}, out)
	assert.Equal(t, [][]float64{{3, 2}, {1, 3}}, in, "input must not be modified")

	_, err = sc.Transform([][]float64{{1, 2, 3}})
	assert.Error(t, err)
}

func TestNewStandardScalerRejectsBadShapes(t *testing.T) {
	_, err := NewStandardScaler(nil, nil)
	assert.Error(t, err)
	_, err = NewStandardScaler([]float64{1, 2}, []float64{1})
	assert.Error(t, err)
	_, err = NewStandardScaler([]float64{1, 2}, []float64{1, 0})
	assert.Error(t, err)
}

func TestKMeansPredict(t *testing.T) {
	km, err := NewKMeans([][]float64{{0, 0}, {10, 10}, {0, 10}})
	require.NoError(t, err)
	assert.Equal(t, 3, km.K())

	ids, err := km.Predict([][]float64{{1, 1}, {9, 8}, {-1, 9}, {5, 5}})
	require.NoError(t, err)
	// {5,5} is equidistant from all three; the lowest index wins.
	assert.Equal(t, []int{0, 1, 2, 0}, ids)

	_, err = km.Predict([][]float64{{1}})
	assert.Error(t, err)
}

func TestKMeansPredictIsDeterministic(t *testing.T) {
	km, err := NewKMeans([][]float64{{0, 0}, {1, 1}})
	require.NoError(t, err)
	row := [][]float64{{0.4, 0.7}}
	a, err := km.Predict(row)
	require.NoError(t, err)
	b, err := km.Predict(row)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNewKMeansRejectsRaggedCentroids(t *testing.T) {
	_, err := NewKMeans(nil)
	assert.Error(t, err)
	_, err = NewKMeans([][]float64{{1, 2}, {3}})
	assert.Error(t, err)
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(types.ModelConfig{Dir: filepath.Join(t.TempDir(), "models")})

	require.NoError(t, store.WriteScaler("scaler_diet", ones(8, 2.5), ones(8, 1.1)))
	require.NoError(t, store.WriteAssigner("kmeans_model_diet", [][]float64{ones(8, -1), ones(8, 1)}))

	sc, err := store.LoadScaler("scaler_diet")
	require.NoError(t, err)
	assert.Equal(t, 8, sc.Dim())

	km, err := store.LoadAssigner("kmeans_model_diet")
	require.NoError(t, err)
	assert.Equal(t, 2, km.K())
}

func TestStoreLoadErrors(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(types.ModelConfig{Dir: dir})
	write := func(name, body string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(body), 0o644))
	}

	order := `feature_order: [Calories, FatContent, CholesterolContent, SodiumContent, CarbohydrateContent, FiberContent, SugarContent, ProteinContent]
category_table_version: 1
`
	write("wrong_kind", "kind: kmeans\n"+order+"centroids: [[0,0,0,0,0,0,0,0]]\n")
	write("bad_yaml", "kind: [unterminated\n")
	write("old_table", "kind: standard_scaler\nfeature_order: [Calories, FatContent, CholesterolContent, SodiumContent, CarbohydrateContent, FiberContent, SugarContent, ProteinContent]\ncategory_table_version: 0\nmean: [0,0,0,0,0,0,0,0]\nscale: [1,1,1,1,1,1,1,1]\n")
	write("swapped", "kind: standard_scaler\nfeature_order: [FatContent, Calories, CholesterolContent, SodiumContent, CarbohydrateContent, FiberContent, SugarContent, ProteinContent]\ncategory_table_version: 1\nmean: [0,0,0,0,0,0,0,0]\nscale: [1,1,1,1,1,1,1,1]\n")
	write("short", "kind: standard_scaler\n"+order+"mean: [0,0]\nscale: [1,1]\n")
	write("zero_scale", "kind: standard_scaler\n"+order+"mean: [0,0,0,0,0,0,0,0]\nscale: [1,1,1,0,1,1,1,1]\n")

	tests := []struct {
		name    string
		wantMsg string
	}{
		{"missing", "reading"},
		{"wrong_kind", "kind"},
		{"bad_yaml", "parsing"},
		{"old_table", "category table version"},
		{"swapped", "feature 0 is FatContent"},
		{"short", "columns"},
		{"zero_scale", "zero scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.LoadScaler(tt.name)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrModelLoad)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestStoreLoadAssignerDimensionMismatch(t *testing.T) {
	store := NewStore(types.ModelConfig{Dir: t.TempDir()})
	require.NoError(t, store.WriteAssigner("tiny", [][]float64{{0, 1}}))

	_, err := store.LoadAssigner("tiny")
	assert.ErrorIs(t, err, ErrModelLoad)
}
