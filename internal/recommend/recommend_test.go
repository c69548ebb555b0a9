// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/recipe-recommender/internal/clusterindex"
	"github.com/pdiddy/recipe-recommender/internal/features"
	"github.com/pdiddy/recipe-recommender/internal/model"
	"github.com/pdiddy/recipe-recommender/pkg/types"
)

// --- fixtures ---

// testModels returns an identity scaler and a k-means model whose four
// centroids are the uniform bin vectors 1..4, so a profile whose bins are
// all b lands in cluster b-1.
func testModels(t *testing.T) (*model.StandardScaler, *model.KMeans) {
	t.Helper()
	mean := make([]float64, types.NumNutrients)
	scale := make([]float64, types.NumNutrients)
	for i := range scale {
		scale[i] = 1
	}
	sc, err := model.NewStandardScaler(mean, scale)
	require.NoError(t, err)

	centroids := make([][]float64, 4)
	for c := range centroids {
		centroids[c] = make([]float64, types.NumNutrients)
		for j := range centroids[c] {
			centroids[c][j] = float64(c + 1)
		}
	}
	km, err := model.NewKMeans(centroids)
	require.NoError(t, err)
	return sc, km
}

// uniformRecipes returns n recipes whose nutrients all equal the row index,
// so every column bins identically.
func uniformRecipes(n int) []types.Recipe {
	out := make([]types.Recipe, n)
	for i := range out {
		out[i].ID = int64(1000 + i)
		out[i].Name = "recipe"
		for _, nut := range types.FeatureOrder {
			out[i].SetNutrient(nut, float64(i))
		}
	}
	return out
}

func seeded(seed uint64) Option {
	return WithSource(rand.NewPCG(seed, seed+1))
}

type countingAssigner struct {
	model.Assigner
	calls atomic.Int32
}

func (c *countingAssigner) Predict(batch [][]float64) ([]int, error) {
	c.calls.Add(1)
	return c.Assigner.Predict(batch)
}

type fixedAssigner int

func (f fixedAssigner) Predict(batch [][]float64) ([]int, error) {
	ids := make([]int, len(batch))
	for i := range ids {
		ids[i] = int(f)
	}
	return ids, nil
}

func preclustered(sizes map[int]int) []types.Recipe {
	var out []types.Recipe
	id := int64(1)
	for k, n := range sizes {
		for i := 0; i < n; i++ {
			c := k
			out = append(out, types.Recipe{ID: id, Name: "r", Cluster: &c})
			id++
		}
	}
	return out
}

// --- tests ---

func TestRecommendAllMedium(t *testing.T) {
	sc, km := testModels(t)
	index := clusterindex.New(uniformRecipes(100), sc, km)
	r := New(index, sc, km, seeded(1))

	res, err := r.Recommend(features.Uniform("Medium"), 3)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Cluster)
	require.Len(t, res.Recipes, 3)
	seen := map[int64]bool{}
	for _, rec := range res.Recipes {
		k, ok := rec.ClusterID()
		require.True(t, ok)
		assert.Equal(t, res.Cluster, k)
		assert.False(t, seen[rec.ID], "duplicate recipe %d", rec.ID)
		seen[rec.ID] = true
	}

	sizes, err := index.Sizes()
	require.NoError(t, err)
	assert.Len(t, sizes, 4)
	for _, n := range sizes {
		assert.GreaterOrEqual(t, n, 3)
	}
}

func TestRecommendNeverReturnsDuplicates(t *testing.T) {
	sc, km := testModels(t)
	r := New(clusterindex.New(uniformRecipes(40), sc, km), sc, km, seeded(7))

	for i := 0; i < 200; i++ {
		res, err := r.Recommend(features.Uniform("Very High"), 10)
		require.NoError(t, err)
		seen := map[int64]bool{}
		for _, rec := range res.Recipes {
			require.False(t, seen[rec.ID], "duplicate recipe %d in draw %d", rec.ID, i)
			seen[rec.ID] = true
		}
	}
}

func TestRecommendUsesDefaultSampleSize(t *testing.T) {
	sc, km := testModels(t)
	index := clusterindex.New(uniformRecipes(100), sc, km)

	res, err := New(index, sc, km, seeded(1)).Recommend(features.Uniform("Low"), 0)
	require.NoError(t, err)
	assert.Len(t, res.Recipes, DefaultSampleSize)

	r := New(index, sc, km, seeded(1), WithSampleSize(5))
	assert.Equal(t, 5, r.SampleSize())
	res, err = r.Recommend(features.Uniform("Low"), 0)
	require.NoError(t, err)
	assert.Len(t, res.Recipes, 5)
}

func TestAssignClusterIsDeterministic(t *testing.T) {
	sc, km := testModels(t)
	index := clusterindex.New(uniformRecipes(100), sc, km)
	a := New(index, sc, km, seeded(1))
	b := New(index, sc, km, seeded(99))

	q := features.Uniform("High")
	q[types.SodiumContent] = "Low"

	for i := 0; i < 5; i++ {
		ra, err := a.Recommend(q, 3)
		require.NoError(t, err)
		rb, err := b.Recommend(q, 3)
		require.NoError(t, err)
		assert.Equal(t, ra.Cluster, rb.Cluster)
	}
}

func TestRecommendSeededDrawsRepeat(t *testing.T) {
	sc, km := testModels(t)
	index := clusterindex.New(uniformRecipes(100), sc, km)

	first, err := New(index, sc, km, seeded(42)).Recommend(features.Uniform("Medium"), 3)
	require.NoError(t, err)
	second, err := New(index, sc, km, seeded(42)).Recommend(features.Uniform("Medium"), 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRecommendInvalidCategoryLeavesStateUnchanged(t *testing.T) {
	sc, km := testModels(t)
	counting := &countingAssigner{Assigner: km}
	index := clusterindex.New(uniformRecipes(100), sc, counting)
	r := New(index, sc, counting, seeded(1))

	q := features.Uniform("Medium")
	q[types.FatContent] = "Extreme"

	_, err := r.Recommend(q, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, features.ErrInvalidCategory)
	assert.True(t, IsInputError(err))
	assert.True(t, IsRequestError(err))

	assert.Equal(t, int32(0), counting.calls.Load(), "no model call for a rejected query")
	assert.False(t, index.Computed())
}

func TestRecommendMissingNutrient(t *testing.T) {
	sc, km := testModels(t)
	r := New(clusterindex.New(uniformRecipes(100), sc, km), sc, km)

	q := features.Uniform("Medium")
	delete(q, types.FiberContent)

	_, err := r.Recommend(q, 3)
	assert.ErrorIs(t, err, features.ErrMissingNutrient)
}

func TestRecommendInsufficientPoolSize(t *testing.T) {
	sc, _ := testModels(t)
	data := preclustered(map[int]int{0: 2, 1: 10})
	index := clusterindex.New(data, sc, fixedAssigner(0))
	r := New(index, sc, fixedAssigner(0), seeded(1))

	_, err := r.Recommend(features.Uniform("Low"), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientPoolSize)
	assert.True(t, IsRequestError(err))
	assert.False(t, IsInputError(err))

	var pe *PoolSizeError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, PoolSizeError{Cluster: 0, Available: 2, Requested: 3}, *pe)

	// Exactly the pool size is fine.
	res, err := r.Recommend(features.Uniform("Low"), 2)
	require.NoError(t, err)
	assert.Len(t, res.Recipes, 2)
}

func TestRecommendEmptyCluster(t *testing.T) {
	sc, _ := testModels(t)
	data := preclustered(map[int]int{0: 5})
	r := New(clusterindex.New(data, sc, fixedAssigner(9)), sc, fixedAssigner(9))

	_, err := r.Recommend(features.Uniform("Low"), 3)
	assert.ErrorIs(t, err, clusterindex.ErrEmptyCluster)
	assert.True(t, IsRequestError(err))
}

func TestRecommendConcurrent(t *testing.T) {
	sc, km := testModels(t)
	r := New(clusterindex.New(uniformRecipes(100), sc, km), sc, km, seeded(3))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := r.Recommend(features.Uniform("High"), 3)
			assert.NoError(t, err)
			assert.Equal(t, 2, res.Cluster)
		}()
	}
	wg.Wait()
}

func TestIsRequestErrorRejectsOtherErrors(t *testing.T) {
	assert.False(t, IsRequestError(errors.New("disk on fire")))
	assert.False(t, IsRequestError(nil))
}
