// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clusterindex annotates the recipe dataset with cluster ids and
// partitions it by cluster.
//
// Annotation runs at most once per Index. If every recipe already carries a
// cluster (a dataset exported after a previous annotation), the stored ids
// are used as-is. Otherwise all eight nutrient columns are quartile-binned,
// scaled, and assigned in one batch, and the whole column is published at
// once; readers never observe a partially annotated dataset.
package clusterindex

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/pdiddy/recipe-recommender/internal/binning"
	"github.com/pdiddy/recipe-recommender/internal/model"
	"github.com/pdiddy/recipe-recommender/pkg/types"
)

// ErrEmptyCluster reports a cluster id with no member recipes.
var ErrEmptyCluster = errors.New("empty cluster")

// Index owns the recipe dataset and its cluster partition. It is safe for
// concurrent use.
type Index struct {
	scaler   model.Scaler
	assigner model.Assigner

	mu      sync.Mutex
	ready   atomic.Bool
	recipes []types.Recipe
	members map[int][]int // cluster id -> recipe indexes
	// computed records whether Ensure ran the batch path.
	computed bool
}

// New returns an Index over recipes. The Index takes ownership of the
// slice; callers must not modify it afterwards.
func New(recipes []types.Recipe, scaler model.Scaler, assigner model.Assigner) *Index {
	return &Index{
		scaler:   scaler,
		assigner: assigner,
		recipes:  recipes,
	}
}

// Ensure annotates the dataset if needed and builds the partition. Only the
// first successful call does any work; concurrent callers wait for it. A
// failed call leaves the dataset untouched and may be retried.
func (x *Index) Ensure() error {
	if x.ready.Load() {
		return nil
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if x.ready.Load() {
		return nil
	}

	if !allClustered(x.recipes) {
		ids, err := x.assign()
		if err != nil {
			return err
		}
		for i := range x.recipes {
			k := ids[i]
			x.recipes[i].Cluster = &k
		}
		x.computed = true
	}

	members := make(map[int][]int)
	for i := range x.recipes {
		k := *x.recipes[i].Cluster
		members[k] = append(members[k], i)
	}
	x.members = members
	x.ready.Store(true)
	return nil
}

// assign runs the batch path: bin, scale, predict.
func (x *Index) assign() ([]int, error) {
	vectors := binning.Columns(x.recipes)
	batch := make([][]float64, len(vectors))
	for i, v := range vectors {
		batch[i] = v.Floats()
	}

	scaled, err := x.scaler.Transform(batch)
	if err != nil {
		return nil, fmt.Errorf("scaling dataset: %w", err)
	}
	ids, err := x.assigner.Predict(scaled)
	if err != nil {
		return nil, fmt.Errorf("assigning clusters: %w", err)
	}
	if len(ids) != len(x.recipes) {
		return nil, fmt.Errorf("assigning clusters: got %d ids for %d recipes", len(ids), len(x.recipes))
	}
	return ids, nil
}

func allClustered(recipes []types.Recipe) bool {
	for i := range recipes {
		if !recipes[i].HasCluster() {
			return false
		}
	}
	return true
}

// Computed reports whether cluster ids were computed by this Index rather
// than loaded with the dataset.
func (x *Index) Computed() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.computed
}

// Len returns the number of recipes.
func (x *Index) Len() int {
	return len(x.recipes)
}

// RecipesInCluster returns copies of every recipe assigned to cluster k, in
// dataset order. It fails with ErrEmptyCluster when k has no members.
func (x *Index) RecipesInCluster(k int) ([]types.Recipe, error) {
	if err := x.Ensure(); err != nil {
		return nil, err
	}
	idx := x.members[k]
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: cluster %d has no recipes", ErrEmptyCluster, k)
	}
	out := make([]types.Recipe, len(idx))
	for i, j := range idx {
		out[i] = copyRecipe(x.recipes[j])
	}
	return out, nil
}

// Sizes returns the member count of every cluster.
func (x *Index) Sizes() (map[int]int, error) {
	if err := x.Ensure(); err != nil {
		return nil, err
	}
	sizes := make(map[int]int, len(x.members))
	for k, idx := range x.members {
		sizes[k] = len(idx)
	}
	return sizes, nil
}

// Clusters returns the populated cluster ids in ascending order.
func (x *Index) Clusters() ([]int, error) {
	if err := x.Ensure(); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(x.members))
	for k := range x.members {
		ids = append(ids, k)
	}
	sort.Ints(ids)
	return ids, nil
}

// Recipes returns a copy of the annotated dataset.
func (x *Index) Recipes() ([]types.Recipe, error) {
	if err := x.Ensure(); err != nil {
		return nil, err
	}
	out := make([]types.Recipe, len(x.recipes))
	for i := range x.recipes {
		out[i] = copyRecipe(x.recipes[i])
	}
	return out, nil
}

// copyRecipe detaches the Cluster pointer from the shared dataset.
func copyRecipe(r types.Recipe) types.Recipe {
	if r.Cluster != nil {
		k := *r.Cluster
		r.Cluster = &k
	}
	return r
}
