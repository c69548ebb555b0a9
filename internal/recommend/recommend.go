// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recommend maps a nutrient query to a cluster and samples recipes
// from that cluster.
package recommend

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pdiddy/recipe-recommender/internal/clusterindex"
	"github.com/pdiddy/recipe-recommender/internal/features"
	"github.com/pdiddy/recipe-recommender/internal/model"
	"github.com/pdiddy/recipe-recommender/pkg/types"
)

// DefaultSampleSize is the number of recipes returned when no size is given.
const DefaultSampleSize = 3

// ErrInsufficientPoolSize reports a cluster with fewer members than the
// requested sample size.
var ErrInsufficientPoolSize = errors.New("insufficient pool size")

// PoolSizeError carries the sizes behind ErrInsufficientPoolSize.
type PoolSizeError struct {
	Cluster   int
	Available int
	Requested int
}

func (e *PoolSizeError) Error() string {
	return fmt.Sprintf("%v: cluster %d has %d recipes, %d requested",
		ErrInsufficientPoolSize, e.Cluster, e.Available, e.Requested)
}

func (e *PoolSizeError) Unwrap() error { return ErrInsufficientPoolSize }

// Result is one recommendation.
type Result struct {
	Cluster int            `json:"cluster"`
	Recipes []types.Recipe `json:"recipes"`
}

// Recommender is safe for concurrent use.
type Recommender struct {
	index      *clusterindex.Index
	scaler     model.Scaler
	assigner   model.Assigner
	sampleSize int

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithSource sets the random source used for sampling. Tests pass a seeded
// source for repeatable draws.
func WithSource(src rand.Source) Option {
	return func(r *Recommender) { r.rng = rand.New(src) }
}

// WithSampleSize sets the default sample size. Values <= 0 are ignored.
func WithSampleSize(n int) Option {
	return func(r *Recommender) {
		if n > 0 {
			r.sampleSize = n
		}
	}
}

// New returns a Recommender over an index that shares its scaler and
// assigner.
func New(index *clusterindex.Index, scaler model.Scaler, assigner model.Assigner, opts ...Option) *Recommender {
	r := &Recommender{
		index:      index,
		scaler:     scaler,
		assigner:   assigner,
		sampleSize: DefaultSampleSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		seed := uint64(time.Now().UnixNano())
		r.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return r
}

// SampleSize returns the default sample size.
func (r *Recommender) SampleSize() int { return r.sampleSize }

// AssignCluster encodes q and returns the cluster the model assigns it to.
// The result depends only on q and the fitted models.
func (r *Recommender) AssignCluster(q types.NutrientQuery) (int, error) {
	vec, err := features.Vectorize(q)
	if err != nil {
		return 0, err
	}
	scaled, err := r.scaler.Transform([][]float64{vec.Floats()})
	if err != nil {
		return 0, fmt.Errorf("scaling query: %w", err)
	}
	ids, err := r.assigner.Predict(scaled)
	if err != nil {
		return 0, fmt.Errorf("assigning query: %w", err)
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("assigning query: got %d cluster ids", len(ids))
	}
	return ids[0], nil
}

// Recommend assigns q to a cluster and draws sampleSize distinct recipes
// from it uniformly at random. A sampleSize <= 0 uses the configured
// default. Order of the returned recipes carries no meaning.
func (r *Recommender) Recommend(q types.NutrientQuery, sampleSize int) (Result, error) {
	if sampleSize <= 0 {
		sampleSize = r.sampleSize
	}

	k, err := r.AssignCluster(q)
	if err != nil {
		return Result{}, err
	}

	pool, err := r.index.RecipesInCluster(k)
	if err != nil {
		return Result{}, err
	}
	if len(pool) < sampleSize {
		return Result{}, &PoolSizeError{Cluster: k, Available: len(pool), Requested: sampleSize}
	}

	return Result{Cluster: k, Recipes: r.sample(pool, sampleSize)}, nil
}

// sample performs a partial Fisher-Yates shuffle of pool, which must be a
// private copy, and returns its first m elements.
func (r *Recommender) sample(pool []types.Recipe, m int) []types.Recipe {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	for i := 0; i < m; i++ {
		j := i + r.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:m:m]
}

// IsRequestError reports whether err stems from the request rather than the
// process: a malformed query, or a combination the dataset cannot serve.
func IsRequestError(err error) bool {
	return IsInputError(err) ||
		errors.Is(err, clusterindex.ErrEmptyCluster) ||
		errors.Is(err, ErrInsufficientPoolSize)
}

// IsInputError reports whether err is a malformed query.
func IsInputError(err error) bool {
	return errors.Is(err, features.ErrInvalidCategory) ||
		errors.Is(err, features.ErrMissingNutrient) ||
		errors.Is(err, features.ErrUnknownNutrient)
}
