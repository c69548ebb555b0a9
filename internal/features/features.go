// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package features encodes a user's nutrient query as the fixed-order
// integer vector the scaler and clustering model were fit on.
package features

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/recipe-recommender/pkg/types"
)

var (
	// ErrInvalidCategory reports a label outside the category table.
	ErrInvalidCategory = errors.New("invalid nutrient category")

	// ErrMissingNutrient reports a query without one of the eight nutrients.
	ErrMissingNutrient = errors.New("missing nutrient")

	// ErrUnknownNutrient reports a query key that names no nutrient.
	ErrUnknownNutrient = errors.New("unknown nutrient")
)

// QueryError describes which nutrient of a query could not be encoded.
type QueryError struct {
	Nutrient string
	Label    string
	Err      error
}

func (e *QueryError) Error() string {
	switch e.Err {
	case ErrInvalidCategory:
		return fmt.Sprintf("%s: %v %q (want one of %s)",
			e.Nutrient, e.Err, e.Label, strings.Join(types.CategoryLabels(), ", "))
	case ErrMissingNutrient:
		return fmt.Sprintf("%v: %s", e.Err, e.Nutrient)
	}
	return fmt.Sprintf("%v %q", e.Err, e.Nutrient)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Vectorize converts q to a FeatureVector in types.FeatureOrder using the
// shared category table. Nutrients are checked in order; the first one that
// is absent or carries an unrecognized label determines the error.
func Vectorize(q types.NutrientQuery) (types.FeatureVector, error) {
	var v types.FeatureVector
	for i, n := range types.FeatureOrder {
		label, ok := q[n]
		if !ok {
			return types.FeatureVector{}, &QueryError{Nutrient: string(n), Err: ErrMissingNutrient}
		}
		c, ok := types.ParseCategory(label)
		if !ok {
			return types.FeatureVector{}, &QueryError{Nutrient: string(n), Label: label, Err: ErrInvalidCategory}
		}
		v[i] = int(c)
	}
	return v, nil
}

// ParseQuery builds a NutrientQuery from column-name keys, as submitted by
// a form or a JSON body. Unknown keys are rejected; completeness and labels
// are checked later by Vectorize.
func ParseQuery(raw map[string]string) (types.NutrientQuery, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	q := make(types.NutrientQuery, len(raw))
	for _, k := range keys {
		n, ok := types.ParseNutrient(k)
		if !ok {
			return nil, &QueryError{Nutrient: k, Err: ErrUnknownNutrient}
		}
		q[n] = raw[k]
	}
	return q, nil
}

// Uniform returns a query with every nutrient set to label.
func Uniform(label string) types.NutrientQuery {
	q := make(types.NutrientQuery, types.NumNutrients)
	for _, n := range types.FeatureOrder {
		q[n] = label
	}
	return q
}
