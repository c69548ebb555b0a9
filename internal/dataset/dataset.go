// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset loads the recipe dataset from a CSV file or from a SQLite
// database created by the import command.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/recipe-recommender/pkg/types"
)

// ErrDatasetLoad reports a missing or malformed dataset.
var ErrDatasetLoad = errors.New("dataset load failed")

// Column headers besides the nutrient names.
const (
	colID          = "RecipeId"
	colName        = "Name"
	colDescription = "Description"
	colCluster     = "Cluster"
)

// Load reads the dataset at path. Files ending in .db or .sqlite are opened
// as SQLite datasets; anything else is parsed as CSV.
func Load(ctx context.Context, path string) ([]types.Recipe, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetLoad, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		store, err := Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatasetLoad, err)
		}
		defer store.Close()
		recipes, err := store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatasetLoad, err)
		}
		return recipes, nil
	default:
		return ReadCSVFile(path)
	}
}

// Clustered reports how many recipes already carry a cluster assignment.
func Clustered(recipes []types.Recipe) int {
	n := 0
	for i := range recipes {
		if recipes[i].HasCluster() {
			n++
		}
	}
	return n
}
