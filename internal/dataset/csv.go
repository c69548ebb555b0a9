// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/recipe-recommender/pkg/types"
)

// ReadCSVFile parses the CSV dataset at path.
func ReadCSVFile(path string) ([]types.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetLoad, err)
	}
	defer f.Close()

	recipes, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recipes, nil
}

// ReadCSV parses a header-addressed recipe CSV. Name, Description, and the
// eight nutrient columns are required. RecipeId defaults to the 1-based row
// number. A Cluster column is honoured when present; empty cells leave the
// recipe unassigned. Unknown columns are ignored.
func ReadCSV(r io.Reader) ([]types.Recipe, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrDatasetLoad, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	required := []string{colName, colDescription}
	for _, n := range types.FeatureOrder {
		required = append(required, string(n))
	}
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrDatasetLoad, c)
		}
	}
	idCol, hasID := cols[colID]
	clusterCol, hasCluster := cols[colCluster]

	var recipes []types.Recipe
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrDatasetLoad, row, err)
		}

		r := types.Recipe{
			ID:          int64(row),
			Name:        rec[cols[colName]],
			Description: rec[cols[colDescription]],
		}
		if hasID {
			id, err := parseInt(rec[idCol])
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %s: %v", ErrDatasetLoad, row, colID, err)
			}
			r.ID = id
		}
		for _, n := range types.FeatureOrder {
			v, err := parseNutrient(rec[cols[string(n)]])
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %s: %v", ErrDatasetLoad, row, n, err)
			}
			r.SetNutrient(n, v)
		}
		if hasCluster {
			if cell := strings.TrimSpace(rec[clusterCol]); cell != "" {
				c, err := parseInt(cell)
				if err != nil {
					return nil, fmt.Errorf("%w: row %d: %s: %v", ErrDatasetLoad, row, colCluster, err)
				}
				k := int(c)
				r.Cluster = &k
			}
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

// parseNutrient parses a nutrient cell. NaN and infinities are rejected;
// quartile edges are undefined over them.
func parseNutrient(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if !finite(v) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// parseInt accepts integers written as floats ("38.0"), which pandas emits
// for integer columns that once held NaN.
func parseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int64(f), nil
}

// WriteCSV writes recipes with a header row. The Cluster column is always
// written; unassigned recipes get an empty cell.
func WriteCSV(w io.Writer, recipes []types.Recipe) error {
	cw := csv.NewWriter(w)

	header := []string{colID, colName, colDescription}
	for _, n := range types.FeatureOrder {
		header = append(header, string(n))
	}
	header = append(header, colCluster)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range recipes {
		r := &recipes[i]
		rec := []string{strconv.FormatInt(r.ID, 10), r.Name, r.Description}
		for _, n := range types.FeatureOrder {
			rec = append(rec, strconv.FormatFloat(r.Nutrient(n), 'f', -1, 64))
		}
		cluster := ""
		if k, ok := r.ClusterID(); ok {
			cluster = strconv.Itoa(k)
		}
		rec = append(rec, cluster)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing recipe %d: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
