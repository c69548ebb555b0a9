// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package display formats recommended recipes for people. Nothing here
// changes recipe data.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/recipe-recommender/pkg/types"
)

// descriptionReplacer strips source-site boilerplate. "from Food.com." is
// listed before "Food.com" so the longer form wins.
var descriptionReplacer = strings.NewReplacer(
	"Make and share this", "Enjoy this",
	"from Food.com.", "",
	"Food.com", "",
)

// CleanDescription rewrites boilerplate in a recipe description.
func CleanDescription(s string) string {
	return strings.TrimSpace(descriptionReplacer.Replace(s))
}

// NutrientSummary returns e.g. "170.9 cal, 3.2g Protein, 2.5g Fat".
func NutrientSummary(r types.Recipe) string {
	return fmt.Sprintf("%s cal, %sg Protein, %sg Fat",
		num(r.Calories), num(r.ProteinContent), num(r.FatContent))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// View is the display form of a recommended recipe.
type View struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Cluster     int     `json:"cluster"`
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	FatContent  float64 `json:"fat_content"`
	Protein     float64 `json:"protein_content"`
	Summary     string  `json:"summary"`
}

// NewView builds the display form of r within cluster.
func NewView(r types.Recipe, cluster int) View {
	return View{
		ID:          r.ID,
		Name:        r.Name,
		Cluster:     cluster,
		Description: CleanDescription(r.Description),
		Calories:    r.Calories,
		FatContent:  r.FatContent,
		Protein:     r.ProteinContent,
		Summary:     NutrientSummary(r),
	}
}

// Views converts every recipe of a recommendation.
func Views(cluster int, recipes []types.Recipe) []View {
	out := make([]View, len(recipes))
	for i, r := range recipes {
		out[i] = NewView(r, cluster)
	}
	return out
}

// WriteText renders a recommendation as plain text.
func WriteText(w io.Writer, cluster int, recipes []types.Recipe) error {
	if _, err := fmt.Fprintf(w, "Recommended recipes (cluster %d)\n\n", cluster); err != nil {
		return err
	}
	for i, v := range Views(cluster, recipes) {
		if _, err := fmt.Fprintf(w, "%d. %s\n   %s\n   Nutrients: %s\n\n",
			i+1, v.Name, v.Description, v.Summary); err != nil {
			return err
		}
	}
	return nil
}
