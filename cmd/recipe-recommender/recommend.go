package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/pdiddy/recipe-recommender/internal/display"
	"github.com/pdiddy/recipe-recommender/internal/features"
	"github.com/pdiddy/recipe-recommender/internal/recommend"
	"github.com/pdiddy/recipe-recommender/pkg/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend recipes for a set of nutrient categories",
	Long: `Recommend encodes one category per nutrient (Low, Medium, High, Very High),
assigns the query to a cluster, and prints recipes drawn at random from that
cluster. Nutrients not given on the command line default to Medium.`,
	Example: `  recipe-recommender recommend --calories Low --fat Low --protein High
  recipe-recommender recommend --all "Very High" --sample-size 5 --json`,
	RunE: runRecommend,
}

func init() {
	for _, n := range types.FeatureOrder {
		recommendCmd.Flags().String(nutrientFlag(n), types.Medium.String(), fmt.Sprintf("%s category", n))
	}
	recommendCmd.Flags().String("all", "", "category applied to every nutrient not set explicitly")
	recommendCmd.Flags().Int("sample-size", 0, "number of recipes to draw (default from recommend.sample_size)")
	recommendCmd.Flags().Uint64("seed", 0, "random seed for repeatable draws (0 = random)")
	recommendCmd.Flags().Bool("json", false, "print the result as JSON")

	rootCmd.AddCommand(recommendCmd)
}

// nutrientFlag maps a nutrient to its flag name: FatContent -> fat.
func nutrientFlag(n types.Nutrient) string {
	switch n {
	case types.Calories:
		return "calories"
	case types.FatContent:
		return "fat"
	case types.CholesterolContent:
		return "cholesterol"
	case types.SodiumContent:
		return "sodium"
	case types.CarbohydrateContent:
		return "carbohydrate"
	case types.FiberContent:
		return "fiber"
	case types.SugarContent:
		return "sugar"
	case types.ProteinContent:
		return "protein"
	}
	return string(n)
}

// queryFromFlags builds a query from the per-nutrient flags. Flags that
// were not set take the --all value when one is given.
func queryFromFlags(cmd *cobra.Command) types.NutrientQuery {
	all, _ := cmd.Flags().GetString("all")
	q := make(types.NutrientQuery, types.NumNutrients)
	for _, n := range types.FeatureOrder {
		name := nutrientFlag(n)
		label, _ := cmd.Flags().GetString(name)
		if all != "" && !cmd.Flags().Changed(name) {
			label = all
		}
		q[n] = label
	}
	return q
}

func runRecommend(cmd *cobra.Command, args []string) error {
	sampleSize, _ := cmd.Flags().GetInt("sample-size")
	seed, _ := cmd.Flags().GetUint64("seed")
	asJSON, _ := cmd.Flags().GetBool("json")

	q := queryFromFlags(cmd)
	// Reject bad labels before paying for model and dataset loading.
	if _, err := features.Vectorize(q); err != nil {
		return err
	}

	var opts []recommend.Option
	if seed != 0 {
		opts = append(opts, recommend.WithSource(rand.NewPCG(seed, seed)))
	}

	a, err := loadApp(cmd.Context(), loadConfig(), opts...)
	if err != nil {
		return err
	}

	res, err := a.recommender.Recommend(q, sampleSize)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Cluster int            `json:"cluster"`
			Recipes []display.View `json:"recipes"`
		}{res.Cluster, display.Views(res.Cluster, res.Recipes)})
	}
	return display.WriteText(out, res.Cluster, res.Recipes)
}
