package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/recipe-recommender/pkg/types"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the nutrient category labels and their codes",
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().Bool("yaml", false, "print as YAML, including nutrients and feature order")

	rootCmd.AddCommand(categoriesCmd)
}

type categoryTable struct {
	Version    int              `yaml:"version"`
	Categories map[string]int   `yaml:"categories"`
	Nutrients  []types.Nutrient `yaml:"feature_order"`
}

func runCategories(cmd *cobra.Command, args []string) error {
	asYAML, _ := cmd.Flags().GetBool("yaml")
	out := cmd.OutOrStdout()

	if asYAML {
		t := categoryTable{
			Version:    types.CategoryTableVersion,
			Categories: make(map[string]int),
			Nutrients:  types.FeatureOrder[:],
		}
		for _, label := range types.CategoryLabels() {
			c, _ := types.ParseCategory(label)
			t.Categories[label] = int(c)
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(t); err != nil {
			return err
		}
		return enc.Close()
	}

	for _, label := range types.CategoryLabels() {
		c, _ := types.ParseCategory(label)
		fmt.Fprintf(out, "%d  %s\n", int(c), label)
	}
	return nil
}
