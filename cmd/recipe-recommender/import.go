package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/recipe-recommender/internal/dataset"
)

var importCmd = &cobra.Command{
	Use:   "import <csv> <db>",
	Short: "Import a recipe CSV into a SQLite dataset",
	Long: `Import reads a recipe CSV and upserts every row into the recipes table of a
SQLite database, creating it if needed. Point --dataset at the database to
serve from it. Cluster ids present in the CSV are kept.`,
	Args: cobra.ExactArgs(2),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	recipes, err := dataset.ReadCSVFile(args[0])
	if err != nil {
		return err
	}

	store, err := dataset.Open(args[1])
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Import(cmd.Context(), recipes, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("importing %s: %w", args[0], err)
	}
	if summary.Total() == 0 {
		return fmt.Errorf("%s contains no recipes", args[0])
	}
	return nil
}
