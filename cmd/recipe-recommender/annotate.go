package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/recipe-recommender/internal/dataset"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Assign every recipe to a cluster and report cluster sizes",
	Long: `Annotate runs the dataset through the same binning, scaling, and cluster
assignment used for queries, then prints the number of recipes per cluster.
With --out, the annotated dataset is written as CSV including the Cluster
column, so later runs can skip annotation.`,
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().String("out", "", "write the annotated dataset to this CSV file")

	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("out")

	a, err := loadApp(cmd.Context(), loadConfig())
	if err != nil {
		return err
	}

	sizes, err := a.index.Sizes()
	if err != nil {
		return err
	}
	clusters, err := a.index.Clusters()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLUSTER\tRECIPES")
	for _, k := range clusters {
		fmt.Fprintf(tw, "%d\t%d\n", k, sizes[k])
	}
	fmt.Fprintf(tw, "total\t%d\n", a.index.Len())
	if err := tw.Flush(); err != nil {
		return err
	}

	if outPath == "" {
		return nil
	}
	recipes, err := a.index.Recipes()
	if err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := dataset.WriteCSV(f, recipes); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d recipes to %s\n", len(recipes), outPath)
	return nil
}
