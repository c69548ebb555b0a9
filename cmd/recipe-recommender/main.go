// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the recipe-recommender CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/recipe-recommender/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the recipe-recommender CLI.
var rootCmd = &cobra.Command{
	Use:   "recipe-recommender",
	Short: "Recommend recipes matching categorical nutrient preferences",
	Long: `recipe-recommender maps nutrient preferences (Low, Medium, High, Very High
for each of eight nutrients) to a cluster of a fitted k-means model and samples
recipes from that cluster of the recipe dataset.

The dataset is annotated with cluster ids once at startup: every nutrient
column is quartile-binned, scaled, and assigned with the same models used for
queries. Datasets exported by "annotate --out" already carry cluster ids.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(loadConfig().Log)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./recipe-recommender.yaml or ~/.config/recipe-recommender/config.yaml)")
	flags.String("dataset", "recipes_clusters_diet.csv", "recipe dataset (.csv, or .db created by import)")
	flags.String("models-dir", ".", "directory holding model artifacts")
	flags.String("scaler", "scaler_diet", "scaler artifact name")
	flags.String("clusterer", "kmeans_model_diet", "clustering model artifact name")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "console", "log format: console or json")

	bindFlag("dataset.path", "dataset")
	bindFlag("models.dir", "models-dir")
	bindFlag("models.scaler", "scaler")
	bindFlag("models.clusterer", "clusterer")
	bindFlag("log.level", "log-level")
	bindFlag("log.format", "log-format")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("recipe-recommender")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "recipe-recommender"))
		}
	}

	viper.SetEnvPrefix("RECIPE_RECOMMENDER")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Logger().Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
