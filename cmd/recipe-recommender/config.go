// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/recipe-recommender/internal/recommend"
	"github.com/pdiddy/recipe-recommender/pkg/types"
)

// envKeyReplacer maps viper keys to environment names:
// models.dir -> RECIPE_RECOMMENDER_MODELS_DIR.
var envKeyReplacer = strings.NewReplacer(".", "_")

func init() {
	viper.SetDefault("recommend.sample_size", recommend.DefaultSampleSize)
	viper.SetDefault("server.addr", ":8080")
}

// loadConfig assembles the effective configuration from flags, environment,
// config file, and defaults, in that order of precedence.
func loadConfig() types.AppConfig {
	return types.AppConfig{
		Dataset: types.DatasetConfig{
			Path: viper.GetString("dataset.path"),
		},
		Models: types.ModelConfig{
			Dir:       viper.GetString("models.dir"),
			Scaler:    viper.GetString("models.scaler"),
			Clusterer: viper.GetString("models.clusterer"),
		},
		Recommend: types.RecommendConfig{
			SampleSize: viper.GetInt("recommend.sample_size"),
		},
		Server: types.ServerConfig{
			Addr: viper.GetString("server.addr"),
		},
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
	}
}
