// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/recipe-recommender/internal/clusterindex"
	"github.com/pdiddy/recipe-recommender/internal/dataset"
	"github.com/pdiddy/recipe-recommender/internal/logging"
	"github.com/pdiddy/recipe-recommender/internal/model"
	"github.com/pdiddy/recipe-recommender/internal/recommend"
	"github.com/pdiddy/recipe-recommender/pkg/types"
)

// app holds the process-wide, read-only state shared by commands.
type app struct {
	index       *clusterindex.Index
	recommender *recommend.Recommender
}

// loadApp loads the models and dataset and annotates the dataset eagerly.
// Any failure here is fatal to the command.
func loadApp(ctx context.Context, cfg types.AppConfig, opts ...recommend.Option) (*app, error) {
	log := logging.Logger()

	store := model.NewStore(cfg.Models)
	scaler, err := store.LoadScaler(cfg.Models.Scaler)
	if err != nil {
		return nil, err
	}
	assigner, err := store.LoadAssigner(cfg.Models.Clusterer)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("scaler", store.Path(cfg.Models.Scaler)).
		Str("clusterer", store.Path(cfg.Models.Clusterer)).
		Int("clusters", assigner.K()).
		Msg("models loaded")

	recipes, err := dataset.Load(ctx, cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("path", cfg.Dataset.Path).
		Int("recipes", len(recipes)).
		Int("clustered", dataset.Clustered(recipes)).
		Msg("dataset loaded")

	index := clusterindex.New(recipes, scaler, assigner)
	start := time.Now()
	if err := index.Ensure(); err != nil {
		return nil, fmt.Errorf("annotating dataset: %w", err)
	}
	if index.Computed() {
		log.Info().
			Int("recipes", index.Len()).
			Dur("elapsed", time.Since(start)).
			Msg("generated cluster column")
	}

	opts = append([]recommend.Option{recommend.WithSampleSize(cfg.Recommend.SampleSize)}, opts...)
	return &app{
		index:       index,
		recommender: recommend.New(index, scaler, assigner, opts...),
	}, nil
}
