// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the process-wide zerolog logger.
//
//	logging.Init(types.LogConfig{Level: "debug", Format: "json"})
//	logging.Logger().Info().Int("recipes", n).Msg("dataset loaded")
//
// Log output goes to stderr so command results on stdout stay clean.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/recipe-recommender/pkg/types"
)

var (
	mu  sync.RWMutex
	log = newLogger(types.LogConfig{}, os.Stderr)
)

// Init replaces the global logger. An unknown level falls back to info and
// an unknown format to console.
func Init(cfg types.LogConfig) {
	InitWithWriter(cfg, os.Stderr)
}

// InitWithWriter is Init with an explicit destination.
func InitWithWriter(cfg types.LogConfig, w io.Writer) {
	l := newLogger(cfg, w)
	mu.Lock()
	log = l
	mu.Unlock()
}

// Logger returns the global logger.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func newLogger(cfg types.LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := w
	if strings.ToLower(cfg.Format) != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
