// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/recipe-recommender/pkg/types"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(types.LogConfig{Level: "debug", Format: "json"}, &buf)
	t.Cleanup(func() { Init(types.LogConfig{}) })

	Logger().Debug().Int("recipes", 12).Msg("dataset loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "dataset loaded", entry["message"])
	assert.Equal(t, float64(12), entry["recipes"])
}

func TestInitLevelFiltersAndFallsBack(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(types.LogConfig{Level: "warn", Format: "json"}, &buf)
	t.Cleanup(func() { Init(types.LogConfig{}) })

	Logger().Info().Msg("hidden")
	assert.Empty(t, buf.String())

	InitWithWriter(types.LogConfig{Level: "shouty", Format: "json"}, &buf)
	Logger().Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(types.LogConfig{Format: "console"}, &buf)
	t.Cleanup(func() { Init(types.LogConfig{}) })

	Logger().Info().Str("cluster", "3").Msg("assigned")
	assert.Contains(t, buf.String(), "assigned")
	assert.Contains(t, buf.String(), "cluster=")
}
