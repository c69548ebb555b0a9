// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DatasetConfig locates the recipe dataset.
type DatasetConfig struct {
	// Path is a .csv file or a .db/.sqlite dataset created by the import command.
	Path string `json:"path" yaml:"path"`
}

// ModelConfig locates the fitted model artifacts.
type ModelConfig struct {
	// Dir holds one YAML artifact per model, named <name>.yaml.
	Dir string `json:"dir" yaml:"dir"`

	// Scaler is the artifact name of the fitted scaler (default "scaler_diet").
	Scaler string `json:"scaler" yaml:"scaler"`

	// Clusterer is the artifact name of the fitted clustering model
	// (default "kmeans_model_diet").
	Clusterer string `json:"clusterer" yaml:"clusterer"`
}

// RecommendConfig holds recommendation defaults.
type RecommendConfig struct {
	// SampleSize is the number of recipes returned per request (default 3).
	SampleSize int `json:"sample_size" yaml:"sample_size"`
}

// ServerConfig holds settings for the HTTP shell.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Format is json or console (default console).
	Format string `json:"format" yaml:"format"`
}

// AppConfig groups all configuration sections.
type AppConfig struct {
	Dataset   DatasetConfig   `json:"dataset" yaml:"dataset"`
	Models    ModelConfig     `json:"models" yaml:"models"`
	Recommend RecommendConfig `json:"recommend" yaml:"recommend"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	Log       LogConfig       `json:"log" yaml:"log"`
}
