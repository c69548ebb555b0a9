// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package model

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/recipe-recommender/pkg/types"
)

// Store loads named artifacts from a model directory.
type Store struct {
	dir string
}

// NewStore returns a Store reading from cfg.Dir.
func NewStore(cfg types.ModelConfig) *Store {
	return &Store{dir: cfg.Dir}
}

// Path returns the artifact file for name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".yaml")
}

// LoadScaler reads a standard_scaler artifact.
func (s *Store) LoadScaler(name string) (*StandardScaler, error) {
	var a types.ScalerArtifact
	if err := s.read(name, types.KindStandardScaler, &a, &a.ArtifactHeader); err != nil {
		return nil, err
	}
	sc, err := NewStandardScaler(a.Mean, a.Scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelLoad, name, err)
	}
	if sc.Dim() != types.NumNutrients {
		return nil, fmt.Errorf("%w: %s: scaler has %d columns, want %d", ErrModelLoad, name, sc.Dim(), types.NumNutrients)
	}
	return sc, nil
}

// LoadAssigner reads a kmeans artifact.
func (s *Store) LoadAssigner(name string) (*KMeans, error) {
	var a types.KMeansArtifact
	if err := s.read(name, types.KindKMeans, &a, &a.ArtifactHeader); err != nil {
		return nil, err
	}
	km, err := NewKMeans(a.Centroids)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelLoad, name, err)
	}
	if km.Dim() != types.NumNutrients {
		return nil, fmt.Errorf("%w: %s: centroids have %d columns, want %d", ErrModelLoad, name, km.Dim(), types.NumNutrients)
	}
	return km, nil
}

// read decodes the artifact into out and validates its header.
func (s *Store) read(name string, kind types.ArtifactKind, out any, hdr *types.ArtifactHeader) error {
	path := s.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrModelLoad, path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", ErrModelLoad, path, err)
	}
	if hdr.Kind != kind {
		return fmt.Errorf("%w: %s: kind %q, want %q", ErrModelLoad, path, hdr.Kind, kind)
	}
	if err := checkContract(hdr); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrModelLoad, path, err)
	}
	return nil
}

// checkContract verifies the artifact was fit against the current feature
// order and category table.
func checkContract(hdr *types.ArtifactHeader) error {
	if hdr.CategoryTableVersion != types.CategoryTableVersion {
		return fmt.Errorf("category table version %d, want %d", hdr.CategoryTableVersion, types.CategoryTableVersion)
	}
	if len(hdr.FeatureOrder) != types.NumNutrients {
		return fmt.Errorf("feature order has %d entries, want %d", len(hdr.FeatureOrder), types.NumNutrients)
	}
	for i, n := range hdr.FeatureOrder {
		if n != types.FeatureOrder[i] {
			return fmt.Errorf("feature %d is %s, want %s", i, n, types.FeatureOrder[i])
		}
	}
	return nil
}

// WriteScaler saves a scaler artifact under name, stamping the current
// feature order and category table version.
func (s *Store) WriteScaler(name string, mean, scale []float64) error {
	return s.write(name, &types.ScalerArtifact{
		ArtifactHeader: header(types.KindStandardScaler),
		Mean:           mean,
		Scale:          scale,
	})
}

// WriteAssigner saves a kmeans artifact under name.
func (s *Store) WriteAssigner(name string, centroids [][]float64) error {
	return s.write(name, &types.KMeansArtifact{
		ArtifactHeader: header(types.KindKMeans),
		Centroids:      centroids,
	})
}

func header(kind types.ArtifactKind) types.ArtifactHeader {
	return types.ArtifactHeader{
		Kind:                 kind,
		Version:              "1",
		FeatureOrder:         types.FeatureOrder[:],
		CategoryTableVersion: types.CategoryTableVersion,
	}
}

func (s *Store) write(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating model directory: %w", err)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.WriteFile(s.Path(name), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
