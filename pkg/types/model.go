// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ArtifactKind identifies the model stored in an artifact file.
type ArtifactKind string

const (
	KindStandardScaler ArtifactKind = "standard_scaler"
	KindKMeans         ArtifactKind = "kmeans"
)

// ArtifactHeader is common to every model artifact. It records the
// encoding contract the model was fit against.
type ArtifactHeader struct {
	// Kind selects the model type.
	Kind ArtifactKind `json:"kind" yaml:"kind"`

	// Version is the artifact revision, informational only.
	Version string `json:"version" yaml:"version"`

	// FeatureOrder lists the nutrient columns in model input order. It must
	// equal FeatureOrder.
	FeatureOrder []Nutrient `json:"feature_order" yaml:"feature_order"`

	// CategoryTableVersion must equal CategoryTableVersion.
	CategoryTableVersion int `json:"category_table_version" yaml:"category_table_version"`
}

// ScalerArtifact is a fitted standardizing scaler: x' = (x - mean) / scale.
type ScalerArtifact struct {
	ArtifactHeader `yaml:",inline"`

	Mean  []float64 `json:"mean" yaml:"mean"`
	Scale []float64 `json:"scale" yaml:"scale"`
}

// KMeansArtifact is a fitted k-means model. Cluster ids are centroid indexes.
type KMeansArtifact struct {
	ArtifactHeader `yaml:",inline"`

	Centroids [][]float64 `json:"centroids" yaml:"centroids"`
}
