// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Recipe is one row of the recipe dataset.
type Recipe struct {
	// ID is the dataset's recipe identifier.
	ID int64 `json:"id" yaml:"id"`

	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`

	Calories            float64 `json:"calories" yaml:"calories"`
	FatContent          float64 `json:"fat_content" yaml:"fat_content"`
	CholesterolContent  float64 `json:"cholesterol_content" yaml:"cholesterol_content"`
	SodiumContent       float64 `json:"sodium_content" yaml:"sodium_content"`
	CarbohydrateContent float64 `json:"carbohydrate_content" yaml:"carbohydrate_content"`
	FiberContent        float64 `json:"fiber_content" yaml:"fiber_content"`
	SugarContent        float64 `json:"sugar_content" yaml:"sugar_content"`
	ProteinContent      float64 `json:"protein_content" yaml:"protein_content"`

	// Cluster is the assigned cluster id. Nil until the dataset is annotated,
	// unless the dataset was loaded with a Cluster column.
	Cluster *int `json:"cluster,omitempty" yaml:"cluster,omitempty"`
}

// Nutrient returns the value of the named nutrient attribute.
func (r *Recipe) Nutrient(n Nutrient) float64 {
	switch n {
	case Calories:
		return r.Calories
	case FatContent:
		return r.FatContent
	case CholesterolContent:
		return r.CholesterolContent
	case SodiumContent:
		return r.SodiumContent
	case CarbohydrateContent:
		return r.CarbohydrateContent
	case FiberContent:
		return r.FiberContent
	case SugarContent:
		return r.SugarContent
	case ProteinContent:
		return r.ProteinContent
	}
	return 0
}

// SetNutrient assigns the value of the named nutrient attribute. Unknown
// names are ignored.
func (r *Recipe) SetNutrient(n Nutrient, v float64) {
	switch n {
	case Calories:
		r.Calories = v
	case FatContent:
		r.FatContent = v
	case CholesterolContent:
		r.CholesterolContent = v
	case SodiumContent:
		r.SodiumContent = v
	case CarbohydrateContent:
		r.CarbohydrateContent = v
	case FiberContent:
		r.FiberContent = v
	case SugarContent:
		r.SugarContent = v
	case ProteinContent:
		r.ProteinContent = v
	}
}

// HasCluster reports whether the recipe carries a cluster assignment.
func (r *Recipe) HasCluster() bool {
	return r.Cluster != nil
}

// ClusterID returns the cluster assignment and whether it is set.
func (r *Recipe) ClusterID() (int, bool) {
	if r.Cluster == nil {
		return 0, false
	}
	return *r.Cluster, true
}
