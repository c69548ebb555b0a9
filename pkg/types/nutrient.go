// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Nutrient names one of the eight continuous nutrient attributes of a recipe.
// The string value matches the dataset column header.
type Nutrient string

const (
	Calories            Nutrient = "Calories"
	FatContent          Nutrient = "FatContent"
	CholesterolContent  Nutrient = "CholesterolContent"
	SodiumContent       Nutrient = "SodiumContent"
	CarbohydrateContent Nutrient = "CarbohydrateContent"
	FiberContent        Nutrient = "FiberContent"
	SugarContent        Nutrient = "SugarContent"
	ProteinContent      Nutrient = "ProteinContent"
)

// NumNutrients is the length of every FeatureVector.
const NumNutrients = 8

// FeatureOrder is the attribute order the scaler and clustering model were
// fit against. Batch annotation and live queries both walk this order.
var FeatureOrder = [NumNutrients]Nutrient{
	Calories,
	FatContent,
	CholesterolContent,
	SodiumContent,
	CarbohydrateContent,
	FiberContent,
	SugarContent,
	ProteinContent,
}

// ParseNutrient returns the Nutrient whose column name is s.
func ParseNutrient(s string) (Nutrient, bool) {
	for _, n := range FeatureOrder {
		if string(n) == s {
			return n, true
		}
	}
	return "", false
}

// NutrientCategory is the ordinal encoding of a nutrient level. Quartile
// binning produces the same integer domain, so a category and a bin index
// are interchangeable as model input.
type NutrientCategory int

const (
	Low      NutrientCategory = 1
	Medium   NutrientCategory = 2
	High     NutrientCategory = 3
	VeryHigh NutrientCategory = 4
)

// CategoryTableVersion identifies the label table below. Model artifacts
// record the version they were fit against; bump it whenever a label or
// its integer changes.
const CategoryTableVersion = 1

// categoryTable is ordered by NutrientCategory value.
var categoryTable = []struct {
	Label    string
	Category NutrientCategory
}{
	{"Low", Low},
	{"Medium", Medium},
	{"High", High},
	{"Very High", VeryHigh},
}

// CategoryLabels returns the recognized labels in ascending order.
func CategoryLabels() []string {
	labels := make([]string, len(categoryTable))
	for i, e := range categoryTable {
		labels[i] = e.Label
	}
	return labels
}

// ParseCategory maps a label such as "Very High" to its NutrientCategory.
// Matching is exact.
func ParseCategory(label string) (NutrientCategory, bool) {
	for _, e := range categoryTable {
		if e.Label == label {
			return e.Category, true
		}
	}
	return 0, false
}

// String returns the display label, or "" for an out-of-range value.
func (c NutrientCategory) String() string {
	for _, e := range categoryTable {
		if e.Category == c {
			return e.Label
		}
	}
	return ""
}

// Valid reports whether c is one of the four recognized categories.
func (c NutrientCategory) Valid() bool {
	return c >= Low && c <= VeryHigh
}

// FeatureVector is the fixed-order integer encoding of a nutrient profile.
// Index i holds the category for FeatureOrder[i].
type FeatureVector [NumNutrients]int

// Floats converts v to the float row consumed by scalers.
func (v FeatureVector) Floats() []float64 {
	out := make([]float64, NumNutrients)
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// NutrientQuery maps each nutrient to a category label supplied by a user.
// All eight nutrients are required.
type NutrientQuery map[Nutrient]string
