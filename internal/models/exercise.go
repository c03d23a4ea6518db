package models

// ExerciseCategory classifies a catalog exercise by training modality.
type ExerciseCategory string

const (
	CategoryStrength    ExerciseCategory = "strength"
	CategoryCardio      ExerciseCategory = "cardio"
	CategoryFlexibility ExerciseCategory = "flexibility"
	CategoryBalance     ExerciseCategory = "balance"
)

// Valid reports whether the category is one of the known values.
func (c ExerciseCategory) Valid() bool {
	switch c {
	case CategoryStrength, CategoryCardio, CategoryFlexibility, CategoryBalance:
		return true
	}
	return false
}

// Exercise is a static catalog entry. Catalog data is loaded once at startup
// and never mutated; workouts reference entries by ID.
type Exercise struct {
	ID           string           `json:"id" yaml:"id"`
	Name         string           `json:"name" yaml:"name"`
	Category     ExerciseCategory `json:"category" yaml:"category"`
	MuscleGroups []string         `json:"muscleGroups" yaml:"muscle_groups"`
	Description  string           `json:"description" yaml:"description"`
}
