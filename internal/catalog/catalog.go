// Package catalog provides the static exercise reference data. The catalog is
// embedded in the binary, parsed once at startup, and never mutated; workouts
// and personal bests reference entries by ID.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/meltforce/repbook/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed exercises.yaml
var exercisesYAML []byte

var (
	exercises []models.Exercise
	byID      map[string]models.Exercise
)

func init() {
	var err error
	exercises, err = parse(exercisesYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded exercise data invalid: %v", err))
	}
	byID = make(map[string]models.Exercise, len(exercises))
	for _, ex := range exercises {
		byID[ex.ID] = ex
	}
}

func parse(data []byte) ([]models.Exercise, error) {
	var doc struct {
		Exercises []models.Exercise `yaml:"exercises"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing exercise catalog: %w", err)
	}
	if len(doc.Exercises) == 0 {
		return nil, fmt.Errorf("exercise catalog is empty")
	}
	seen := make(map[string]bool, len(doc.Exercises))
	for _, ex := range doc.Exercises {
		if ex.ID == "" || ex.Name == "" {
			return nil, fmt.Errorf("exercise entry missing id or name: %+v", ex)
		}
		if !ex.Category.Valid() {
			return nil, fmt.Errorf("exercise %s: unknown category %q", ex.ID, ex.Category)
		}
		if seen[ex.ID] {
			return nil, fmt.Errorf("duplicate exercise id %s", ex.ID)
		}
		seen[ex.ID] = true
	}
	return doc.Exercises, nil
}

// All returns every catalog exercise in definition order. The returned slice
// is a copy; callers may not reach the catalog's backing data.
func All() []models.Exercise {
	out := make([]models.Exercise, len(exercises))
	copy(out, exercises)
	return out
}

// ByID looks up an exercise by its catalog ID.
func ByID(id string) (models.Exercise, bool) {
	ex, ok := byID[id]
	return ex, ok
}
