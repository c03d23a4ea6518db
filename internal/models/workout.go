package models

import "time"

// WorkoutSet is a single set of one exercise inside a workout. The measurable
// dimensions are optional: a strength set carries reps/weight, a cardio set
// duration/distance. Absent dimensions stay absent through persistence.
type WorkoutSet struct {
	ID         string   `json:"id"`
	ExerciseID string   `json:"exerciseId"`
	Reps       *int     `json:"reps,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
	Duration   *int     `json:"duration,omitempty"` // seconds
	Distance   *float64 `json:"distance,omitempty"` // meters
	Completed  bool     `json:"completed"`
}

// WorkoutExercise groups the sets of one exercise within a workout.
// An exercise appears at most once per workout; the creation flow enforces
// that, the store does not.
type WorkoutExercise struct {
	ExerciseID string       `json:"exerciseId"`
	Sets       []WorkoutSet `json:"sets"`
}

// Workout is a planned or completed training session. Completed is monotonic:
// once true it never transitions back.
type Workout struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Date      time.Time         `json:"date"`
	Exercises []WorkoutExercise `json:"exercises"`
	Notes     string            `json:"notes,omitempty"`
	Completed bool              `json:"completed"`
}

// Clone returns a deep copy of the workout.
func (w Workout) Clone() Workout {
	out := w
	out.Exercises = make([]WorkoutExercise, len(w.Exercises))
	for i, ex := range w.Exercises {
		ce := ex
		ce.Sets = make([]WorkoutSet, len(ex.Sets))
		for j, s := range ex.Sets {
			cs := s
			cs.Reps = clonePtr(s.Reps)
			cs.Weight = clonePtr(s.Weight)
			cs.Duration = clonePtr(s.Duration)
			cs.Distance = clonePtr(s.Distance)
			ce.Sets[j] = cs
		}
		out.Exercises[i] = ce
	}
	return out
}

// Intensity is the categorical effort label derived from workout duration.
type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityIntense  Intensity = "intense"
)

// WorkoutHistoryEntry is an immutable record of one workout completion.
// It back-references the source workout by ID only; the workout may be
// deleted later without touching its history.
type WorkoutHistoryEntry struct {
	Date          time.Time `json:"date"`
	WorkoutID     string    `json:"workoutId"`
	Duration      int       `json:"duration"` // minutes
	ExerciseCount int       `json:"exerciseCount"`
	Intensity     Intensity `json:"intensity"`
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
