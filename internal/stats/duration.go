package stats

import "math/rand/v2"

// DurationProvider supplies the duration, in minutes, of a workout being
// completed. No real elapsed-time tracking exists yet; swapping the provider
// is the seam for adding it without touching the engine or the store.
type DurationProvider interface {
	WorkoutDuration() int
}

// SimulatedDuration draws a uniform random duration in [30,60) minutes.
// This is intentional placeholder data standing in for real tracking.
type SimulatedDuration struct{}

func (SimulatedDuration) WorkoutDuration() int {
	return 30 + rand.IntN(30)
}

// FixedDuration always reports the same duration. Used in tests to pin
// intensity outcomes.
type FixedDuration int

func (d FixedDuration) WorkoutDuration() int { return int(d) }
