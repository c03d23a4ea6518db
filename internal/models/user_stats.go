package models

import "time"

// PersonalBestType names the dimension a personal-best record was set on.
type PersonalBestType string

const (
	BestWeight   PersonalBestType = "weight"
	BestReps     PersonalBestType = "reps"
	BestDuration PersonalBestType = "duration"
	BestDistance PersonalBestType = "distance"
)

// PersonalBest is a per-exercise record entry. The shape is part of the
// persisted state but nothing populates it yet.
type PersonalBest struct {
	ExerciseID string           `json:"exerciseId"`
	Value      float64          `json:"value"`
	Type       PersonalBestType `json:"type"`
	Date       time.Time        `json:"date"`
}

// UserStats is the derived aggregate recomputed on each workout completion.
// It is a cache over the workout history, not independently authoritative.
type UserStats struct {
	Streak            int            `json:"streak"`
	TotalWorkouts     int            `json:"totalWorkouts"`
	ThisWeekWorkouts  int            `json:"thisWeekWorkouts"`
	ThisMonthWorkouts int            `json:"thisMonthWorkouts"`
	PersonalBests     []PersonalBest `json:"personalBests"`
}

// NewUserStats returns zeroed stats with a non-nil PersonalBests slice so the
// persisted JSON always carries an array rather than null.
func NewUserStats() UserStats {
	return UserStats{PersonalBests: []PersonalBest{}}
}

// Clone returns a deep copy of the stats.
func (s UserStats) Clone() UserStats {
	out := s
	out.PersonalBests = make([]PersonalBest, len(s.PersonalBests))
	copy(out.PersonalBests, s.PersonalBests)
	return out
}
