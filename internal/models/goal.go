package models

import (
	"math"
	"time"
)

// GoalType classifies a goal by what it tracks.
type GoalType string

const (
	GoalStrength  GoalType = "strength"
	GoalEndurance GoalType = "endurance"
	GoalWeight    GoalType = "weight"
	GoalHabit     GoalType = "habit"
	GoalCustom    GoalType = "custom"
)

// Goal is a user-defined target with percentage progress. Progress lives in
// [0,100]; Completed and Progress are kept consistent by the store's
// CompleteGoal and UpdateGoalProgress paths, while UpdateGoal replaces the
// record verbatim and trusts the caller.
type Goal struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	Completed    bool       `json:"completed"`
	Progress     int        `json:"progress"`
	Type         GoalType   `json:"type"`
	Metric       string     `json:"metric,omitempty"`
	TargetValue  *float64   `json:"targetValue,omitempty"`
	CurrentValue *float64   `json:"currentValue,omitempty"`
}

// Clone returns a deep copy of the goal.
func (g Goal) Clone() Goal {
	out := g
	out.TargetDate = clonePtr(g.TargetDate)
	out.TargetValue = clonePtr(g.TargetValue)
	out.CurrentValue = clonePtr(g.CurrentValue)
	return out
}

// ClampProgress bounds a progress value to [0,100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// ProgressFromValues derives percentage progress from a current/target value
// pair. Returns 0 when target is not positive; otherwise
// clamp(round(current/target*100), 0, 100). Goal creation and detail-edit
// flows use this before writing Progress alongside CurrentValue.
func ProgressFromValues(current, target float64) int {
	if target <= 0 {
		return 0
	}
	return ClampProgress(int(math.Round(current / target * 100)))
}
