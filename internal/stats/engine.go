// Package stats computes the derived workout statistics: the completion
// streak, current-week and current-month counts, and the intensity label.
// All functions are pure over the in-memory history slice; the store calls
// them inside the completion transition.
package stats

import (
	"time"

	"github.com/meltforce/repbook/internal/models"
)

// IntensityFor maps a workout duration in minutes to its intensity label.
// Thresholds are exclusive on the lower side: exactly 35 is light, exactly
// 50 is moderate.
func IntensityFor(durationMinutes int) models.Intensity {
	switch {
	case durationMinutes > 50:
		return models.IntensityIntense
	case durationMinutes > 35:
		return models.IntensityModerate
	default:
		return models.IntensityLight
	}
}

// NextStreak returns the streak value after a completion at now, given the
// previous streak and the most recent history entry before this completion
// (nil when history is empty).
//
// The streak counts completion events, not distinct days: if the last
// completion was today or yesterday the streak grows by one, so finishing two
// workouts on the same day increments it twice. Any larger gap resets to 1.
func NextStreak(prevStreak int, last *models.WorkoutHistoryEntry, now time.Time) int {
	if last == nil {
		return 1
	}
	yesterday := now.AddDate(0, 0, -1)
	if sameDay(last.Date, yesterday) || sameDay(last.Date, now) {
		return prevStreak + 1
	}
	return 1
}

// CountThisWeek counts history entries from the most recent Sunday 00:00
// local time up to now. The entry for an in-flight completion is not yet in
// the history; the caller adds 1 for it.
func CountThisWeek(history []models.WorkoutHistoryEntry, now time.Time) int {
	start := StartOfWeek(now)
	n := 0
	for _, h := range history {
		if !h.Date.Before(start) && !h.Date.After(now) {
			n++
		}
	}
	return n
}

// CountThisMonth counts history entries whose calendar month and year equal
// now's. As with CountThisWeek, the caller adds 1 for the in-flight
// completion.
func CountThisMonth(history []models.WorkoutHistoryEntry, now time.Time) int {
	n := 0
	for _, h := range history {
		d := h.Date.In(now.Location())
		if d.Month() == now.Month() && d.Year() == now.Year() {
			n++
		}
	}
	return n
}

// StartOfWeek returns the most recent Sunday at 00:00 in now's location.
func StartOfWeek(now time.Time) time.Time {
	d := now.AddDate(0, 0, -int(now.Weekday()))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
