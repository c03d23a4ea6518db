package stats

import (
	"testing"
	"time"

	"github.com/meltforce/repbook/internal/models"
)

// TestIntensityThresholds verifies the light/moderate/intense boundaries,
// which are exclusive on the lower side: exactly 35 is still light and
// exactly 50 still moderate.
func TestIntensityThresholds(t *testing.T) {
	cases := []struct {
		minutes int
		want    models.Intensity
	}{
		{30, models.IntensityLight},
		{35, models.IntensityLight},
		{36, models.IntensityModerate},
		{50, models.IntensityModerate},
		{51, models.IntensityIntense},
		{60, models.IntensityIntense},
	}
	for _, c := range cases {
		if got := IntensityFor(c.minutes); got != c.want {
			t.Errorf("IntensityFor(%d) = %s, want %s", c.minutes, got, c.want)
		}
	}
}

func entryAt(date time.Time) models.WorkoutHistoryEntry {
	return models.WorkoutHistoryEntry{Date: date, WorkoutID: "w", Duration: 40, ExerciseCount: 2, Intensity: models.IntensityModerate}
}

// TestNextStreakFirstCompletion verifies an empty history yields streak 1.
func TestNextStreakFirstCompletion(t *testing.T) {
	if got := NextStreak(0, nil, time.Now()); got != 1 {
		t.Errorf("NextStreak(empty) = %d, want 1", got)
	}
}

// TestNextStreakYesterdayExtends verifies a completion the previous calendar
// day extends the streak, time-of-day ignored.
func TestNextStreakYesterdayExtends(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 0, 0, 0, time.Local)
	last := entryAt(time.Date(2026, 3, 9, 23, 45, 0, 0, time.Local))
	if got := NextStreak(5, &last, now); got != 6 {
		t.Errorf("NextStreak = %d, want 6", got)
	}
}

// TestNextStreakSameDayExtends verifies a second completion on the same
// calendar day also extends the streak: the counter tracks completion events,
// not distinct days.
func TestNextStreakSameDayExtends(t *testing.T) {
	now := time.Date(2026, 3, 10, 19, 0, 0, 0, time.Local)
	last := entryAt(time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local))
	if got := NextStreak(3, &last, now); got != 4 {
		t.Errorf("NextStreak = %d, want 4", got)
	}
}

// TestNextStreakGapResets verifies a two-day gap resets to 1.
func TestNextStreakGapResets(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 0, 0, 0, time.Local)
	last := entryAt(time.Date(2026, 3, 8, 7, 0, 0, 0, time.Local))
	if got := NextStreak(9, &last, now); got != 1 {
		t.Errorf("NextStreak = %d, want 1", got)
	}
}

// TestStartOfWeek verifies the week anchor is the most recent Sunday at
// midnight local time, including when now is already a Sunday.
func TestStartOfWeek(t *testing.T) {
	// 2026-03-11 is a Wednesday; the preceding Sunday is 2026-03-08.
	wed := time.Date(2026, 3, 11, 15, 30, 0, 0, time.Local)
	if got := StartOfWeek(wed); !got.Equal(time.Date(2026, 3, 8, 0, 0, 0, 0, time.Local)) {
		t.Errorf("StartOfWeek(wed) = %v", got)
	}

	sun := time.Date(2026, 3, 8, 10, 0, 0, 0, time.Local)
	if got := StartOfWeek(sun); !got.Equal(time.Date(2026, 3, 8, 0, 0, 0, 0, time.Local)) {
		t.Errorf("StartOfWeek(sun) = %v", got)
	}
}

// TestCountThisWeek verifies only entries inside [startOfWeek, now] count.
func TestCountThisWeek(t *testing.T) {
	now := time.Date(2026, 3, 11, 15, 0, 0, 0, time.Local) // Wednesday
	history := []models.WorkoutHistoryEntry{
		entryAt(time.Date(2026, 3, 7, 9, 0, 0, 0, time.Local)),  // Saturday, previous week
		entryAt(time.Date(2026, 3, 8, 9, 0, 0, 0, time.Local)),  // Sunday, this week
		entryAt(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)), // Tuesday, this week
	}
	if got := CountThisWeek(history, now); got != 2 {
		t.Errorf("CountThisWeek = %d, want 2", got)
	}
}

// TestCountThisMonth verifies only entries of the same month and year count.
func TestCountThisMonth(t *testing.T) {
	now := time.Date(2026, 3, 11, 15, 0, 0, 0, time.Local)
	history := []models.WorkoutHistoryEntry{
		entryAt(time.Date(2026, 2, 28, 9, 0, 0, 0, time.Local)), // previous month
		entryAt(time.Date(2025, 3, 11, 9, 0, 0, 0, time.Local)), // same month, previous year
		entryAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)),
		entryAt(time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)),
	}
	if got := CountThisMonth(history, now); got != 2 {
		t.Errorf("CountThisMonth = %d, want 2", got)
	}
}

// TestSimulatedDurationRange verifies the placeholder duration stays within
// the documented [30,60) minute range.
func TestSimulatedDurationRange(t *testing.T) {
	var p SimulatedDuration
	for range 200 {
		d := p.WorkoutDuration()
		if d < 30 || d >= 60 {
			t.Fatalf("WorkoutDuration = %d, want in [30,60)", d)
		}
	}
}
