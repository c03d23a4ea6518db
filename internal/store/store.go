// Package store holds the application state: workouts, workout history,
// goals, derived user statistics, and the daily quote. A single Store is
// constructed at process start; front ends read snapshots and invoke actions,
// never touching the collections directly.
//
// All mutations are synchronous and serialized. Durability is best-effort:
// each mutation schedules a fire-and-forget write of the persisted subset,
// and a failed write is logged and dropped — in-memory state stays the source
// of truth for the session.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/meltforce/repbook/internal/models"
	"github.com/meltforce/repbook/internal/stats"
)

// Result reports the outcome of a mutating action. Actions on an absent ID
// leave the state untouched and report NotFound; callers are free to ignore
// the result, which preserves the silent-no-op contract.
type Result int

const (
	Ok Result = iota
	NotFound
)

// PersistedState is the durable subset of store state, serialized as one JSON
// document under a single key.
type PersistedState struct {
	Workouts       []models.Workout             `json:"workouts"`
	WorkoutHistory []models.WorkoutHistoryEntry `json:"workoutHistory"`
	Goals          []models.Goal                `json:"goals"`
	UserStats      models.UserStats             `json:"userStats"`
	TodaysQuote    string                       `json:"todaysQuote"`
}

// Persister mirrors store state to durable storage and rehydrates it.
// LoadState returns (nil, nil) when no state has been saved yet.
type Persister interface {
	SaveState(ctx context.Context, state PersistedState) error
	LoadState(ctx context.Context) (*PersistedState, error)
}

// Snapshot is a deep copy of the current state for read access.
type Snapshot struct {
	Workouts       []models.Workout
	WorkoutHistory []models.WorkoutHistoryEntry
	Goals          []models.Goal
	UserStats      models.UserStats
	TodaysQuote    string
}

// Store is the in-memory state container. Safe for use from multiple
// goroutines; mutations never interleave.
type Store struct {
	mu        sync.Mutex
	workouts  []models.Workout
	history   []models.WorkoutHistoryEntry
	goals     []models.Goal
	userStats models.UserStats
	quote     string

	persister Persister
	durations stats.DurationProvider
	log       *slog.Logger
	now       func() time.Time

	// pending counts in-flight mirror writes so tests and shutdown can
	// wait for the last one.
	pending sync.WaitGroup

	// writeMu serializes mirror writes; writeSeq/lastWritten drop a write
	// that lost the race to a newer snapshot.
	writeMu     sync.Mutex
	writeSeq    uint64
	lastWritten uint64
}

// New builds a Store and hydrates it from the persister. Hydration blocks
// until complete; a read failure or absent state falls back to defaults and
// is never fatal. A nil persister disables durability.
func New(ctx context.Context, persister Persister, durations stats.DurationProvider, log *slog.Logger) *Store {
	s := &Store{
		userStats: models.NewUserStats(),
		quote:     randomQuote(),
		persister: persister,
		durations: durations,
		log:       log,
		now:       time.Now,
	}
	if persister == nil {
		return s
	}
	state, err := persister.LoadState(ctx)
	if err != nil {
		log.Warn("state hydration failed, starting from defaults", "error", err)
		return s
	}
	if state == nil {
		return s
	}
	s.workouts = state.Workouts
	s.history = state.WorkoutHistory
	s.goals = state.Goals
	s.userStats = state.UserStats
	if s.userStats.PersonalBests == nil {
		s.userStats.PersonalBests = []models.PersonalBest{}
	}
	if state.TodaysQuote != "" {
		s.quote = state.TodaysQuote
	}
	return s
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Workouts:       make([]models.Workout, len(s.workouts)),
		WorkoutHistory: make([]models.WorkoutHistoryEntry, len(s.history)),
		Goals:          make([]models.Goal, len(s.goals)),
		UserStats:      s.userStats.Clone(),
		TodaysQuote:    s.quote,
	}
	for i, w := range s.workouts {
		snap.Workouts[i] = w.Clone()
	}
	copy(snap.WorkoutHistory, s.history)
	for i, g := range s.goals {
		snap.Goals[i] = g.Clone()
	}
	return snap
}

// AddWorkout appends a workout. The caller is responsible for ID uniqueness;
// no duplicate check is performed.
func (s *Store) AddWorkout(w models.Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workouts = append(s.workouts, w.Clone())
	s.mirrorLocked()
}

// UpdateWorkout replaces the workout with the same ID.
func (s *Store) UpdateWorkout(w models.Workout) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workouts {
		if s.workouts[i].ID == w.ID {
			s.workouts[i] = w.Clone()
			s.mirrorLocked()
			return Ok
		}
	}
	return NotFound
}

// DeleteWorkout removes the workout with the given ID. History entries that
// reference it are untouched, so past completions keep contributing to the
// user statistics.
func (s *Store) DeleteWorkout(id string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workouts {
		if s.workouts[i].ID == id {
			s.workouts = append(s.workouts[:i], s.workouts[i+1:]...)
			s.mirrorLocked()
			return Ok
		}
	}
	return NotFound
}

// CompleteWorkout transitions a workout to completed. In one state
// transition it marks the workout, appends the history entry, and replaces
// the user statistics. Completing an absent ID changes nothing: no history
// entry, no stats update.
func (s *Store) CompleteWorkout(id string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.workouts {
		if s.workouts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return NotFound
	}

	now := s.now()
	duration := s.durations.WorkoutDuration()
	entry := models.WorkoutHistoryEntry{
		Date:          now,
		WorkoutID:     id,
		Duration:      duration,
		ExerciseCount: len(s.workouts[idx].Exercises),
		Intensity:     stats.IntensityFor(duration),
	}

	var last *models.WorkoutHistoryEntry
	if len(s.history) > 0 {
		last = &s.history[len(s.history)-1]
	}

	next := s.userStats.Clone()
	next.Streak = stats.NextStreak(s.userStats.Streak, last, now)
	next.TotalWorkouts = s.userStats.TotalWorkouts + 1
	// The new entry is not appended yet when the counts run; +1 covers it,
	// which also keeps both counts >= 1 after any completion.
	next.ThisWeekWorkouts = stats.CountThisWeek(s.history, now) + 1
	next.ThisMonthWorkouts = stats.CountThisMonth(s.history, now) + 1

	s.workouts[idx].Completed = true
	s.history = append(s.history, entry)
	s.userStats = next
	s.mirrorLocked()
	return Ok
}

// AddGoal appends a goal. As with workouts, ID uniqueness is the caller's
// concern.
func (s *Store) AddGoal(g models.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, g.Clone())
	s.mirrorLocked()
}

// UpdateGoal replaces the goal with the same ID verbatim. It does not derive
// Completed from Progress; callers set both fields consistently. See
// UpdateGoalProgress for the derivation path.
func (s *Store) UpdateGoal(g models.Goal) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == g.ID {
			s.goals[i] = g.Clone()
			s.mirrorLocked()
			return Ok
		}
	}
	return NotFound
}

// DeleteGoal removes the goal with the given ID.
func (s *Store) DeleteGoal(id string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			s.mirrorLocked()
			return Ok
		}
	}
	return NotFound
}

// CompleteGoal forces completed=true and progress=100 regardless of the
// current progress value. Irreversible through the exposed API.
func (s *Store) CompleteGoal(id string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals[i].Completed = true
			s.goals[i].Progress = 100
			s.mirrorLocked()
			return Ok
		}
	}
	return NotFound
}

// UpdateGoalProgress sets a goal's progress, clamped to [0,100], and derives
// completed = (progress >= 100). This is the only action that derives
// completion from progress.
func (s *Store) UpdateGoalProgress(id string, progress int) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == id {
			p := models.ClampProgress(progress)
			s.goals[i].Progress = p
			s.goals[i].Completed = p >= 100
			s.mirrorLocked()
			return Ok
		}
	}
	return NotFound
}

// RefreshDailyQuote replaces the current quote with a random pick from the
// fixed pool. The same quote may come up again immediately.
func (s *Store) RefreshDailyQuote() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quote = randomQuote()
	s.mirrorLocked()
}

// Flush blocks until all scheduled durable writes have finished. Called on
// shutdown so the final mutation is not lost to process exit.
func (s *Store) Flush() {
	s.pending.Wait()
}

// mirrorLocked schedules a fire-and-forget durable write of the persisted
// subset. Write failures are logged and swallowed; they never roll back the
// in-memory mutation that triggered them.
func (s *Store) mirrorLocked() {
	if s.persister == nil {
		return
	}
	snap := s.snapshotLocked()
	state := PersistedState{
		Workouts:       snap.Workouts,
		WorkoutHistory: snap.WorkoutHistory,
		Goals:          snap.Goals,
		UserStats:      snap.UserStats,
		TodaysQuote:    snap.TodaysQuote,
	}
	s.writeSeq++
	seq := s.writeSeq
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		if seq <= s.lastWritten {
			return // a newer snapshot already reached storage
		}
		if err := s.persister.SaveState(context.Background(), state); err != nil {
			s.log.Warn("state write failed, mutation not persisted", "error", err)
			return
		}
		s.lastWritten = seq
	}()
}
