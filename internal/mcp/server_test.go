package mcp

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/repbook/internal/models"
	"github.com/meltforce/repbook/internal/stats"
	"github.com/meltforce/repbook/internal/store"
)

func testHandlers(t *testing.T) *handlers {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(context.Background(), nil, stats.FixedDuration(40), log)
	return &handlers{st: st, log: log}
}

func callReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// TestParseIntFieldCoercesMalformed verifies malformed numeric form input is
// coerced to 0 at this boundary instead of being rejected.
func TestParseIntFieldCoercesMalformed(t *testing.T) {
	cases := map[string]int{"42": 42, "": 0, "abc": 0, "-7": -7, "12.5": 0}
	for in, want := range cases {
		if got := parseIntField(in); got != want {
			t.Errorf("parseIntField(%q) = %d, want %d", in, got, want)
		}
	}
}

// TestParseFloatFieldCoercesMalformed verifies the float variant defaults
// malformed text to 0.
func TestParseFloatFieldCoercesMalformed(t *testing.T) {
	if got := parseFloatField("80.5"); got != 80.5 {
		t.Errorf("parseFloatField(80.5) = %v", got)
	}
	if got := parseFloatField("eighty"); got != 0 {
		t.Errorf("parseFloatField(eighty) = %v, want 0", got)
	}
}

// TestParseFlexTime verifies both accepted date formats and the error case.
func TestParseFlexTime(t *testing.T) {
	if ts, err := parseFlexTime("2026-03-10"); err != nil || ts.Day() != 10 {
		t.Errorf("parseFlexTime(date-only) = %v, %v", ts, err)
	}
	if ts, err := parseFlexTime("2026-03-10T08:30:00Z"); err != nil || ts.Hour() != 8 {
		t.Errorf("parseFlexTime(RFC3339) = %v, %v", ts, err)
	}
	if _, err := parseFlexTime("not-a-date"); err == nil {
		t.Error("expected error for invalid date")
	}
}

// TestCompleteWorkoutToolNotFound verifies completing an unknown workout
// surfaces a tool error while leaving the store untouched.
func TestCompleteWorkoutToolNotFound(t *testing.T) {
	h := testHandlers(t)

	res, err := h.completeWorkout(context.Background(), callReq(map[string]any{"id": "ghost"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error result for unknown workout")
	}
	if got := len(h.st.Snapshot().WorkoutHistory); got != 0 {
		t.Errorf("history length = %d, want 0", got)
	}
}

// TestCompleteWorkoutTool verifies the happy path updates the store.
func TestCompleteWorkoutTool(t *testing.T) {
	h := testHandlers(t)
	h.st.AddWorkout(models.Workout{ID: "w1", Name: "Push Day"})

	res, err := h.completeWorkout(context.Background(), callReq(map[string]any{"id": "w1"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res)
	}

	snap := h.st.Snapshot()
	if !snap.Workouts[0].Completed || snap.UserStats.TotalWorkouts != 1 {
		t.Errorf("store after completion = %+v", snap.UserStats)
	}
}

// TestUpdateGoalValueToolLeavesCompletedAlone verifies the value-update path
// rederives progress through UpdateGoal without touching the completed flag,
// even when the new value reaches the target.
func TestUpdateGoalValueToolLeavesCompletedAlone(t *testing.T) {
	h := testHandlers(t)
	target := 100.0
	current := 40.0
	h.st.AddGoal(models.Goal{
		ID: "g1", Title: "Squat 100kg", Type: models.GoalStrength,
		TargetValue: &target, CurrentValue: &current, Progress: 40,
	})

	res, err := h.updateGoalValue(context.Background(), callReq(map[string]any{
		"id":            "g1",
		"current_value": "100",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res)
	}

	g := h.st.Snapshot().Goals[0]
	if g.Progress != 100 || *g.CurrentValue != 100 {
		t.Errorf("goal = progress %d, current %v; want 100/100", g.Progress, *g.CurrentValue)
	}
	if g.Completed {
		t.Error("update_goal_value derived completion; only update_goal_progress does that")
	}
}

// TestAddGoalToolDerivesProgress verifies the creation flow derives initial
// progress from current/target values.
func TestAddGoalToolDerivesProgress(t *testing.T) {
	h := testHandlers(t)

	res, err := h.addGoal(context.Background(), callReq(map[string]any{
		"title":         "Squat 100kg",
		"type":          "strength",
		"metric":        "kg",
		"target_value":  "100",
		"current_value": "40",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res)
	}

	goals := h.st.Snapshot().Goals
	if len(goals) != 1 {
		t.Fatalf("goals = %d, want 1", len(goals))
	}
	if goals[0].Progress != 40 || goals[0].Completed {
		t.Errorf("goal = progress %d, completed %v; want 40/false", goals[0].Progress, goals[0].Completed)
	}
}
