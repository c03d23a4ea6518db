package mcp

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/repbook/internal/models"
	"github.com/meltforce/repbook/internal/store"
)

// parseIntField coerces a numeric form field to an int, defaulting malformed
// text to 0. Numeric validation belongs at this boundary, not in the store.
func parseIntField(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseFloatField(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// --- Tool definitions ---

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List all workouts with their exercises and sets. Optionally filter by completion state."),
	mcp.WithString("status", mcp.Description("Filter: 'active' (not completed), 'completed', or 'all'. Defaults to 'all'."), mcp.Enum("active", "completed", "all")),
)

var toolListGoals = mcp.NewTool("list_goals",
	mcp.WithDescription("List all goals with progress, type, and target values."),
	mcp.WithString("status", mcp.Description("Filter: 'active', 'completed', or 'all'. Defaults to 'all'."), mcp.Enum("active", "completed", "all")),
)

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Current user statistics: streak, total workouts, this week's and this month's completion counts."),
)

var toolGetWorkoutHistory = mcp.NewTool("get_workout_history",
	mcp.WithDescription("Completion history records: date, source workout id, duration, exercise count, intensity. History survives workout deletion."),
)

var toolAddWorkout = mcp.NewTool("add_workout",
	mcp.WithDescription("Create a workout. Pass the workout as a JSON document with name, date (RFC 3339), and exercises ([{exerciseId, sets:[{reps, weight, duration, distance}]}]). An id is generated when absent."),
	mcp.WithString("workout", mcp.Required(), mcp.Description("Workout JSON document")),
)

var toolCompleteWorkout = mcp.NewTool("complete_workout",
	mcp.WithDescription("Mark a workout completed, record a history entry, and update user statistics. Irreversible."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout ID")),
)

var toolDeleteWorkout = mcp.NewTool("delete_workout",
	mcp.WithDescription("Delete a workout. Completion history referencing it is kept."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout ID")),
)

var toolAddGoal = mcp.NewTool("add_goal",
	mcp.WithDescription("Create a goal. Initial progress is derived from current/target values when both are given."),
	mcp.WithString("title", mcp.Required(), mcp.Description("Goal title")),
	mcp.WithString("type", mcp.Description("Goal type. Defaults to 'custom'."), mcp.Enum("strength", "endurance", "weight", "habit", "custom")),
	mcp.WithString("description", mcp.Description("Optional description")),
	mcp.WithString("target_date", mcp.Description("Optional target date (RFC 3339 or YYYY-MM-DD)")),
	mcp.WithString("metric", mcp.Description("Optional metric label, e.g. 'kg' or 'km'")),
	mcp.WithString("target_value", mcp.Description("Optional numeric target value")),
	mcp.WithString("current_value", mcp.Description("Optional numeric current value")),
)

var toolUpdateGoalValue = mcp.NewTool("update_goal_value",
	mcp.WithDescription("Record a new current value for a goal with a numeric target. Progress is rederived from current/target; the completed flag is left untouched (use complete_goal or update_goal_progress for that)."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Goal ID")),
	mcp.WithString("current_value", mcp.Required(), mcp.Description("New numeric current value")),
)

var toolUpdateGoalProgress = mcp.NewTool("update_goal_progress",
	mcp.WithDescription("Set a goal's progress percentage (clamped to 0-100). Reaching 100 marks the goal completed; anything below marks it not completed."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Goal ID")),
	mcp.WithString("progress", mcp.Required(), mcp.Description("Progress percentage 0-100")),
)

var toolCompleteGoal = mcp.NewTool("complete_goal",
	mcp.WithDescription("Force a goal to completed with progress 100, regardless of current progress. Irreversible."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Goal ID")),
)

var toolDeleteGoal = mcp.NewTool("delete_goal",
	mcp.WithDescription("Delete a goal."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Goal ID")),
)

var toolRefreshDailyQuote = mcp.NewTool("refresh_daily_quote",
	mcp.WithDescription("Replace today's quote with a random pick from the quote pool. May repeat the current quote."),
)

// --- Tool handlers ---

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := req.GetString("status", "all")
	snap := h.st.Snapshot()

	out := snap.Workouts[:0:0]
	for _, w := range snap.Workouts {
		switch status {
		case "active":
			if w.Completed {
				continue
			}
		case "completed":
			if !w.Completed {
				continue
			}
		}
		out = append(out, w)
	}

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listGoals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := req.GetString("status", "all")
	snap := h.st.Snapshot()

	out := snap.Goals[:0:0]
	for _, g := range snap.Goals {
		switch status {
		case "active":
			if g.Completed {
				continue
			}
		case "completed":
			if !g.Completed {
				continue
			}
		}
		out = append(out, g)
	}

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := h.st.Snapshot()
	result, err := mcp.NewToolResultJSON(snap.UserStats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := h.st.Snapshot()
	result, err := mcp.NewToolResultJSON(snap.WorkoutHistory)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) addWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("workout")
	if err != nil {
		return mcp.NewToolResultError("workout parameter is required"), nil
	}

	var w models.Workout
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return mcp.NewToolResultError("invalid workout JSON: " + err.Error()), nil
	}
	if w.Name == "" {
		return mcp.NewToolResultError("workout name is required"), nil
	}
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.Date.IsZero() {
		w.Date = time.Now()
	}
	w.Completed = false

	h.st.AddWorkout(w)
	result, err := mcp.NewToolResultJSON(w)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) completeWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	if h.st.CompleteWorkout(id) == store.NotFound {
		return mcp.NewToolResultError("workout not found: " + id), nil
	}
	result, err := mcp.NewToolResultJSON(h.st.Snapshot().UserStats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) deleteWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	if h.st.DeleteWorkout(id) == store.NotFound {
		return mcp.NewToolResultError("workout not found: " + id), nil
	}
	return mcp.NewToolResultText("deleted " + id), nil
}

func (h *handlers) addGoal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title parameter is required"), nil
	}

	g := models.Goal{
		ID:          uuid.NewString(),
		Title:       title,
		Description: req.GetString("description", ""),
		Type:        models.GoalType(req.GetString("type", string(models.GoalCustom))),
		Metric:      req.GetString("metric", ""),
	}
	if s := req.GetString("target_date", ""); s != "" {
		t, err := parseFlexTime(s)
		if err != nil {
			return mcp.NewToolResultError("invalid target_date: " + err.Error()), nil
		}
		g.TargetDate = &t
	}
	if s := req.GetString("target_value", ""); s != "" {
		v := parseFloatField(s)
		g.TargetValue = &v
	}
	if s := req.GetString("current_value", ""); s != "" {
		v := parseFloatField(s)
		g.CurrentValue = &v
	}
	if g.CurrentValue != nil && g.TargetValue != nil {
		g.Progress = models.ProgressFromValues(*g.CurrentValue, *g.TargetValue)
	}

	h.st.AddGoal(g)
	result, err := mcp.NewToolResultJSON(g)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) updateGoalValue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	raw, err := req.RequireString("current_value")
	if err != nil {
		return mcp.NewToolResultError("current_value parameter is required"), nil
	}

	var goal *models.Goal
	for _, g := range h.st.Snapshot().Goals {
		if g.ID == id {
			goal = &g
			break
		}
	}
	if goal == nil {
		return mcp.NewToolResultError("goal not found: " + id), nil
	}
	if goal.TargetValue == nil {
		return mcp.NewToolResultError("goal has no target value: " + id), nil
	}

	current := parseFloatField(raw)
	goal.CurrentValue = &current
	goal.Progress = models.ProgressFromValues(current, *goal.TargetValue)
	// Deliberately writes through UpdateGoal, which does not touch the
	// completed flag.
	if h.st.UpdateGoal(*goal) == store.NotFound {
		return mcp.NewToolResultError("goal not found: " + id), nil
	}

	result, err := mcp.NewToolResultJSON(goal)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) updateGoalProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	raw, err := req.RequireString("progress")
	if err != nil {
		return mcp.NewToolResultError("progress parameter is required"), nil
	}
	progress := models.ClampProgress(parseIntField(raw))
	if h.st.UpdateGoalProgress(id, progress) == store.NotFound {
		return mcp.NewToolResultError("goal not found: " + id), nil
	}
	return mcp.NewToolResultText("progress set to " + strconv.Itoa(progress)), nil
}

func (h *handlers) completeGoal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	if h.st.CompleteGoal(id) == store.NotFound {
		return mcp.NewToolResultError("goal not found: " + id), nil
	}
	return mcp.NewToolResultText("completed " + id), nil
}

func (h *handlers) deleteGoal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	if h.st.DeleteGoal(id) == store.NotFound {
		return mcp.NewToolResultError("goal not found: " + id), nil
	}
	return mcp.NewToolResultText("deleted " + id), nil
}

func (h *handlers) refreshDailyQuote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.st.RefreshDailyQuote()
	return mcp.NewToolResultText(h.st.Snapshot().TodaysQuote), nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
