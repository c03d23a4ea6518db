// Package mcp exposes the workout store over the Model Context Protocol.
// Tools map one-to-one onto the store's action surface; resources expose the
// read-only snapshot, the exercise catalog, and the daily quote. The server
// runs over stdio only.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/repbook/internal/store"
)

// New creates an MCP server with all tools and resources registered.
func New(st *store.Store, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("repbook", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("repbook workout tracker. Read workouts, goals, and user statistics, complete workouts, and manage goal progress. All data belongs to the single local user."),
	)

	h := &handlers{st: st, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolListGoals, Handler: h.listGoals},
		server.ServerTool{Tool: toolGetStats, Handler: h.getStats},
		server.ServerTool{Tool: toolGetWorkoutHistory, Handler: h.getWorkoutHistory},
		server.ServerTool{Tool: toolAddWorkout, Handler: h.addWorkout},
		server.ServerTool{Tool: toolCompleteWorkout, Handler: h.completeWorkout},
		server.ServerTool{Tool: toolDeleteWorkout, Handler: h.deleteWorkout},
		server.ServerTool{Tool: toolAddGoal, Handler: h.addGoal},
		server.ServerTool{Tool: toolUpdateGoalValue, Handler: h.updateGoalValue},
		server.ServerTool{Tool: toolUpdateGoalProgress, Handler: h.updateGoalProgress},
		server.ServerTool{Tool: toolCompleteGoal, Handler: h.completeGoal},
		server.ServerTool{Tool: toolDeleteGoal, Handler: h.deleteGoal},
		server.ServerTool{Tool: toolRefreshDailyQuote, Handler: h.refreshDailyQuote},
	)

	s.AddResources(
		server.ServerResource{Resource: resSnapshot, Handler: h.snapshot},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
		server.ServerResource{Resource: resDailyQuote, Handler: h.dailyQuote},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	st  *store.Store
	log *slog.Logger
}

// --- Resource definitions ---

var resSnapshot = mcp.NewResource(
	"repbook://snapshot",
	"Store Snapshot",
	mcp.WithResourceDescription("Current workouts, goals, user statistics, and today's quote"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"repbook://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("Static exercise reference data: names, categories, muscle groups"),
	mcp.WithMIMEType("application/json"),
)

var resDailyQuote = mcp.NewResource(
	"repbook://daily_quote",
	"Daily Quote",
	mcp.WithResourceDescription("Today's motivational quote"),
	mcp.WithMIMEType("application/json"),
)
