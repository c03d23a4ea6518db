// Command repbook is the terminal client for the workout store: it reads
// snapshots and invokes store actions, nothing more. All business logic lives
// in internal/store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/repbook/internal/catalog"
	"github.com/meltforce/repbook/internal/config"
	"github.com/meltforce/repbook/internal/models"
	"github.com/meltforce/repbook/internal/stats"
	"github.com/meltforce/repbook/internal/storage"
	"github.com/meltforce/repbook/internal/store"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: repbook [-config config.yaml] <command> [options]

Commands:
  stats                              show user statistics and today's quote
  quote [-refresh]                   show (or refresh) the daily quote
  catalog                            list the exercise catalog
  workouts                           list workouts
  history                            list workout completion history
  add-workout -name N [-exercises 1,2] [-date YYYY-MM-DD] [-notes ...]
  complete-workout -id ID
  delete-workout -id ID
  goals                              list goals
  add-goal -title T [-type custom] [-metric M] [-target V] [-current V] [-date YYYY-MM-DD]
  progress -id ID -value P           set goal progress (0-100)
  set-goal-value -id ID -value V     record a new current value, rederiving progress
  complete-goal -id ID
  delete-goal -id ID
`)
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	command := flag.Arg(0)
	args := flag.Args()[1:]

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

	db, err := storage.Open(cfg.Storage.Path, cfg.Storage.StateKey)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	st := store.New(context.Background(), db, stats.SimulatedDuration{}, log)

	if err := run(st, command, args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		st.Flush()
		os.Exit(1)
	}
	st.Flush()
}

func run(st *store.Store, command string, args []string) error {
	switch command {
	case "stats":
		return showStats(st)
	case "quote":
		return showQuote(st, args)
	case "catalog":
		return showCatalog()
	case "workouts":
		return listWorkouts(st)
	case "history":
		return listHistory(st)
	case "add-workout":
		return addWorkout(st, args)
	case "complete-workout":
		return completeWorkout(st, args)
	case "delete-workout":
		return deleteWorkout(st, args)
	case "goals":
		return listGoals(st)
	case "add-goal":
		return addGoal(st, args)
	case "progress":
		return updateProgress(st, args)
	case "set-goal-value":
		return setGoalValue(st, args)
	case "complete-goal":
		return completeGoal(st, args)
	case "delete-goal":
		return deleteGoal(st, args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func showStats(st *store.Store) error {
	snap := st.Snapshot()
	s := snap.UserStats
	fmt.Printf("Streak:         %d\n", s.Streak)
	fmt.Printf("Total workouts: %d\n", s.TotalWorkouts)
	fmt.Printf("This week:      %d\n", s.ThisWeekWorkouts)
	fmt.Printf("This month:     %d\n", s.ThisMonthWorkouts)
	fmt.Printf("\n%q\n", snap.TodaysQuote)
	return nil
}

func showQuote(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("quote", flag.ExitOnError)
	refresh := fs.Bool("refresh", false, "draw a new quote")
	fs.Parse(args)

	if *refresh {
		st.RefreshDailyQuote()
	}
	fmt.Println(st.Snapshot().TodaysQuote)
	return nil
}

func showCatalog() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tMUSCLE GROUPS")
	for _, ex := range catalog.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ex.ID, ex.Name, ex.Category, strings.Join(ex.MuscleGroups, ", "))
	}
	return w.Flush()
}

func listWorkouts(st *store.Store) error {
	snap := st.Snapshot()
	if len(snap.Workouts) == 0 {
		fmt.Println("no workouts")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDATE\tEXERCISES\tSTATUS")
	for _, wo := range snap.Workouts {
		status := "active"
		if wo.Completed {
			status = "completed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			wo.ID, wo.Name, wo.Date.Format("2006-01-02"), len(wo.Exercises), status)
	}
	return w.Flush()
}

func listHistory(st *store.Store) error {
	snap := st.Snapshot()
	if len(snap.WorkoutHistory) == 0 {
		fmt.Println("no completions yet")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tWORKOUT\tDURATION\tEXERCISES\tINTENSITY")
	for _, h := range snap.WorkoutHistory {
		fmt.Fprintf(w, "%s\t%s\t%d min\t%d\t%s\n",
			h.Date.Format("2006-01-02 15:04"), h.WorkoutID, h.Duration, h.ExerciseCount, h.Intensity)
	}
	return w.Flush()
}

func addWorkout(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("add-workout", flag.ExitOnError)
	name := fs.String("name", "", "workout name (required)")
	exerciseIDs := fs.String("exercises", "", "comma-separated catalog exercise IDs")
	date := fs.String("date", "", "workout date (YYYY-MM-DD, defaults to today)")
	notes := fs.String("notes", "", "optional notes")
	fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("add-workout: -name is required")
	}

	when := time.Now()
	if *date != "" {
		t, err := time.ParseInLocation("2006-01-02", *date, time.Local)
		if err != nil {
			return fmt.Errorf("add-workout: invalid date %q", *date)
		}
		when = t
	}

	var exercises []models.WorkoutExercise
	for _, id := range strings.Split(*exerciseIDs, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := catalog.ByID(id); !ok {
			return fmt.Errorf("add-workout: unknown exercise id %q", id)
		}
		exercises = append(exercises, models.WorkoutExercise{
			ExerciseID: id,
			Sets:       []models.WorkoutSet{{ID: uuid.NewString(), ExerciseID: id}},
		})
	}

	workout := models.Workout{
		ID:        uuid.NewString(),
		Name:      *name,
		Date:      when,
		Exercises: exercises,
		Notes:     *notes,
	}
	st.AddWorkout(workout)
	fmt.Printf("added workout %s\n", workout.ID)
	return nil
}

func completeWorkout(st *store.Store, args []string) error {
	id, err := requireID("complete-workout", args)
	if err != nil {
		return err
	}
	if st.CompleteWorkout(id) == store.NotFound {
		return fmt.Errorf("workout not found: %s", id)
	}
	return showStats(st)
}

func deleteWorkout(st *store.Store, args []string) error {
	id, err := requireID("delete-workout", args)
	if err != nil {
		return err
	}
	if st.DeleteWorkout(id) == store.NotFound {
		return fmt.Errorf("workout not found: %s", id)
	}
	fmt.Printf("deleted workout %s\n", id)
	return nil
}

func listGoals(st *store.Store) error {
	snap := st.Snapshot()
	if len(snap.Goals) == 0 {
		fmt.Println("no goals")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTYPE\tPROGRESS\tSTATUS")
	for _, g := range snap.Goals {
		status := "active"
		if g.Completed {
			status = "completed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d%%\t%s\n", g.ID, g.Title, g.Type, g.Progress, status)
	}
	return w.Flush()
}

func addGoal(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("add-goal", flag.ExitOnError)
	title := fs.String("title", "", "goal title (required)")
	goalType := fs.String("type", "custom", "goal type: strength, endurance, weight, habit, custom")
	description := fs.String("description", "", "optional description")
	metric := fs.String("metric", "", "optional metric label")
	target := fs.String("target", "", "optional numeric target value")
	current := fs.String("current", "", "optional numeric current value")
	date := fs.String("date", "", "optional target date (YYYY-MM-DD)")
	fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("add-goal: -title is required")
	}

	goal := models.Goal{
		ID:          uuid.NewString(),
		Title:       *title,
		Description: *description,
		Type:        models.GoalType(*goalType),
		Metric:      *metric,
	}
	if *date != "" {
		t, err := time.ParseInLocation("2006-01-02", *date, time.Local)
		if err != nil {
			return fmt.Errorf("add-goal: invalid date %q", *date)
		}
		goal.TargetDate = &t
	}
	// Malformed numeric text coerces to 0 here, before it reaches the store.
	if *target != "" {
		v := parseFloatField(*target)
		goal.TargetValue = &v
	}
	if *current != "" {
		v := parseFloatField(*current)
		goal.CurrentValue = &v
	}
	if goal.CurrentValue != nil && goal.TargetValue != nil {
		goal.Progress = models.ProgressFromValues(*goal.CurrentValue, *goal.TargetValue)
	}

	st.AddGoal(goal)
	fmt.Printf("added goal %s (%d%%)\n", goal.ID, goal.Progress)
	return nil
}

func updateProgress(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("progress", flag.ExitOnError)
	id := fs.String("id", "", "goal ID (required)")
	value := fs.String("value", "", "progress percentage 0-100 (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("progress: -id is required")
	}
	progress := models.ClampProgress(parseIntField(*value))
	if st.UpdateGoalProgress(*id, progress) == store.NotFound {
		return fmt.Errorf("goal not found: %s", *id)
	}
	fmt.Printf("goal %s progress set to %d%%\n", *id, progress)
	return nil
}

func setGoalValue(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("set-goal-value", flag.ExitOnError)
	id := fs.String("id", "", "goal ID (required)")
	value := fs.String("value", "", "new current value (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("set-goal-value: -id is required")
	}

	var goal *models.Goal
	for _, g := range st.Snapshot().Goals {
		if g.ID == *id {
			goal = &g
			break
		}
	}
	if goal == nil {
		return fmt.Errorf("goal not found: %s", *id)
	}
	if goal.TargetValue == nil {
		return fmt.Errorf("goal %s has no target value", *id)
	}

	current := parseFloatField(*value)
	goal.CurrentValue = &current
	goal.Progress = models.ProgressFromValues(current, *goal.TargetValue)
	// Writes through UpdateGoal, which leaves the completed flag alone;
	// complete-goal and progress are the paths that touch it.
	if st.UpdateGoal(*goal) == store.NotFound {
		return fmt.Errorf("goal not found: %s", *id)
	}
	fmt.Printf("goal %s now at %v/%v (%d%%)\n", *id, current, *goal.TargetValue, goal.Progress)
	return nil
}

func completeGoal(st *store.Store, args []string) error {
	id, err := requireID("complete-goal", args)
	if err != nil {
		return err
	}
	if st.CompleteGoal(id) == store.NotFound {
		return fmt.Errorf("goal not found: %s", id)
	}
	fmt.Printf("completed goal %s\n", id)
	return nil
}

func deleteGoal(st *store.Store, args []string) error {
	id, err := requireID("delete-goal", args)
	if err != nil {
		return err
	}
	if st.DeleteGoal(id) == store.NotFound {
		return fmt.Errorf("goal not found: %s", id)
	}
	fmt.Printf("deleted goal %s\n", id)
	return nil
}

func requireID(command string, args []string) (string, error) {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	id := fs.String("id", "", "entity ID (required)")
	fs.Parse(args)
	if *id == "" {
		return "", fmt.Errorf("%s: -id is required", command)
	}
	return *id, nil
}

// parseIntField coerces numeric form input to an int, defaulting malformed
// text to 0 at the UI boundary.
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
