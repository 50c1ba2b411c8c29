package goals

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/tracker"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habits.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.General.Timezone = "UTC"

	out := &bytes.Buffer{}
	ctx := cli.New(store, cfg)
	ctx.Out = out
	ctx.Clock = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	if _, err := ctx.Start(); err != nil {
		t.Fatalf("failed to start: %v", err)
	}
	return ctx, out
}

func onlyGoal(t *testing.T, ctx *cli.Context) tracker.GoalStatus {
	t.Helper()
	statuses, err := ctx.Tracker.Goals()
	if err != nil {
		t.Fatal(err)
	}
	if len(statuses) != 1 {
		t.Fatalf("got %d goals, want 1", len(statuses))
	}
	return statuses[0]
}

func TestGoalAddCmd_Linked(t *testing.T) {
	ctx, out := setupTestContext(t)
	h, err := ctx.Tracker.AddHabit(tracker.HabitInput{Name: "Exercise"})
	if err != nil {
		t.Fatal(err)
	}
	for _, day := range []string{"2026-10-18", "2026-10-19"} {
		if _, _, err := ctx.Tracker.SetCompletion(h.ID, day, true, nil, nil); err != nil {
			t.Fatal(err)
		}
	}

	cmd := &GoalAddCmd{Title: "Move twice a week", Target: 2, Habit: "exercise", Period: "week", Unit: "days"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("goal add failed: %v", err)
	}

	st := onlyGoal(t, ctx)
	if st.Goal.HabitID != h.ID {
		t.Errorf("goal not linked to habit")
	}
	if st.Progress.Value != 2 || !st.Progress.Completed {
		t.Errorf("progress = %+v, want value 2 and completed", st.Progress)
	}

	out.Reset()
	if err := (&GoalListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Move twice a week") || !strings.Contains(out.String(), "done") {
		t.Errorf("unexpected list output:\n%s", out.String())
	}
}

func TestGoalAddCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		cmd  GoalAddCmd
	}{
		{"missing title", GoalAddCmd{Target: 3, Period: "week"}},
		{"zero target", GoalAddCmd{Title: "Read", Period: "week"}},
		{"bad period", GoalAddCmd{Title: "Read", Target: 3, Period: "fortnight"}},
		{"bad deadline", GoalAddCmd{Title: "Read", Target: 3, Period: "week", Deadline: "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestContext(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGoalAddCmd_UnknownHabit(t *testing.T) {
	ctx, out := setupTestContext(t)
	cmd := &GoalAddCmd{Title: "Run", Target: 3, Habit: "Running", Period: "week"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("unknown habit should not fail: %v", err)
	}
	if !strings.Contains(out.String(), `habit "Running" not found`) {
		t.Errorf("unexpected output: %q", out.String())
	}
	if statuses, _ := ctx.Tracker.Goals(); len(statuses) != 0 {
		t.Error("goal should not be created")
	}
}

func TestGoalManualProgress(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&GoalAddCmd{Title: "Books", Target: 12, Period: "year", Unit: "books"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	id := onlyGoal(t, ctx).Goal.ID

	if err := (&GoalProgressCmd{Goal: id[:8], Add: 3}).Run(ctx); err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if err := (&GoalProgressCmd{Goal: "books", Add: 1}).Run(ctx); err != nil {
		t.Fatalf("progress by title failed: %v", err)
	}
	if v := onlyGoal(t, ctx).Goal.CurrentValue; v != 4 {
		t.Errorf("current value = %d, want 4", v)
	}

	if err := (&GoalSetCmd{Goal: id, Value: 12}).Run(ctx); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	st := onlyGoal(t, ctx)
	if !st.Progress.Completed || st.Progress.Percent != 100 {
		t.Errorf("progress = %+v, want completed at 100%%", st.Progress)
	}

	if err := (&GoalSetCmd{Goal: id, Value: -1}).Run(ctx); err == nil {
		t.Error("expected error for negative value")
	}

	out.Reset()
	if err := (&GoalDeleteCmd{Goal: id}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Deleted goal: Books") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestGoalSetCmd_LinkedGoalRejected(t *testing.T) {
	ctx, _ := setupTestContext(t)
	if _, err := ctx.Tracker.AddHabit(tracker.HabitInput{Name: "Read"}); err != nil {
		t.Fatal(err)
	}
	if err := (&GoalAddCmd{Title: "Read daily", Target: 7, Habit: "Read", Period: string(models.PeriodWeek)}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&GoalSetCmd{Goal: "Read daily", Value: 3}).Run(ctx); err == nil {
		t.Error("expected error when setting a linked goal")
	}
}

func TestGoalDeleteCmd_NotFound(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&GoalDeleteCmd{Goal: "nothing"}).Run(ctx); err != nil {
		t.Fatalf("unknown goal should not fail: %v", err)
	}
	if !strings.Contains(out.String(), `goal "nothing" not found`) {
		t.Errorf("unexpected output: %q", out.String())
	}
}
