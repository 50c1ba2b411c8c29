package reminders

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/config"
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

func TestReminderLifecycle(t *testing.T) {
	ctx, out := setupTestContext(t)
	h, err := ctx.Tracker.AddHabit(tracker.HabitInput{Name: "Meditate"})
	if err != nil {
		t.Fatal(err)
	}

	if err := (&ReminderAddCmd{Habit: "meditate", Time: "06:45"}).Run(ctx); err != nil {
		t.Fatalf("reminder add failed: %v", err)
	}
	statuses, err := ctx.Tracker.Reminders()
	if err != nil || len(statuses) != 1 {
		t.Fatalf("reminders = %v, %v; want one", statuses, err)
	}
	id := statuses[0].Reminder.ID

	if err := (&ReminderToggleCmd{ID: id[:6]}).Run(ctx); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !strings.Contains(out.String(), "Meditate at 06:45 disabled") {
		t.Errorf("unexpected output: %q", out.String())
	}

	if _, err := ctx.Tracker.DeleteHabit(h.ID); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&ReminderListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "(habit deleted)") || !strings.Contains(out.String(), "off") {
		t.Errorf("unexpected list output:\n%s", out.String())
	}

	if err := (&ReminderDeleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&ReminderListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No reminders found.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestReminderAddCmd_InvalidTime(t *testing.T) {
	ctx, _ := setupTestContext(t)
	if _, err := ctx.Tracker.AddHabit(tracker.HabitInput{Name: "Read"}); err != nil {
		t.Fatal(err)
	}
	for _, clock := range []string{"25:00", "7pm", ""} {
		if err := (&ReminderAddCmd{Habit: "Read", Time: clock}).Run(ctx); err == nil {
			t.Errorf("expected error for time %q", clock)
		}
	}
}

func TestReminderToggleCmd_NotFound(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&ReminderToggleCmd{ID: "missing"}).Run(ctx); err != nil {
		t.Fatalf("unknown reminder should not fail: %v", err)
	}
	if !strings.Contains(out.String(), `reminder "missing" not found`) {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestReminderAgendaCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&ReminderAgendaCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No reminders scheduled for 2026-10-19.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	read, err := ctx.Tracker.AddHabit(tracker.HabitInput{Name: "Read"})
	if err != nil {
		t.Fatal(err)
	}
	walk, err := ctx.Tracker.AddHabit(tracker.HabitInput{Name: "Walk"})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range []struct{ id, at string }{{read.ID, "21:00"}, {walk.ID, "08:00"}} {
		if _, err := ctx.Tracker.AddReminder(r.id, r.at); err != nil {
			t.Fatal(err)
		}
	}

	out.Reset()
	if err := (&ReminderAgendaCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if strings.Index(got, "08:00") > strings.Index(got, "21:00") {
		t.Errorf("agenda not in time order:\n%s", got)
	}
	if !strings.Contains(got, "overdue") || !strings.Contains(got, "Next: Read at 21:00 (2 open)") {
		t.Errorf("unexpected agenda:\n%s", got)
	}
}
