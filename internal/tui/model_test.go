package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/heatmap"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/tracker"
)

func setupModel(t *testing.T, names ...string) (Model, *tracker.Service) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habits.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	svc := tracker.New(storage.NewRepository(store), time.UTC).
		WithClock(func() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) })
	for _, name := range names {
		if _, err := svc.AddHabit(tracker.HabitInput{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	m := New(svc, models.Settings{HeatmapWindow: "month", TrendWeeks: 12})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), svc
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers msg and then every message its command produces.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		if follow := cmd(); follow != nil {
			next, _ = m.Update(follow)
			m = next.(Model)
		}
	}
	return m
}

func TestTabsCycle(t *testing.T) {
	m, _ := setupModel(t)

	want := []SessionState{StateHeatmap, StateStats, StateGoals, StateToday}
	for _, state := range want {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != state {
			t.Fatalf("state = %d, want %d", m.state, state)
		}
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateGoals {
		t.Errorf("shift+tab from today should wrap to goals, got %d", m.state)
	}
}

func TestToggleToday(t *testing.T) {
	m, svc := setupModel(t, "Read")

	m = send(t, m, runes("x"))
	habits, _ := svc.Habits()
	if !habits[0].CompletedToday {
		t.Fatal("habit should be completed after toggle")
	}
	if !strings.Contains(m.status, "Read done (streak 1)") {
		t.Errorf("status = %q", m.status)
	}
	if h, _ := m.habitList.Selected(); !h.CompletedToday {
		t.Error("list was not refreshed")
	}

	m = send(t, m, runes("x"))
	habits, _ = svc.Habits()
	if habits[0].CompletedToday {
		t.Error("second toggle should undo the completion")
	}
	if m.status != "Read unmarked" {
		t.Errorf("status = %q", m.status)
	}
}

func TestDeleteConfirmation(t *testing.T) {
	m, svc := setupModel(t, "Read", "Write")

	m = send(t, m, runes("d"))
	if m.state != StateConfirmDelete || m.deleteName != "Read" {
		t.Fatalf("state = %d, deleteName = %q", m.state, m.deleteName)
	}
	if !strings.Contains(m.View(), `Delete "Read"`) {
		t.Error("confirmation prompt not shown")
	}

	m = send(t, m, runes("n"))
	if habits, _ := svc.Habits(); len(habits) != 2 {
		t.Fatalf("cancel must not delete, got %d habits", len(habits))
	}
	if m.state != StateToday {
		t.Errorf("state after cancel = %d", m.state)
	}

	m = send(t, m, runes("d"))
	m = send(t, m, runes("y"))
	habits, _ := svc.Habits()
	if len(habits) != 1 || habits[0].Name != "Write" {
		t.Errorf("habits after delete = %+v", habits)
	}
	if m.habitList.Len() != 1 {
		t.Errorf("list has %d items, want 1", m.habitList.Len())
	}
}

func TestAddOpensForm(t *testing.T) {
	m, _ := setupModel(t)

	m = send(t, m, runes("a"))
	if m.state != StateAddHabit || m.form == nil {
		t.Fatalf("state = %d, form = %v", m.state, m.form)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateToday {
		t.Errorf("esc should leave the form, state = %d", m.state)
	}
}

func TestHeatmapWindowCycle(t *testing.T) {
	m, _ := setupModel(t, "Read")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})

	if !strings.Contains(m.heatmapPane.Content(), "Read") {
		t.Errorf("heatmap pane missing habit: %q", m.heatmapPane.Content())
	}

	m = send(t, m, runes("w"))
	if m.window != heatmap.WindowSixMonths {
		t.Errorf("window = %s, want %s", m.window, heatmap.WindowSixMonths)
	}
	m = send(t, m, runes("w"))
	m = send(t, m, runes("w"))
	if m.window != heatmap.WindowMonth {
		t.Errorf("window should wrap to month, got %s", m.window)
	}
}

func TestGoalsPane(t *testing.T) {
	m, svc := setupModel(t, "Read")
	if m.goalsPane.Content() != "" {
		t.Errorf("goals pane should start empty, got %q", m.goalsPane.Content())
	}

	if _, err := svc.AddGoal(tracker.GoalInput{Title: "Read more", TargetDays: 5}); err != nil {
		t.Fatal(err)
	}
	m = send(t, m, runes("r"))
	if !strings.Contains(m.goalsPane.Content(), "Read more") {
		t.Errorf("goals pane = %q", m.goalsPane.Content())
	}
}

func TestToggleWeeklyAfterRollover(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habits.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)
	svc := tracker.New(storage.NewRepository(store), time.UTC).
		WithClock(func() time.Time { return now })

	h, err := svc.AddHabit(tracker.HabitInput{Name: "Long run", Frequency: models.Weekly()})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Rollover(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.ToggleToday(h.ID); err != nil {
		t.Fatal(err)
	}

	now = now.AddDate(0, 0, 1)
	if _, err := svc.Rollover(); err != nil {
		t.Fatal(err)
	}

	m := New(svc, models.Settings{HeatmapWindow: "month", TrendWeeks: 12})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	if sel, _ := m.habitList.Selected(); sel.CompletedToday {
		t.Fatal("habit done yesterday is shown as done today")
	}

	m = send(t, m, runes("x"))
	if !strings.Contains(m.status, "Long run done") {
		t.Errorf("status = %q, want today marked done", m.status)
	}
	if sel, _ := m.habitList.Selected(); !sel.CompletedToday {
		t.Error("list should show the habit as done after the toggle")
	}
}
