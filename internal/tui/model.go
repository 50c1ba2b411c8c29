// Package tui is the interactive dashboard: today's checklist plus heatmap,
// stats and goals tabs.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/forms"
	"github.com/julianstephens/habitual/internal/heatmap"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/render"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/tui/components/habitlist"
	"github.com/julianstephens/habitual/internal/tui/components/pane"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHeatmap
	StateStats
	StateGoals
	StateAddHabit
	StateConfirmDelete
)

var tabTitles = []string{"Today", "Heatmap", "Stats", "Goals"}

const tabCount = 4

type Model struct {
	tracker     *tracker.Service
	settings    models.Settings
	state       SessionState
	keys        KeyMap
	help        help.Model
	habitList   habitlist.Model
	heatmapPane pane.Model
	statsPane   pane.Model
	goalsPane   pane.Model
	form        *huh.Form
	habitForm   *forms.HabitForm
	window      heatmap.Window
	deleteID    string
	deleteName  string
	status      string
	err         error
	quitting    bool
	width       int
	height      int
}

func New(svc *tracker.Service, settings models.Settings) Model {
	window, err := heatmap.ParseWindow(settings.HeatmapWindow)
	if err != nil {
		window = heatmap.WindowMonth
	}

	m := Model{
		tracker:     svc,
		settings:    settings,
		state:       StateToday,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		habitList:   habitlist.New(nil, 0, 0),
		heatmapPane: pane.New(0, 0, "No habits to chart yet."),
		statsPane:   pane.New(0, 0, "No data yet."),
		goalsPane:   pane.New(0, 0, "No goals yet. Add one with 'habitual goal add'."),
		window:      window,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads every tab from the store.
func (m *Model) refresh() {
	habits, err := m.tracker.Habits()
	if err != nil {
		m.fail(err)
		return
	}
	m.habitList.SetHabits(habits)
	m.heatmapPane.SetContent(m.heatmapContent(habits))
	m.statsPane.SetContent(m.statsContent(habits))

	statuses, err := m.tracker.Goals()
	if err != nil {
		m.fail(err)
		return
	}
	m.goalsPane.SetContent(goalsContent(statuses))
}

func (m *Model) fail(err error) {
	logger.Error("dashboard action failed", "error", err)
	m.err = err
}

func (m Model) heatmapContent(habits []models.Habit) string {
	if len(habits) == 0 {
		return ""
	}
	today := m.tracker.TodayDate()
	parts := make([]string, len(habits))
	for i, h := range habits {
		parts[i] = render.Heatmap(h, heatmap.Generate(h, m.window, today))
	}
	return strings.Join(parts, "\n")
}

func (m Model) statsContent(habits []models.Habit) string {
	if len(habits) == 0 {
		return ""
	}
	today := m.tracker.TodayDate()
	parts := []string{
		render.TodaySummary(analytics.Today(habits), m.tracker.Today()),
		render.Records(analytics.Records(habits)),
		render.WeeklyPattern(analytics.WeeklyPattern(habits)),
		render.Trend(analytics.CompletionTrend(habits, today, m.settings.TrendWeeks)),
		render.Performance(analytics.Performance(habits)),
		render.Achievements(analytics.Achievements(habits)),
	}
	return strings.Join(parts, "\n")
}

func goalsContent(statuses []tracker.GoalStatus) string {
	if len(statuses) == 0 {
		return ""
	}
	var b strings.Builder
	for _, st := range statuses {
		b.WriteString(render.GoalLine(st.Goal, st.Progress))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.Toggle, m.keys.Add, m.keys.Delete)
	case StateHeatmap:
		keys = append(keys, m.keys.Window)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}

	var actions []key.Binding
	switch m.state {
	case StateToday:
		actions = []key.Binding{m.keys.Toggle, m.keys.Add, m.keys.Delete}
	case StateHeatmap:
		actions = []key.Binding{m.keys.Window}
	}

	return [][]key.Binding{global, navigation, actions}
}
