package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/forms"
	"github.com/julianstephens/habitual/internal/heatmap"
	"github.com/julianstephens/habitual/internal/tui/components/habitlist"
)

// chromeHeight is the space taken by the tab bar, status line and help.
const chromeHeight = 5

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(size.Width, size.Height)
		return m, nil
	}

	switch m.state {
	case StateAddHabit:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case habitlist.AddHabitMsg:
		m.habitForm = &forms.HabitForm{}
		m.form = forms.NewHabitForm(m.habitForm)
		m.state = StateAddHabit
		return m, m.form.Init()

	case habitlist.ToggleHabitMsg:
		h, ok, err := m.tracker.ToggleToday(msg.ID)
		switch {
		case err != nil:
			m.fail(err)
		case !ok:
			m.status = "Habit no longer exists."
		case h.CompletedToday:
			m.status = fmt.Sprintf("✓ %s done (streak %d)", h.Name, h.Streak)
		default:
			m.status = fmt.Sprintf("%s unmarked", h.Name)
		}
		m.refresh()
		return m, nil

	case habitlist.DeleteHabitMsg:
		m.deleteID, m.deleteName = msg.ID, msg.Name
		m.state = StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.err = nil
			m.status = ""
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Window) && m.state == StateHeatmap:
			m.window = nextWindow(m.window)
			m.status = "Window: " + string(m.window)
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.habitList, cmd = m.habitList.Update(msg)
	case StateHeatmap:
		m.heatmapPane, cmd = m.heatmapPane.Update(msg)
	case StateStats:
		m.statsPane, cmd = m.statsPane.Update(msg)
	case StateGoals:
		m.goalsPane, cmd = m.goalsPane.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateToday
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = StateToday
		in, err := m.habitForm.Input()
		if err == nil {
			_, err = m.tracker.AddHabit(in)
		}
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("✓ Added %s", in.Name)
		m.refresh()
		return m, nil
	case huh.StateAborted:
		m.state = StateToday
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		deleted, err := m.tracker.DeleteHabit(m.deleteID)
		switch {
		case err != nil:
			m.fail(err)
		case deleted:
			m.status = fmt.Sprintf("Deleted %s", m.deleteName)
		}
		m.refresh()
	case key.Matches(keyMsg, m.keys.Cancel):
	default:
		return m, nil
	}
	m.deleteID, m.deleteName = "", ""
	m.state = StateToday
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	h, v := docStyle.GetFrameSize()
	bodyW := max(width-h, 0)
	bodyH := max(height-v-chromeHeight, 0)
	m.habitList.SetSize(bodyW, bodyH)
	m.heatmapPane.SetSize(bodyW, bodyH)
	m.statsPane.SetSize(bodyW, bodyH)
	m.goalsPane.SetSize(bodyW, bodyH)
}

func nextWindow(w heatmap.Window) heatmap.Window {
	windows := heatmap.Windows()
	for i, candidate := range windows {
		if candidate == w {
			return windows[(i+1)%len(windows)]
		}
	}
	return windows[0]
}
