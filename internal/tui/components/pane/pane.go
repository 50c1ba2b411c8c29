// Package pane is a scrollable read-only view for rendered reports.
package pane

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var emptyStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")).
	Italic(true)

type Model struct {
	viewport viewport.Model
	content  string
	empty    string
}

// New returns a pane that shows empty until content is set.
func New(width, height int, empty string) Model {
	return Model{viewport: viewport.New(width, height), empty: empty}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.content == "" {
		return emptyStyle.Render(m.empty)
	}
	return m.viewport.View()
}

func (m Model) Content() string {
	return m.content
}

// SetContent replaces the text and scrolls back to the top.
func (m *Model) SetContent(s string) {
	m.content = s
	m.viewport.SetContent(s)
	m.viewport.GotoTop()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
}
