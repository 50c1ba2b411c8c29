package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/render"
)

var (
	activeTabStyle = render.HeaderStyle.
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	inactiveTabStyle = render.MutedStyle.Padding(0, 1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	// Destructive prompts and errors share one red.
	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorStyle  = dangerStyle.UnsetBold().Padding(0, 1)

	statusStyle = render.DoneStyle.Padding(0, 1)
)
