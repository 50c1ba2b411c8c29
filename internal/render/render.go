// Package render formats heatmaps and statistics as terminal text. The CLI
// prints these strings and the TUI shows them in its panes.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	DoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	MissedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	TodayStyle = lipgloss.NewStyle().
			Underline(true).
			Bold(true)

	BarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(14)
)

const barWidth = 30

// Bar renders "label ███████ value" scaled against max.
func Bar(label string, value, max int, suffix string) string {
	filled := 0
	if max > 0 {
		filled = value * barWidth / max
	}
	if value > 0 && filled == 0 {
		filled = 1
	}
	return fmt.Sprintf("%s %s%s %d%s",
		labelStyle.Render(Truncate(label, 14)),
		BarStyle.Render(strings.Repeat("█", filled)),
		strings.Repeat(" ", barWidth-filled),
		value,
		suffix,
	)
}

// Truncate shortens s to width runes, ending with "..." when cut.
func Truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width < 5 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// Check renders a completion checkbox.
func Check(done bool) string {
	if done {
		return DoneStyle.Render("[x]")
	}
	return "[ ]"
}
