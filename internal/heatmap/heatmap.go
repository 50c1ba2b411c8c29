// Package heatmap lays one habit's completion history out as a calendar grid
// of week rows.
package heatmap

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/ledger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

type Window string

const (
	WindowMonth     Window = "month"
	WindowSixMonths Window = "6months"
	WindowYear      Window = "year"
)

// Windows lists the supported windows in display order.
func Windows() []Window {
	return []Window{WindowMonth, WindowSixMonths, WindowYear}
}

// ParseWindow accepts a window name in any case. Empty input selects a month.
func ParseWindow(s string) (Window, error) {
	switch Window(strings.ToLower(strings.TrimSpace(s))) {
	case "", WindowMonth:
		return WindowMonth, nil
	case WindowSixMonths:
		return WindowSixMonths, nil
	case WindowYear:
		return WindowYear, nil
	}
	return "", fmt.Errorf("invalid heatmap window %q (expected month, 6months or year)", s)
}

// Cell is one day of the grid. Future cells are placeholders and carry no
// completion state.
type Cell struct {
	Date      time.Time
	Completed bool
	IsToday   bool
	Future    bool
	Intensity int // 1 when completed, 0 otherwise
}

// Grid is a weeks x 7 calendar, Sunday first.
type Grid struct {
	Window    Window
	Start     time.Time
	End       time.Time
	Weeks     [][7]Cell
	Completed int // completed cells up to today
	Elapsed   int // cells dated on or before today
}

// Cells returns the total number of cells in the grid.
func (g Grid) Cells() int {
	return len(g.Weeks) * 7
}

// Generate builds the grid for habit over window relative to today. The
// result depends only on the ledger and today.
func Generate(habit models.Habit, window Window, today time.Time) Grid {
	today = utils.DateOf(today)
	start, end := bounds(window, today)

	g := Grid{Window: window, Start: start, End: end}
	done := ledger.CompletedDates(habit.Completions)

	day := start
	for !day.After(end) {
		var week [7]Cell
		for i := range week {
			cell := Cell{Date: day}
			if day.After(today) {
				cell.Future = true
			} else {
				cell.Completed = done[utils.FormatDate(day)]
				cell.IsToday = day.Equal(today)
				if cell.Completed {
					cell.Intensity = 1
					g.Completed++
				}
				g.Elapsed++
			}
			week[i] = cell
			day = day.AddDate(0, 0, 1)
		}
		g.Weeks = append(g.Weeks, week)
	}
	return g
}

func bounds(window Window, today time.Time) (time.Time, time.Time) {
	var start, end time.Time
	switch window {
	case WindowSixMonths:
		start, end = today.AddDate(0, -6, 0), today
	case WindowYear:
		start, end = today.AddDate(-1, 0, 0), today
	default:
		start, end = utils.StartOfMonth(today), utils.EndOfMonth(today)
	}
	return utils.StartOfWeek(start), utils.EndOfWeek(end)
}
