package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/heatmap"
	"github.com/julianstephens/habitual/internal/models"
)

const (
	doneMark   = "■"
	missedMark = "□"
	futureMark = "·"
)

// Heatmap draws the grid with weekdays as rows and weeks as columns, so a
// year fits in seven lines.
func Heatmap(h models.Habit, g heatmap.Grid) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", HeaderStyle.Render(h.Name), MutedStyle.Render(fmt.Sprintf("%s  %s to %s",
		g.Window, g.Start.Format("Jan 2 2006"), g.End.Format("Jan 2 2006"))))
	b.WriteString("    " + monthRow(g) + "\n")

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		b.WriteString(MutedStyle.Render(wd.String()[:3]) + " ")
		for _, week := range g.Weeks {
			b.WriteString(cell(week[wd]))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%d/%d days completed  %s done  %s missed  %s upcoming\n",
		g.Completed, g.Elapsed,
		DoneStyle.Render(doneMark), MissedStyle.Render(missedMark), MutedStyle.Render(futureMark))
	return b.String()
}

func cell(c heatmap.Cell) string {
	var mark string
	switch {
	case c.Future:
		mark = MutedStyle.Render(futureMark)
	case c.Completed:
		mark = DoneStyle.Render(doneMark)
	default:
		mark = MissedStyle.Render(missedMark)
	}
	if c.IsToday {
		mark = TodayStyle.Render(mark)
	}
	return mark + " "
}

// monthRow labels the first column holding each month's first Saturday.
func monthRow(g heatmap.Grid) string {
	row := make([]rune, len(g.Weeks)*2+3)
	for i := range row {
		row[i] = ' '
	}
	last, free := time.Month(0), 0
	for i, week := range g.Weeks {
		m := week[6].Date.Month()
		if m == last || i*2 < free {
			continue
		}
		last = m
		label := []rune(m.String()[:3])
		copy(row[i*2:], label)
		free = i*2 + len(label) + 1
	}
	return MutedStyle.Render(strings.TrimRight(string(row), " "))
}
