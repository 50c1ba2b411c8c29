package render

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/goals"
	"github.com/julianstephens/habitual/internal/models"
)

func section(title string, lines []string) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(title) + "\n")
	if len(lines) == 0 {
		b.WriteString(MutedStyle.Render("  No data yet.") + "\n")
	}
	for _, l := range lines {
		b.WriteString("  " + l + "\n")
	}
	return b.String()
}

func WeeklyPattern(days []analytics.DayCount) string {
	top := 0
	for _, d := range days {
		top = max(top, d.Count)
	}
	lines := make([]string, len(days))
	for i, d := range days {
		lines[i] = Bar(d.Day.String()[:3], d.Count, top, "")
	}
	return section("Weekly pattern", lines)
}

func Trend(points []analytics.TrendPoint) string {
	lines := make([]string, len(points))
	for i, p := range points {
		label := p.End.Format("Jan 02")
		lines[i] = Bar(label, p.Rate, 100, fmt.Sprintf("%%  (%d/%d)", p.Completed, p.Total))
	}
	return section(fmt.Sprintf("Completion rate, last %d weeks", len(points)), lines)
}

func TimeOfDay(slots []analytics.SlotCount) string {
	top, total := 0, 0
	for _, s := range slots {
		top = max(top, s.Count)
		total += s.Count
	}
	if total == 0 {
		return section("Time of day", nil)
	}
	lines := make([]string, len(slots))
	for i, s := range slots {
		lines[i] = Bar(s.Label(), s.Count, top, "")
	}
	return section("Time of day", lines)
}

func Categories(cats []analytics.CategoryCount) string {
	top := 0
	for _, c := range cats {
		top = max(top, c.Habits)
	}
	lines := make([]string, len(cats))
	for i, c := range cats {
		lines[i] = Bar(c.Category, c.Habits, top, " habit(s)")
	}
	return section("Categories", lines)
}

func Performance(rows []analytics.HabitPerformance) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%2d. %-24s %4d/%-4d %3d%%", i+1, Truncate(r.Name, 24), r.CompletedDays, r.TotalDays, r.Rate)
	}
	return section("Performance", lines)
}

func Periods(title string, periods []analytics.PeriodCount) string {
	top := 0
	for _, p := range periods {
		top = max(top, p.Completions)
	}
	lines := make([]string, len(periods))
	for i, p := range periods {
		lines[i] = Bar(p.Label, p.Completions, top, "")
	}
	return section(title, lines)
}

func Records(r analytics.PersonalRecords) string {
	return section("Personal records", []string{
		fmt.Sprintf("Longest streak        %d days (%s)", r.LongestStreak.Value, r.LongestStreak.HabitName),
		fmt.Sprintf("Most completed        %d days (%s)", r.MostCompleted.Value, r.MostCompleted.HabitName),
		fmt.Sprintf("Best completion rate  %d%% (%s)", r.BestCompletionRate.Value, r.BestCompletionRate.HabitName),
		fmt.Sprintf("Total days tracked    %d", r.TotalDaysTracked),
	})
}

func Achievements(list []analytics.Achievement) string {
	lines := make([]string, len(list))
	for i, a := range list {
		mark := MutedStyle.Render("○")
		if a.Unlocked {
			mark = DoneStyle.Render("●")
		}
		lines[i] = fmt.Sprintf("%s %-18s %3d/%-3d %s", mark, a.Title, a.Progress, a.Target, MutedStyle.Render(a.Description))
	}
	return section("Achievements", lines)
}

func TodaySummary(s analytics.TodaySummary, date string) string {
	return section("Today "+date, []string{
		fmt.Sprintf("%d/%d habits done (%d%%)  best streak %d", s.Completed, s.Total, s.Percent, s.BestStreak),
	})
}

// HabitLine is the one-line listing used by `habit list` and `habit today`.
func HabitLine(h models.Habit) string {
	line := fmt.Sprintf("%s %-24s %-16s streak %-3d %d/%d days (%d%%)",
		Check(h.CompletedToday), Truncate(h.Name, 24), h.Frequency.String(), h.Streak, h.CompletedDays, h.TotalDays, h.CompletionRate())
	if h.Icon != "" {
		line = h.Icon + " " + line
	}
	return line
}

// GoalLine renders a goal with its progress bar.
func GoalLine(g models.Goal, p goals.Progress) string {
	source := "manual"
	switch {
	case p.Orphaned:
		source = WarnStyle.Render("habit deleted")
	case p.Linked:
		source = fmt.Sprintf("%s, %s", g.HabitName, g.EffectivePeriod())
	}
	status := ""
	if p.Completed {
		status = " " + DoneStyle.Render("done")
	}
	return fmt.Sprintf("%s %s%s\n    %s  %s",
		MutedStyle.Render(shortID(g.ID)), g.Title, status,
		Bar(source, p.Value, p.Target, fmt.Sprintf("/%d %s (%d%%)", p.Target, g.Unit, p.Percent)),
		MutedStyle.Render(deadline(g)))
}

func deadline(g models.Goal) string {
	if g.Deadline == "" {
		return ""
	}
	return "due " + g.Deadline
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ShortID is the abbreviated identifier shown in listings.
func ShortID(id string) string {
	return shortID(id)
}
