package reports

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/heatmap"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/render"
)

// Sections lists the stats sections in display order.
var Sections = []string{
	"weekly", "trend", "time", "categories", "performance",
	"records", "achievements", "weeks", "months",
}

type StatsCmd struct {
	Section string `arg:"" optional:"" help:"Section to show (weekly, trend, time, categories, performance, records, achievements, weeks, months). Default: overview."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Tracker.Habits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.Println("No habits yet. Add one with 'habitual habit add'.")
		return nil
	}

	section := strings.ToLower(strings.TrimSpace(c.Section))
	if section == "" {
		ctx.Printf("%s\n", Overview(ctx, habits))
		return nil
	}
	out, err := Section(ctx, habits, section)
	if err != nil {
		return err
	}
	ctx.Printf("%s", out)
	return nil
}

// Overview is the default stats page.
func Overview(ctx *cli.Context, habits []models.Habit) string {
	parts := []string{
		render.TodaySummary(analytics.Today(habits), ctx.Tracker.Today()),
		render.Records(analytics.Records(habits)),
		render.WeeklyPattern(analytics.WeeklyPattern(habits)),
		render.Trend(analytics.CompletionTrend(habits, ctx.Tracker.TodayDate(), ctx.Settings.TrendWeeks)),
	}
	return strings.Join(parts, "\n")
}

// Section renders one named stats section.
func Section(ctx *cli.Context, habits []models.Habit, name string) (string, error) {
	today := ctx.Tracker.TodayDate()
	switch name {
	case "weekly":
		return render.WeeklyPattern(analytics.WeeklyPattern(habits)), nil
	case "trend":
		return render.Trend(analytics.CompletionTrend(habits, today, ctx.Settings.TrendWeeks)), nil
	case "time":
		return render.TimeOfDay(analytics.TimeOfDay(habits)), nil
	case "categories":
		return render.Categories(analytics.Categories(habits)), nil
	case "performance":
		return render.Performance(analytics.Performance(habits)), nil
	case "records":
		return render.Records(analytics.Records(habits)), nil
	case "achievements":
		return render.Achievements(analytics.Achievements(habits)), nil
	case "weeks":
		weeks := ctx.Settings.TrendWeeks
		return render.Periods(fmt.Sprintf("Completions, last %d weeks", weeks),
			analytics.WeeklyCompletions(habits, today, weeks)), nil
	case "months":
		return render.Periods(fmt.Sprintf("Completions, last %d months", constants.DefaultTrendMonths),
			analytics.MonthlyCompletions(habits, today, constants.DefaultTrendMonths)), nil
	}
	return "", fmt.Errorf("unknown stats section %q (expected one of: %s)", name, strings.Join(Sections, ", "))
}

type HeatmapCmd struct {
	Habit  string `arg:"" optional:"" help:"Habit name or ID. Default: every habit."`
	Window string `help:"Window to show (month, 6months, year). Default: the heatmap_window setting."`
}

func (c *HeatmapCmd) Run(ctx *cli.Context) error {
	name := c.Window
	if name == "" {
		name = ctx.Settings.HeatmapWindow
	}
	window, err := heatmap.ParseWindow(name)
	if err != nil {
		return err
	}

	var habits []models.Habit
	if c.Habit != "" {
		h, ok, err := ctx.ResolveHabit(c.Habit)
		if err != nil || !ok {
			return err
		}
		habits = []models.Habit{h}
	} else {
		if habits, err = ctx.Tracker.Habits(); err != nil {
			return err
		}
		if len(habits) == 0 {
			ctx.Println("No habits found.")
			return nil
		}
	}

	today := ctx.Tracker.TodayDate()
	for i, h := range habits {
		if i > 0 {
			ctx.Println()
		}
		ctx.Printf("%s", render.Heatmap(h, heatmap.Generate(h, window, today)))
	}
	return nil
}
