package analytics

import (
	"strconv"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// TrendPoint is the completion rate over one seven-day window.
type TrendPoint struct {
	Start     time.Time
	End       time.Time
	Completed int
	Total     int
	Rate      int
}

// PeriodCount is the number of completions in one calendar period.
type PeriodCount struct {
	Label       string
	Start       time.Time
	End         time.Time
	Completions int
}

// CompletionTrend returns weeks consecutive seven-day windows, oldest first,
// with the last one ending on today. Rate is completed/total entries in the
// window, 0 when the window holds no entries. weeks other than 6 or 12 falls
// back to 12.
func CompletionTrend(habits []models.Habit, today time.Time, weeks int) []TrendPoint {
	if weeks != constants.ShortTrendWeeks && weeks != constants.DefaultTrendWeeks {
		weeks = constants.DefaultTrendWeeks
	}
	today = utils.DateOf(today)

	points := make([]TrendPoint, weeks)
	for i := range points {
		end := today.AddDate(0, 0, -7*(weeks-1-i))
		points[i].Start = end.AddDate(0, 0, -6)
		points[i].End = end
	}

	for _, h := range habits {
		for _, c := range h.Completions {
			date, err := utils.ParseDate(c.Date)
			if err != nil {
				continue
			}
			for i := range points {
				if date.Before(points[i].Start) || date.After(points[i].End) {
					continue
				}
				points[i].Total++
				if c.Completed {
					points[i].Completed++
				}
				break
			}
		}
	}

	for i := range points {
		points[i].Rate = models.Percent(points[i].Completed, points[i].Total)
	}
	return points
}

// WeeklyCompletions counts completions per Sunday-aligned calendar week for
// the last weeks weeks, oldest first. The final week contains today.
func WeeklyCompletions(habits []models.Habit, today time.Time, weeks int) []PeriodCount {
	if weeks <= 0 {
		weeks = constants.DefaultTrendWeeks
	}
	current := utils.StartOfWeek(today)

	out := make([]PeriodCount, weeks)
	for i := range out {
		start := current.AddDate(0, 0, -7*(weeks-1-i))
		out[i] = PeriodCount{
			Label: "Week " + strconv.Itoa(i+1),
			Start: start,
			End:   start.AddDate(0, 0, 6),
		}
	}
	countInto(out, habits)
	return out
}

// MonthlyCompletions counts completions per calendar month for the last
// months months, oldest first. The final month contains today.
func MonthlyCompletions(habits []models.Habit, today time.Time, months int) []PeriodCount {
	if months <= 0 {
		months = constants.DefaultTrendMonths
	}
	current := utils.StartOfMonth(today)

	out := make([]PeriodCount, months)
	for i := range out {
		start := current.AddDate(0, -(months - 1 - i), 0)
		out[i] = PeriodCount{
			Label: start.Format("Jan 2006"),
			Start: start,
			End:   utils.EndOfMonth(start),
		}
	}
	countInto(out, habits)
	return out
}

func countInto(periods []PeriodCount, habits []models.Habit) {
	for _, h := range habits {
		for _, c := range h.Completions {
			if !c.Completed {
				continue
			}
			date, err := utils.ParseDate(c.Date)
			if err != nil {
				continue
			}
			for i := range periods {
				if !date.Before(periods[i].Start) && !date.After(periods[i].End) {
					periods[i].Completions++
					break
				}
			}
		}
	}
}
