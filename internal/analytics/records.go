package analytics

import (
	"github.com/julianstephens/habitual/internal/ledger"
	"github.com/julianstephens/habitual/internal/models"
)

const noRecordHolder = "None"

// Record is a personal best and the habit holding it.
type Record struct {
	Value     int
	HabitName string
}

// PersonalRecords summarises the best numbers across all habits.
type PersonalRecords struct {
	LongestStreak      Record
	MostCompleted      Record
	BestCompletionRate Record
	TotalDaysTracked   int
}

// Records computes personal records. The first habit reaching a value holds
// the record; later habits must beat it strictly.
func Records(habits []models.Habit) PersonalRecords {
	if len(habits) == 0 {
		none := Record{HabitName: noRecordHolder}
		return PersonalRecords{LongestStreak: none, MostCompleted: none, BestCompletionRate: none}
	}

	var r PersonalRecords
	for _, h := range habits {
		longest := max(h.Streak, ledger.LongestStreak(h.Completions))
		if longest > r.LongestStreak.Value {
			r.LongestStreak = Record{Value: longest, HabitName: h.Name}
		}
		if h.CompletedDays > r.MostCompleted.Value {
			r.MostCompleted = Record{Value: h.CompletedDays, HabitName: h.Name}
		}
		if rate := h.CompletionRate(); rate > r.BestCompletionRate.Value {
			r.BestCompletionRate = Record{Value: rate, HabitName: h.Name}
		}
		r.TotalDaysTracked += h.TotalDays
	}
	return r
}

// Achievement is a milestone badge with its progress toward the target.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Progress    int
	Target      int
	Unlocked    bool
}

// Achievements evaluates the built-in badges against the current habits.
func Achievements(habits []models.Habit) []Achievement {
	totalCompletions, maxStreak, perfect := 0, 0, 0
	for _, h := range habits {
		totalCompletions += h.CompletedDays
		maxStreak = max(maxStreak, h.Streak)
		if h.TotalDays > 0 && h.CompletedDays == h.TotalDays {
			perfect++
		}
	}

	badges := []Achievement{
		{ID: "first-habit", Title: "Getting Started", Description: "Create your first habit", Progress: len(habits), Target: 1},
		{ID: "habit-collector", Title: "Habit Collector", Description: "Create 5 habits", Progress: len(habits), Target: 5},
		{ID: "week-warrior", Title: "Week Warrior", Description: "Maintain a 7-day streak", Progress: maxStreak, Target: 7},
		{ID: "consistency-king", Title: "Consistency King", Description: "Maintain a 30-day streak", Progress: maxStreak, Target: 30},
		{ID: "century-club", Title: "Century Club", Description: "Complete 100 habits total", Progress: totalCompletions, Target: 100},
		{ID: "perfectionist", Title: "Perfectionist", Description: "Have 3 habits with 100% completion", Progress: perfect, Target: 3},
	}
	for i := range badges {
		badges[i].Unlocked = badges[i].Progress >= badges[i].Target
		badges[i].Progress = min(badges[i].Progress, badges[i].Target)
	}
	return badges
}

// TodaySummary is the dashboard headline for the current day.
type TodaySummary struct {
	Completed  int
	Total      int
	Percent    int
	BestStreak int
}

// Today summarises the completed-today flags and current streaks.
func Today(habits []models.Habit) TodaySummary {
	var s TodaySummary
	s.Total = len(habits)
	for _, h := range habits {
		if h.CompletedToday {
			s.Completed++
		}
		s.BestStreak = max(s.BestStreak, h.Streak)
	}
	s.Percent = models.Percent(s.Completed, s.Total)
	return s
}
