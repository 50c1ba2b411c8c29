package ledger

import (
	"sort"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// ComputeStreak counts consecutive completed days walking backward from
// today. A day without a completed record, today included, ends the walk.
func ComputeStreak(completions []models.Completion, today string) int {
	start, err := utils.ParseDate(today)
	if err != nil {
		return 0
	}
	done := CompletedDates(completions)

	streak := 0
	for day := start; done[utils.FormatDate(day)]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completed days
// anywhere in the history.
func LongestStreak(completions []models.Completion) int {
	var days []string
	for date := range CompletedDates(completions) {
		if utils.ValidateDateFormat(date) {
			days = append(days, date)
		}
	}
	if len(days) == 0 {
		return 0
	}
	sort.Strings(days)

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		prev := utils.MustDate(days[i-1])
		cur := utils.MustDate(days[i])
		if utils.DaysBetween(prev, cur) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
