// Package analytics folds habit completion histories into read-only summary
// views. Nothing here mutates its inputs; every view is recomputed on demand.
package analytics

import (
	"sort"
	"strconv"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// DayCount is the number of completed entries on one weekday.
type DayCount struct {
	Day   time.Weekday
	Count int
}

// SlotCount is the number of completions whose time fell in [StartHour, EndHour).
type SlotCount struct {
	StartHour int
	EndHour   int
	Count     int
}

// Label renders the slot as "06-08".
func (s SlotCount) Label() string {
	return pad(s.StartHour) + "-" + pad(s.EndHour)
}

// CategoryCount is the number of habits carrying a category label.
type CategoryCount struct {
	Category string
	Habits   int
}

// HabitPerformance is one row of the performance ranking.
type HabitPerformance struct {
	HabitID       string
	Name          string
	CompletedDays int
	TotalDays     int
	Rate          int
}

const (
	firstSlotHour = 6
	slotHours     = 2
	slotCount     = 9
)

// WeeklyPattern counts completed entries by the weekday of their date across
// all habits' lifetime histories, Sunday first.
func WeeklyPattern(habits []models.Habit) []DayCount {
	pattern := make([]DayCount, 7)
	for d := range pattern {
		pattern[d].Day = time.Weekday(d)
	}

	for _, h := range habits {
		for _, c := range h.Completions {
			if !c.Completed {
				continue
			}
			date, err := utils.ParseDate(c.Date)
			if err != nil {
				continue
			}
			pattern[date.Weekday()].Count++
		}
	}
	return pattern
}

// TimeOfDay buckets completed entries by completion hour into nine two-hour
// slots from 06:00 to 24:00. Entries without a usable time, or recorded before
// 06:00, are left out.
func TimeOfDay(habits []models.Habit) []SlotCount {
	slots := make([]SlotCount, slotCount)
	for i := range slots {
		slots[i].StartHour = firstSlotHour + i*slotHours
		slots[i].EndHour = slots[i].StartHour + slotHours
	}

	for _, h := range habits {
		for _, c := range h.Completions {
			if !c.Completed || c.CompletionTime == "" {
				continue
			}
			t, err := utils.ParseTime(c.CompletionTime)
			if err != nil || t.Hour() < firstSlotHour {
				continue
			}
			slots[(t.Hour()-firstSlotHour)/slotHours].Count++
		}
	}
	return slots
}

// Categories counts habits per category label in order of first appearance.
func Categories(habits []models.Habit) []CategoryCount {
	index := make(map[string]int)
	var out []CategoryCount
	for _, h := range habits {
		label := h.CategoryLabel()
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, CategoryCount{Category: label})
		}
		out[i].Habits++
	}
	return out
}

// Performance ranks habits by completed days, descending. Ties keep their
// original order.
func Performance(habits []models.Habit) []HabitPerformance {
	out := make([]HabitPerformance, 0, len(habits))
	for _, h := range habits {
		out = append(out, HabitPerformance{
			HabitID:       h.ID,
			Name:          h.Name,
			CompletedDays: h.CompletedDays,
			TotalDays:     h.TotalDays,
			Rate:          h.CompletionRate(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedDays > out[j].CompletedDays
	})
	return out
}

// TotalCompleted counts completed entries across all histories.
func TotalCompleted(habits []models.Habit) int {
	n := 0
	for _, h := range habits {
		for _, c := range h.Completions {
			if c.Completed {
				n++
			}
		}
	}
	return n
}

func pad(hour int) string {
	if hour < 10 {
		return "0" + strconv.Itoa(hour)
	}
	return strconv.Itoa(hour)
}
