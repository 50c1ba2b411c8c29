// Package scheduler lays today's enabled reminders out on a timeline against
// the habits they point at.
package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/ledger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

type SlotStatus string

const (
	SlotStatusUpcoming SlotStatus = "upcoming"
	SlotStatusOverdue  SlotStatus = "overdue"
	SlotStatusDone     SlotStatus = "done"
)

// Slot is one reminder placed on today's timeline.
type Slot struct {
	Start    string // HH:MM
	Reminder models.Reminder
	Habit    models.Habit
	Status   SlotStatus
}

type Agenda struct {
	Date  string
	Slots []Slot
}

// Next returns the earliest slot that has not started yet.
func (a Agenda) Next() (Slot, bool) {
	for _, s := range a.Slots {
		if s.Status == SlotStatusUpcoming {
			return s, true
		}
	}
	return Slot{}, false
}

// Pending counts the slots whose habit is still open.
func (a Agenda) Pending() int {
	n := 0
	for _, s := range a.Slots {
		if s.Status != SlotStatusDone {
			n++
		}
	}
	return n
}

// Build places every enabled reminder whose habit exists and is due on now's
// date. Reminders with an unparseable time are skipped. Slots are ordered by
// time, then habit name.
func Build(reminders []models.Reminder, habits []models.Habit, now time.Time) Agenda {
	date := utils.DateOf(now)
	today := utils.FormatDate(date)
	current := now.Hour()*60 + now.Minute()

	byID := make(map[string]models.Habit, len(habits))
	for _, h := range habits {
		byID[h.ID] = h
	}

	agenda := Agenda{Date: today, Slots: []Slot{}}
	for _, r := range reminders {
		if !r.Enabled {
			continue
		}
		h, ok := byID[r.HabitID]
		if !ok || !utils.IsDueOn(h.Frequency, date) {
			continue
		}
		start, err := parseTime(r.Time)
		if err != nil {
			continue
		}

		status := SlotStatusUpcoming
		switch {
		case ledger.IsCompletedOn(h.Completions, today):
			status = SlotStatusDone
		case start <= current:
			status = SlotStatusOverdue
		}
		agenda.Slots = append(agenda.Slots, Slot{
			Start:    formatTime(start),
			Reminder: r,
			Habit:    h,
			Status:   status,
		})
	}

	sort.SliceStable(agenda.Slots, func(i, j int) bool {
		if agenda.Slots[i].Start != agenda.Slots[j].Start {
			return agenda.Slots[i].Start < agenda.Slots[j].Start
		}
		return agenda.Slots[i].Habit.Name < agenda.Slots[j].Habit.Name
	})
	return agenda
}

func parseTime(timeStr string) (int, error) {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatTime(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	return fmt.Sprintf("%02d:%02d", hours, mins)
}
