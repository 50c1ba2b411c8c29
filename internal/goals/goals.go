// Package goals computes goal progress, either from manual input or from a
// linked habit's ledger over a sliding period.
package goals

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/ledger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

var (
	ErrLinkedGoal    = errors.New("goal progress is derived from its linked habit")
	ErrNegativeValue = errors.New("goal value cannot be negative")
)

// Progress is the evaluated state of a goal at a point in time.
type Progress struct {
	Value     int
	Target    int
	Percent   int // capped at 100
	Completed bool
	Linked    bool
	Orphaned  bool // linked habit no longer exists
	From      time.Time
	To        time.Time
}

// Refresh evaluates goal against the current habits and returns the goal with
// Completed updated. A goal whose linked habit has been deleted is reported as
// orphaned with zero progress.
func Refresh(goal models.Goal, habits []models.Habit, now time.Time) (models.Goal, Progress) {
	p := Progress{Target: goal.TargetDays}

	switch {
	case !goal.IsLinked():
		p.Value = goal.CurrentValue
	default:
		p.Linked = true
		habit, ok := findHabit(habits, goal.HabitID)
		if !ok {
			p.Orphaned = true
			break
		}
		p.From, p.To = Period(goal.EffectivePeriod(), now)
		p.Value = ledger.CountCompletedBetween(habit.Completions, p.From, p.To)
		goal.HabitName = habit.Name
	}

	p.Completed = p.Value >= goal.TargetDays && !p.Orphaned
	if goal.TargetDays > 0 {
		p.Percent = min(models.Percent(p.Value, goal.TargetDays), 100)
	}
	goal.Completed = p.Completed
	return goal, p
}

// RefreshAll refreshes every goal in place and returns the progress of each,
// index-aligned with goals.
func RefreshAll(goals []models.Goal, habits []models.Habit, now time.Time) []Progress {
	out := make([]Progress, len(goals))
	for i := range goals {
		goals[i], out[i] = Refresh(goals[i], habits, now)
	}
	return out
}

// Period returns the inclusive date range a linked goal counts over, ending on
// the calendar date of now.
func Period(period models.GoalPeriod, now time.Time) (time.Time, time.Time) {
	to := utils.DateOf(now)
	switch period {
	case models.PeriodMonth:
		return to.AddDate(0, -1, 1), to
	case models.PeriodYear:
		return to.AddDate(-1, 0, 1), to
	default:
		return to.AddDate(0, 0, -6), to
	}
}

// SetValue records manual progress on an unlinked goal.
func SetValue(goal *models.Goal, value int) error {
	if goal.IsLinked() {
		return fmt.Errorf("%w: %s", ErrLinkedGoal, goal.Title)
	}
	if value < 0 {
		return ErrNegativeValue
	}
	goal.CurrentValue = value
	return nil
}

// Increment adds delta to an unlinked goal's manual progress, never going
// below zero.
func Increment(goal *models.Goal, delta int) error {
	return SetValue(goal, max(goal.CurrentValue+delta, 0))
}

func findHabit(habits []models.Habit, id string) (models.Habit, bool) {
	for _, h := range habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}
