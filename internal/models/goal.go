package models

import "time"

type GoalPeriod string

const (
	PeriodWeek  GoalPeriod = "week"
	PeriodMonth GoalPeriod = "month"
	PeriodYear  GoalPeriod = "year"
)

// Goal is a target either tracked manually through CurrentValue or derived
// from a linked habit's ledger. HabitID is a non-owning reference.
type Goal struct {
	ID           string     `json:"id" validate:"required"`
	Title        string     `json:"title" validate:"required,max=100"`
	Description  string     `json:"description,omitempty" validate:"max=500"`
	HabitID      string     `json:"habitId,omitempty"`
	HabitName    string     `json:"habitName,omitempty"`
	TargetDays   int        `json:"targetDays" validate:"gte=1"`
	Unit         string     `json:"unit,omitempty"`
	Period       GoalPeriod `json:"period,omitempty" validate:"omitempty,oneof=week month year"`
	CurrentValue int        `json:"currentValue" validate:"gte=0"`
	Deadline     string     `json:"deadline,omitempty" validate:"omitempty,date"`
	Completed    bool       `json:"completed"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// IsLinked reports whether the goal draws its progress from a habit.
func (g Goal) IsLinked() bool {
	return g.HabitID != ""
}

// EffectivePeriod returns the goal's period, defaulting to a week.
func (g Goal) EffectivePeriod() GoalPeriod {
	if g.Period == "" {
		return PeriodWeek
	}
	return g.Period
}
