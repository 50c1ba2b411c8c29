package models

import (
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Habit represents a recurring practice to track. The Streak, CompletedToday,
// TotalDays and CompletedDays fields are caches derived from Completions and
// are rewritten by the ledger after every mutation.
type Habit struct {
	ID          string       `json:"id" yaml:"id" validate:"required"`
	Name        string       `json:"name" yaml:"name" validate:"required,max=100"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty" validate:"max=500"`
	Category    string       `json:"category,omitempty" yaml:"category,omitempty" validate:"max=50"`
	Icon        string       `json:"icon,omitempty" yaml:"icon,omitempty"`
	Difficulty  Difficulty   `json:"difficulty,omitempty" yaml:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	Frequency   Frequency    `json:"frequency" yaml:"frequency"`
	CreatedAt   time.Time    `json:"createdAt" yaml:"createdAt"`
	Completions []Completion `json:"completions" yaml:"completions"`

	Streak         int  `json:"streak" yaml:"streak"`
	CompletedToday bool `json:"completedToday" yaml:"completedToday"`
	TotalDays      int  `json:"totalDays" yaml:"totalDays"`
	CompletedDays  int  `json:"completedDays" yaml:"completedDays"`
}

// Completion is a single day's record of a habit.
type Completion struct {
	Date           string `json:"date" yaml:"date"` // YYYY-MM-DD format
	Completed      bool   `json:"completed" yaml:"completed"`
	CompletionTime string `json:"completionTime,omitempty" yaml:"completionTime,omitempty"` // HH:MM format
	Note           string `json:"note,omitempty" yaml:"note,omitempty"`
}

// CompletionRate returns completedDays/totalDays as a rounded percentage.
func (h Habit) CompletionRate() int {
	return Percent(h.CompletedDays, h.TotalDays)
}

// CategoryLabel returns the habit's category or the default bucket name.
func (h Habit) CategoryLabel() string {
	if h.Category == "" {
		return constants.UncategorizedLabel
	}
	return h.Category
}

// Percent returns part/whole*100 rounded to the nearest integer, or 0 when
// whole is zero.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(float64(part)/float64(whole)*100 + 0.5)
}
