// Package ledger maintains a habit's date-indexed completion records and the
// cached counters derived from them.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// ErrInvalidDate is returned when a completion date is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date (expected YYYY-MM-DD)")

// Mark describes one completion update. At is only recorded when Completed
// is true. A nil Note leaves an existing note untouched.
type Mark struct {
	Date      string
	Completed bool
	At        *time.Time
	Note      *string
}

// SetCompletion records the state of habit h on m.Date. An existing record for
// that date is updated in place, otherwise a new one is appended; records are
// never removed. All cached fields are then rederived relative to today.
func SetCompletion(h *models.Habit, m Mark, today string) error {
	if !utils.ValidateDateFormat(m.Date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, m.Date)
	}

	idx := indexOf(h.Completions, m.Date)
	if idx < 0 {
		h.Completions = append(h.Completions, models.Completion{Date: m.Date})
		idx = len(h.Completions) - 1
	}

	c := &h.Completions[idx]
	c.Completed = m.Completed
	switch {
	case !m.Completed:
		c.CompletionTime = ""
	case m.At != nil:
		c.CompletionTime = utils.ClockOf(*m.At)
	}
	if m.Note != nil {
		c.Note = *m.Note
	}

	Recompute(h, today)
	return nil
}

// Recompute rederives Streak, CompletedToday, CompletedDays and TotalDays from
// the completion records. TotalDays never decreases.
func Recompute(h *models.Habit, today string) {
	distinct := make(map[string]struct{}, len(h.Completions))
	completed := 0
	for _, c := range h.Completions {
		distinct[c.Date] = struct{}{}
		if c.Completed {
			completed++
		}
	}

	h.CompletedDays = completed
	if len(distinct) > h.TotalDays {
		h.TotalDays = len(distinct)
	}
	if h.TotalDays < h.CompletedDays {
		h.TotalDays = h.CompletedDays
	}
	h.Streak = ComputeStreak(h.Completions, today)
	h.CompletedToday = IsCompletedOn(h.Completions, today)
}

// Find returns the completion recorded for date, if any.
func Find(completions []models.Completion, date string) (models.Completion, bool) {
	if idx := indexOf(completions, date); idx >= 0 {
		return completions[idx], true
	}
	return models.Completion{}, false
}

// IsCompletedOn reports whether date has a completed record.
func IsCompletedOn(completions []models.Completion, date string) bool {
	c, ok := Find(completions, date)
	return ok && c.Completed
}

// CompletedDates returns the set of dates with a completed record.
func CompletedDates(completions []models.Completion) map[string]bool {
	set := make(map[string]bool, len(completions))
	for _, c := range completions {
		if c.Completed {
			set[c.Date] = true
		}
	}
	return set
}

// CountCompletedBetween counts completed records dated within [from, to].
func CountCompletedBetween(completions []models.Completion, from, to time.Time) int {
	from, to = utils.DateOf(from), utils.DateOf(to)
	n := 0
	for _, c := range completions {
		if !c.Completed {
			continue
		}
		d, err := utils.ParseDate(c.Date)
		if err != nil {
			continue
		}
		if !d.Before(from) && !d.After(to) {
			n++
		}
	}
	return n
}

func indexOf(completions []models.Completion, date string) int {
	for i := range completions {
		if completions[i].Date == date {
			return i
		}
	}
	return -1
}
