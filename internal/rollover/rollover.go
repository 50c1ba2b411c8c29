// Package rollover implements the once-per-day reset of the completed-today
// flag.
package rollover

import (
	"github.com/julianstephens/habitual/internal/ledger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Report describes the outcome of a rollover run.
type Report struct {
	Previous  string // last reset date as stored, possibly empty or malformed
	Today     string
	Performed bool
	Reset     int // number of daily habits whose flag was cleared
}

// Run compares the stored last reset date with today. When they differ it
// clears CompletedToday on every daily habit, rederives it from the ledger for
// weekly, monthly and custom habits, and reports that lastResetDate should be
// persisted as today. Completion history and streaks are never touched.
func Run(habits []models.Habit, lastReset, today string) Report {
	report := Report{Previous: lastReset, Today: today}
	if lastReset == today && utils.ValidateDateFormat(lastReset) {
		return report
	}

	report.Performed = true
	for i := range habits {
		if !habits[i].Frequency.IsDaily() {
			habits[i].CompletedToday = ledger.IsCompletedOn(habits[i].Completions, today)
			continue
		}
		if habits[i].CompletedToday {
			report.Reset++
		}
		habits[i].CompletedToday = false
	}
	return report
}
