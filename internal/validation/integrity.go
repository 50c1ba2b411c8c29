package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/ledger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

type ConflictType string

const (
	ConflictDuplicateHabitName  ConflictType = "duplicate_habit_name"
	ConflictDuplicateCompletion ConflictType = "duplicate_completion"
	ConflictInvalidDate         ConflictType = "invalid_date"
	ConflictInvalidTime         ConflictType = "invalid_time"
	ConflictStaleCache          ConflictType = "stale_cache"
	ConflictOrphanedGoal        ConflictType = "orphaned_goal"
	ConflictOrphanedReminder    ConflictType = "orphaned_reminder"
)

// Conflict is one integrity problem found in stored data.
type Conflict struct {
	Type        ConflictType
	Description string
	HabitID     string
	Fixable     bool
}

type Result struct {
	Conflicts []Conflict
}

func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

func (r *Result) add(c Conflict) {
	r.Conflicts = append(r.Conflicts, c)
}

// FormatReport renders the conflicts as a bulleted list.
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No problems detected."
	}
	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Check audits habits, goals and reminders without modifying them.
func Check(habits []models.Habit, goals []models.Goal, reminders []models.Reminder, today string) Result {
	var result Result

	ids := make(map[string]bool, len(habits))
	names := make(map[string]int)
	for _, h := range habits {
		ids[h.ID] = true
		names[strings.ToLower(h.Name)]++
	}
	for name, n := range names {
		if n > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("%d habits share the name %q", n, name),
			})
		}
	}

	for _, h := range habits {
		checkLedger(&result, h, today)
	}

	for _, g := range goals {
		if g.IsLinked() && !ids[g.HabitID] {
			result.add(Conflict{
				Type:        ConflictOrphanedGoal,
				Description: fmt.Sprintf("goal %q is linked to a deleted habit", g.Title),
			})
		}
	}
	for _, r := range reminders {
		if !ids[r.HabitID] {
			result.add(Conflict{
				Type:        ConflictOrphanedReminder,
				Description: fmt.Sprintf("reminder at %s refers to a deleted habit (%s)", r.Time, r.HabitName),
			})
		}
	}
	return result
}

func checkLedger(result *Result, h models.Habit, today string) {
	seen := make(map[string]bool, len(h.Completions))
	for _, c := range h.Completions {
		if seen[c.Date] {
			result.add(Conflict{
				Type:        ConflictDuplicateCompletion,
				Description: fmt.Sprintf("habit %q has more than one record for %s", h.Name, c.Date),
				HabitID:     h.ID,
				Fixable:     true,
			})
		}
		seen[c.Date] = true

		if !utils.ValidateDateFormat(c.Date) {
			result.add(Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("habit %q has a record with invalid date %q", h.Name, c.Date),
				HabitID:     h.ID,
			})
		}
		if c.CompletionTime != "" && !utils.ValidateTimeFormat(c.CompletionTime) {
			result.add(Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("habit %q has invalid completion time %q on %s", h.Name, c.CompletionTime, c.Date),
				HabitID:     h.ID,
			})
		}
	}

	fresh := h
	fresh.Completions = dedupe(h.Completions)
	ledger.Recompute(&fresh, today)
	// Streak and CompletedToday may lag the ledger between a rollover and the
	// next mark.
	if fresh.CompletedDays != h.CompletedDays || fresh.TotalDays != h.TotalDays {
		result.add(Conflict{
			Type: ConflictStaleCache,
			Description: fmt.Sprintf("habit %q cached counters (%d/%d days) differ from its history (%d/%d days)",
				h.Name, h.CompletedDays, h.TotalDays, fresh.CompletedDays, fresh.TotalDays),
			HabitID: h.ID,
			Fixable: true,
		})
	}
}

// FixAction describes one repair applied by Fix.
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// Fix merges duplicate completion records, keeping the last one per date,
// and rederives the cached counters of every repaired habit. Other conflicts
// are left for the user.
func Fix(habits []models.Habit, result Result, today string) []FixAction {
	var actions []FixAction
	byID := make(map[string]int, len(habits))
	for i := range habits {
		byID[habits[i].ID] = i
	}
	touched := make(map[int]bool)

	for _, c := range result.Conflicts {
		if !c.Fixable {
			continue
		}
		i, ok := byID[c.HabitID]
		if !ok {
			continue
		}
		h := &habits[i]
		touched[i] = true
		switch c.Type {
		case ConflictDuplicateCompletion:
			before := len(h.Completions)
			h.Completions = dedupe(h.Completions)
			if removed := before - len(h.Completions); removed > 0 {
				actions = append(actions, FixAction{
					Action:         fmt.Sprintf("merged %d duplicate record(s) of %q", removed, h.Name),
					SourceConflict: c,
				})
			}
		case ConflictStaleCache:
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("recomputed cached counters of %q", h.Name),
				SourceConflict: c,
			})
		}
	}

	for i := range touched {
		ledger.Recompute(&habits[i], today)
	}
	return actions
}

func dedupe(completions []models.Completion) []models.Completion {
	index := make(map[string]int, len(completions))
	out := make([]models.Completion, 0, len(completions))
	for _, c := range completions {
		if i, ok := index[c.Date]; ok {
			out[i] = c
			continue
		}
		index[c.Date] = len(out)
		out = append(out, c)
	}
	return out
}
