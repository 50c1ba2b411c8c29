package tracker

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/scheduler"
	"github.com/julianstephens/habitual/internal/validation"
)

// ReminderStatus is a reminder with its habit resolved. Orphaned is set when
// the habit has been deleted since.
type ReminderStatus struct {
	Reminder models.Reminder
	Orphaned bool
}

// Reminders lists reminders ordered as stored, with habit names refreshed.
func (s *Service) Reminders() ([]ReminderStatus, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return nil, err
	}
	reminders, err := s.repo.Reminders()
	if err != nil {
		return nil, err
	}

	out := make([]ReminderStatus, len(reminders))
	for i, r := range reminders {
		st := ReminderStatus{Reminder: r}
		if j := habitIndex(habits, r.HabitID); j >= 0 {
			st.Reminder.HabitName = habits[j].Name
		} else {
			st.Orphaned = true
		}
		out[i] = st
	}
	return out, nil
}

// Agenda lays today's enabled reminders out against the habits due today.
func (s *Service) Agenda() (scheduler.Agenda, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return scheduler.Agenda{}, err
	}
	reminders, err := s.repo.Reminders()
	if err != nil {
		return scheduler.Agenda{}, err
	}
	return scheduler.Build(reminders, habits, s.Now()), nil
}

// AddReminder stores an enabled reminder at clock (HH:MM) for a habit.
func (s *Service) AddReminder(habitID, clock string) (models.Reminder, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return models.Reminder{}, err
	}
	i := habitIndex(habits, habitID)
	if i < 0 {
		return models.Reminder{}, fmt.Errorf("%w: %s", ErrHabitNotFound, habitID)
	}
	reminders, err := s.repo.Reminders()
	if err != nil {
		return models.Reminder{}, err
	}

	r := models.Reminder{
		ID:        newID(),
		HabitID:   habitID,
		HabitName: habits[i].Name,
		Time:      strings.TrimSpace(clock),
		Enabled:   true,
	}
	if err := validation.Struct(r); err != nil {
		return models.Reminder{}, err
	}

	if err := s.repo.SaveReminders(append(reminders, r)); err != nil {
		return models.Reminder{}, err
	}
	logger.Info("reminder added", "id", r.ID, "habit", r.HabitName, "time", r.Time)
	return r, nil
}

// ToggleReminder flips a reminder's enabled flag.
func (s *Service) ToggleReminder(id string) (models.Reminder, bool, error) {
	reminders, err := s.repo.Reminders()
	if err != nil {
		return models.Reminder{}, false, err
	}
	i := reminderIndex(reminders, id)
	if i < 0 {
		notFound("reminder", id)
		return models.Reminder{}, false, nil
	}

	reminders[i].Enabled = !reminders[i].Enabled
	if err := s.repo.SaveReminders(reminders); err != nil {
		return models.Reminder{}, false, err
	}
	return reminders[i], true, nil
}

func (s *Service) DeleteReminder(id string) (bool, error) {
	reminders, err := s.repo.Reminders()
	if err != nil {
		return false, err
	}
	i := reminderIndex(reminders, id)
	if i < 0 {
		notFound("reminder", id)
		return false, nil
	}

	reminders = append(reminders[:i], reminders[i+1:]...)
	if err := s.repo.SaveReminders(reminders); err != nil {
		return false, err
	}
	logger.Info("reminder deleted", "id", id)
	return true, nil
}

func reminderIndex(reminders []models.Reminder, id string) int {
	for i := range reminders {
		if reminders[i].ID == id {
			return i
		}
	}
	return -1
}
