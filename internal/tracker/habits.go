package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/ledger"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/validation"
)

// HabitInput holds the user-editable fields of a new habit.
type HabitInput struct {
	Name        string
	Description string
	Category    string
	Icon        string
	Difficulty  models.Difficulty
	Frequency   models.Frequency
}

// HabitPatch changes only the fields that are set.
type HabitPatch struct {
	Name        *string
	Description *string
	Category    *string
	Icon        *string
	Difficulty  *models.Difficulty
	Frequency   *models.Frequency
}

// FromTemplate converts a built-in template into habit input.
func FromTemplate(t models.HabitTemplate) HabitInput {
	return HabitInput{
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category,
		Icon:        t.Icon,
		Frequency:   t.Frequency,
	}
}

// Habits returns all stored habits.
func (s *Service) Habits() ([]models.Habit, error) {
	return s.repo.Habits()
}

// FindHabit resolves ref as a habit ID or, failing that, as a
// case-insensitive name.
func (s *Service) FindHabit(ref string) (models.Habit, bool, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return models.Habit{}, false, err
	}
	h, ok := findHabit(habits, ref)
	return h, ok, nil
}

func findHabit(habits []models.Habit, ref string) (models.Habit, bool) {
	ref = strings.TrimSpace(ref)
	if i := habitIndex(habits, ref); i >= 0 {
		return habits[i], true
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, ref) {
			return h, true
		}
	}
	return models.Habit{}, false
}

func nameTaken(habits []models.Habit, name, exceptID string) bool {
	for _, h := range habits {
		if h.ID != exceptID && strings.EqualFold(h.Name, name) {
			return true
		}
	}
	return false
}

// AddHabit creates a habit with an empty ledger.
func (s *Service) AddHabit(in HabitInput) (models.Habit, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return models.Habit{}, err
	}

	h := models.Habit{
		ID:          newID(),
		Name:        cleanText(in.Name),
		Description: cleanText(in.Description),
		Category:    cleanText(in.Category),
		Icon:        strings.TrimSpace(in.Icon),
		Difficulty:  in.Difficulty,
		Frequency:   in.Frequency,
		CreatedAt:   s.now().UTC(),
		Completions: []models.Completion{},
	}
	if h.Frequency.Kind == "" {
		h.Frequency = models.Daily()
	}
	if err := validateHabit(h); err != nil {
		return models.Habit{}, err
	}
	if nameTaken(habits, h.Name, "") {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrDuplicateName, h.Name)
	}

	ledger.Recompute(&h, s.Today())
	habits = append(habits, h)
	if err := s.commit(habits); err != nil {
		return models.Habit{}, err
	}
	logger.Info("habit added", "id", h.ID, "name", h.Name)
	return h, nil
}

// UpdateHabit applies patch to the habit with the given ID. The ledger is
// kept; caches are rederived because a frequency change affects rollover.
func (s *Service) UpdateHabit(id string, patch HabitPatch) (models.Habit, bool, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return models.Habit{}, false, err
	}
	i := habitIndex(habits, id)
	if i < 0 {
		notFound("habit", id)
		return models.Habit{}, false, nil
	}

	h := habits[i]
	if patch.Name != nil {
		h.Name = cleanText(*patch.Name)
	}
	if patch.Description != nil {
		h.Description = cleanText(*patch.Description)
	}
	if patch.Category != nil {
		h.Category = cleanText(*patch.Category)
	}
	if patch.Icon != nil {
		h.Icon = strings.TrimSpace(*patch.Icon)
	}
	if patch.Difficulty != nil {
		h.Difficulty = *patch.Difficulty
	}
	if patch.Frequency != nil {
		h.Frequency = *patch.Frequency
	}
	if err := validateHabit(h); err != nil {
		return models.Habit{}, false, err
	}
	if nameTaken(habits, h.Name, h.ID) {
		return models.Habit{}, false, fmt.Errorf("%w: %s", ErrDuplicateName, h.Name)
	}

	ledger.Recompute(&h, s.Today())
	habits[i] = h
	if err := s.commit(habits); err != nil {
		return models.Habit{}, false, err
	}
	logger.Info("habit updated", "id", h.ID)
	return h, true, nil
}

// DeleteHabit removes a habit and its ledger. Goals linked to it become
// orphaned; reminders are left in place.
func (s *Service) DeleteHabit(id string) (bool, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return false, err
	}
	i := habitIndex(habits, id)
	if i < 0 {
		notFound("habit", id)
		return false, nil
	}

	name := habits[i].Name
	habits = append(habits[:i], habits[i+1:]...)
	if err := s.commit(habits); err != nil {
		return false, err
	}
	logger.Info("habit deleted", "id", id, "name", name)
	return true, nil
}

// SetCompletion records whether a habit was done on date. at is the time of
// day it happened and is ignored when un-completing; a nil note keeps the
// existing one.
func (s *Service) SetCompletion(id, date string, completed bool, at *time.Time, note *string) (models.Habit, bool, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return models.Habit{}, false, err
	}
	i := habitIndex(habits, id)
	if i < 0 {
		notFound("habit", id)
		return models.Habit{}, false, nil
	}

	if note != nil {
		cleaned := cleanText(*note)
		note = &cleaned
	}
	mark := ledger.Mark{Date: date, Completed: completed, At: at, Note: note}
	if err := ledger.SetCompletion(&habits[i], mark, s.Today()); err != nil {
		return models.Habit{}, false, err
	}
	if err := s.commit(habits); err != nil {
		return models.Habit{}, false, err
	}
	logger.Debug("completion recorded", "habit", id, "date", date, "completed", completed)
	return habits[i], true, nil
}

// ToggleToday flips today's completion of a habit, stamping the current
// time when it becomes completed.
func (s *Service) ToggleToday(id string) (models.Habit, bool, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return models.Habit{}, false, err
	}
	i := habitIndex(habits, id)
	if i < 0 {
		notFound("habit", id)
		return models.Habit{}, false, nil
	}

	today := s.Today()
	now := s.Now()
	completed := !ledger.IsCompletedOn(habits[i].Completions, today)
	return s.SetCompletion(id, today, completed, &now, nil)
}

func validateHabit(h models.Habit) error {
	if err := validation.Struct(h); err != nil {
		return err
	}
	if h.Frequency.Kind == models.FrequencyCustom && len(h.Frequency.CustomDays) == 0 {
		return fmt.Errorf("validation failed: custom frequency needs at least one weekday")
	}
	return nil
}
