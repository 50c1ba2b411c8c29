// Package tracker is the application service behind the CLI and TUI. Every
// mutation loads the current collections, applies the change, rederives the
// habit caches, refreshes all goals and persists the touched keys.
package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/goals"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/rollover"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

var (
	ErrDuplicateName = errors.New("a habit with this name already exists")
	ErrHabitNotFound = errors.New("habit not found")
)

type Service struct {
	repo *storage.Repository
	loc  *time.Location
	now  func() time.Time
}

// New returns a service whose "today" is the calendar date in loc.
func New(repo *storage.Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, loc: loc, now: time.Now}
}

// WithClock replaces the wall clock, for tests and replays.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Repository() *storage.Repository {
	return s.repo
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// Now returns the current instant in the configured timezone.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

// Today returns the current calendar date as YYYY-MM-DD.
func (s *Service) Today() string {
	return utils.TodayIn(s.now(), s.loc)
}

// TodayDate returns today as a midnight-UTC date value.
func (s *Service) TodayDate() time.Time {
	return utils.DateOf(s.Now())
}

// Rollover runs the daily reset once per calendar day. It is meant to be
// called on every start; repeated calls on the same day do nothing.
func (s *Service) Rollover() (rollover.Report, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return rollover.Report{}, err
	}
	last, err := s.repo.LastResetDate()
	if err != nil {
		return rollover.Report{}, err
	}

	report := rollover.Run(habits, last, s.Today())
	if !report.Performed {
		return report, nil
	}
	if err := s.commit(habits); err != nil {
		return report, err
	}
	if err := s.repo.SetLastResetDate(report.Today); err != nil {
		return report, err
	}
	logger.Info("daily rollover", "previous", report.Previous, "today", report.Today, "reset", report.Reset)
	return report, nil
}

// commit refreshes every goal against habits and persists both collections.
func (s *Service) commit(habits []models.Habit) error {
	gs, err := s.repo.Goals()
	if err != nil {
		return err
	}
	goals.RefreshAll(gs, habits, s.Now())
	if err := s.repo.SaveHabits(habits); err != nil {
		return err
	}
	return s.repo.SaveGoals(gs)
}

// Check runs the data-integrity checks against the stored collections.
// With fix set, repairable problems are corrected and persisted.
func (s *Service) Check(fix bool) (validation.Result, []validation.FixAction, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return validation.Result{}, nil, err
	}
	gs, err := s.repo.Goals()
	if err != nil {
		return validation.Result{}, nil, err
	}
	reminders, err := s.repo.Reminders()
	if err != nil {
		return validation.Result{}, nil, err
	}

	today := s.Today()
	result := validation.Check(habits, gs, reminders, today)
	if !fix || !result.HasConflicts() {
		return result, nil, nil
	}

	actions := validation.Fix(habits, result, today)
	if len(actions) == 0 {
		return result, nil, nil
	}
	if err := s.commit(habits); err != nil {
		return result, nil, fmt.Errorf("failed to save repaired habits: %w", err)
	}
	logger.Info("repaired stored data", "actions", len(actions))
	return result, actions, nil
}

func newID() string {
	return uuid.New().String()
}

func notFound(kind, id string) {
	logger.Debug(kind+" not found", "id", id)
}

func cleanText(s string) string {
	return validation.SanitizeText(s)
}

func defaultUnit(unit string) string {
	if unit = strings.TrimSpace(unit); unit == "" {
		return constants.DefaultGoalUnit
	}
	return unit
}

func habitIndex(habits []models.Habit, id string) int {
	for i := range habits {
		if habits[i].ID == id {
			return i
		}
	}
	return -1
}
