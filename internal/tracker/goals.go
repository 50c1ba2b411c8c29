package tracker

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/goals"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/validation"
)

// GoalInput holds the fields of a new goal. HabitID may be empty for a
// manually tracked goal.
type GoalInput struct {
	Title       string
	Description string
	HabitID     string
	TargetDays  int
	Unit        string
	Period      models.GoalPeriod
	Deadline    string
}

// GoalStatus pairs a goal with its evaluated progress.
type GoalStatus struct {
	Goal     models.Goal
	Progress goals.Progress
}

// Goals returns every goal evaluated against the current habits.
func (s *Service) Goals() ([]GoalStatus, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return nil, err
	}
	gs, err := s.repo.Goals()
	if err != nil {
		return nil, err
	}

	progress := goals.RefreshAll(gs, habits, s.Now())
	out := make([]GoalStatus, len(gs))
	for i := range gs {
		out[i] = GoalStatus{Goal: gs[i], Progress: progress[i]}
	}
	return out, nil
}

// FindGoal resolves ref as a goal ID or a case-insensitive title.
func (s *Service) FindGoal(ref string) (models.Goal, bool, error) {
	gs, err := s.repo.Goals()
	if err != nil {
		return models.Goal{}, false, err
	}
	if i := goalIndex(gs, ref); i >= 0 {
		return gs[i], true, nil
	}
	for _, g := range gs {
		if strings.EqualFold(g.Title, strings.TrimSpace(ref)) {
			return g, true, nil
		}
	}
	return models.Goal{}, false, nil
}

// AddGoal creates a goal. A linked goal must reference an existing habit.
func (s *Service) AddGoal(in GoalInput) (models.Goal, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return models.Goal{}, err
	}
	gs, err := s.repo.Goals()
	if err != nil {
		return models.Goal{}, err
	}

	g := models.Goal{
		ID:          newID(),
		Title:       cleanText(in.Title),
		Description: cleanText(in.Description),
		HabitID:     strings.TrimSpace(in.HabitID),
		TargetDays:  in.TargetDays,
		Unit:        defaultUnit(in.Unit),
		Period:      in.Period,
		Deadline:    strings.TrimSpace(in.Deadline),
		CreatedAt:   s.now().UTC(),
	}
	if g.Period == "" {
		g.Period = models.PeriodWeek
	}
	if err := validation.Struct(g); err != nil {
		return models.Goal{}, err
	}
	if g.IsLinked() && habitIndex(habits, g.HabitID) < 0 {
		return models.Goal{}, fmt.Errorf("%w: %s", ErrHabitNotFound, g.HabitID)
	}

	gs = append(gs, g)
	if err := s.saveGoals(gs, habits); err != nil {
		return models.Goal{}, err
	}
	logger.Info("goal added", "id", g.ID, "title", g.Title, "linked", g.IsLinked())
	return gs[len(gs)-1], nil
}

// DeleteGoal removes a goal.
func (s *Service) DeleteGoal(id string) (bool, error) {
	gs, err := s.repo.Goals()
	if err != nil {
		return false, err
	}
	i := goalIndex(gs, id)
	if i < 0 {
		notFound("goal", id)
		return false, nil
	}

	gs = append(gs[:i], gs[i+1:]...)
	if err := s.repo.SaveGoals(gs); err != nil {
		return false, err
	}
	logger.Info("goal deleted", "id", id)
	return true, nil
}

// SetGoalValue sets the manual progress of an unlinked goal.
func (s *Service) SetGoalValue(id string, value int) (GoalStatus, bool, error) {
	return s.updateGoal(id, func(g *models.Goal) error {
		return goals.SetValue(g, value)
	})
}

// IncrementGoal adds delta to the manual progress of an unlinked goal.
func (s *Service) IncrementGoal(id string, delta int) (GoalStatus, bool, error) {
	return s.updateGoal(id, func(g *models.Goal) error {
		return goals.Increment(g, delta)
	})
}

func (s *Service) updateGoal(id string, apply func(*models.Goal) error) (GoalStatus, bool, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return GoalStatus{}, false, err
	}
	gs, err := s.repo.Goals()
	if err != nil {
		return GoalStatus{}, false, err
	}
	i := goalIndex(gs, id)
	if i < 0 {
		notFound("goal", id)
		return GoalStatus{}, false, nil
	}

	if err := apply(&gs[i]); err != nil {
		return GoalStatus{}, false, err
	}
	if err := s.saveGoals(gs, habits); err != nil {
		return GoalStatus{}, false, err
	}
	g, p := goals.Refresh(gs[i], habits, s.Now())
	logger.Debug("goal progress updated", "id", id, "value", p.Value)
	return GoalStatus{Goal: g, Progress: p}, true, nil
}

func (s *Service) saveGoals(gs []models.Goal, habits []models.Habit) error {
	goals.RefreshAll(gs, habits, s.Now())
	return s.repo.SaveGoals(gs)
}

func goalIndex(gs []models.Goal, id string) int {
	for i := range gs {
		if gs[i].ID == id {
			return i
		}
	}
	return -1
}
