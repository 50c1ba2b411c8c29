// Package forms holds the huh forms shared by `habit add --interactive`,
// `goal add --interactive` and the TUI.
package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
)

// HabitForm is the value model behind NewHabitForm.
type HabitForm struct {
	Name        string
	Description string
	Category    string
	Icon        string
	Difficulty  models.Difficulty
	Frequency   models.FrequencyKind
	Days        string
}

// Input converts the form values into tracker input.
func (fm *HabitForm) Input() (tracker.HabitInput, error) {
	days := ""
	if fm.Frequency == models.FrequencyCustom {
		days = fm.Days
	}
	freq, err := utils.ParseFrequency(string(fm.Frequency), days)
	if err != nil {
		return tracker.HabitInput{}, err
	}
	return tracker.HabitInput{
		Name:        fm.Name,
		Description: fm.Description,
		Category:    fm.Category,
		Icon:        fm.Icon,
		Difficulty:  fm.Difficulty,
		Frequency:   freq,
	}, nil
}

// NewHabitForm creates a new form for adding habits
func NewHabitForm(fm *HabitForm) *huh.Form {
	if fm.Frequency == "" {
		fm.Frequency = models.FrequencyDaily
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewInput().
				Title("Category").
				Placeholder("Health, Personal, Productivity...").
				Value(&fm.Category),
			huh.NewInput().
				Title("Icon").
				Value(&fm.Icon),
		),
		huh.NewGroup(
			huh.NewSelect[models.Difficulty]().
				Title("Difficulty").
				Options(
					huh.NewOption("None", models.Difficulty("")),
					huh.NewOption("Easy", models.DifficultyEasy),
					huh.NewOption("Medium", models.DifficultyMedium),
					huh.NewOption("Hard", models.DifficultyHard),
				).
				Value(&fm.Difficulty),
			huh.NewSelect[models.FrequencyKind]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", models.FrequencyDaily),
					huh.NewOption("Weekly", models.FrequencyWeekly),
					huh.NewOption("Monthly", models.FrequencyMonthly),
					huh.NewOption("Custom days", models.FrequencyCustom),
				).
				Value(&fm.Frequency),
			huh.NewInput().
				Title("Days").
				Description("For custom frequency, e.g. mon,wed,fri").
				Value(&fm.Days).
				Validate(func(s string) error {
					if fm.Frequency != models.FrequencyCustom {
						return nil
					}
					_, err := utils.ParseWeekdays(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// GoalForm is the value model behind NewGoalForm. HabitID is empty for a
// manually tracked goal.
type GoalForm struct {
	Title    string
	HabitID  string
	Target   string
	Unit     string
	Period   models.GoalPeriod
	Deadline string
}

func (fm *GoalForm) Input() (tracker.GoalInput, error) {
	target, err := strconv.Atoi(strings.TrimSpace(fm.Target))
	if err != nil {
		return tracker.GoalInput{}, fmt.Errorf("invalid target %q: %w", fm.Target, err)
	}
	return tracker.GoalInput{
		Title:      fm.Title,
		HabitID:    fm.HabitID,
		TargetDays: target,
		Unit:       fm.Unit,
		Period:     fm.Period,
		Deadline:   fm.Deadline,
	}, nil
}

// NewGoalForm creates a form for adding goals. habits populates the
// linked-habit choice.
func NewGoalForm(fm *GoalForm, habits []models.Habit) *huh.Form {
	if fm.Period == "" {
		fm.Period = models.PeriodWeek
	}
	options := []huh.Option[string]{huh.NewOption("None (track manually)", "")}
	for _, h := range habits {
		options = append(options, huh.NewOption(h.Name, h.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("goal title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Linked habit").
				Options(options...).
				Value(&fm.HabitID),
			huh.NewInput().
				Title("Target").
				Value(&fm.Target).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return err
					}
					if i < 1 {
						return fmt.Errorf("target must be at least 1")
					}
					return nil
				}),
			huh.NewInput().
				Title("Unit").
				Placeholder("days").
				Value(&fm.Unit),
			huh.NewSelect[models.GoalPeriod]().
				Title("Period").
				Description("Window counted for a linked habit").
				Options(
					huh.NewOption("Week", models.PeriodWeek),
					huh.NewOption("Month", models.PeriodMonth),
					huh.NewOption("Year", models.PeriodYear),
				).
				Value(&fm.Period),
			huh.NewInput().
				Title("Deadline (YYYY-MM-DD)").
				Description("Optional").
				Value(&fm.Deadline).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := utils.ParseDate(strings.TrimSpace(s))
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
