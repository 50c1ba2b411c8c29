package habits

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/cli"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/forms"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/render"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	List      HabitListCmd      `cmd:"" help:"List habits."`
	Templates HabitTemplatesCmd `cmd:"" help:"List built-in habit templates."`
	Mark      HabitMarkCmd      `cmd:"" help:"Mark a habit as done (or undone) for a day."`
	Toggle    HabitToggleCmd    `cmd:"" help:"Toggle today's completion of a habit."`
	Today     HabitTodayCmd     `cmd:"" help:"Show today's habit status."`
	Edit      HabitEditCmd      `cmd:"" help:"Edit an existing habit."`
	Delete    HabitDeleteCmd    `cmd:"" help:"Delete a habit and its history."`
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name."`
	Description string `help:"Habit description."`
	Category    string `help:"Category label."`
	Icon        string `help:"Icon shown next to the habit."`
	Difficulty  string `help:"Difficulty (easy, medium, hard)."`
	Frequency   string `help:"Frequency (daily, weekly, monthly, custom)." default:"daily"`
	Days        string `help:"Weekdays for custom frequency (e.g., mon,wed,fri)."`
	Template    string `help:"Create from a built-in template (see 'habit templates')."`
	Interactive bool   `short:"i" help:"Fill in the habit with an interactive form."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	var in tracker.HabitInput
	switch {
	case c.Interactive:
		fm := &forms.HabitForm{Name: c.Name}
		if err := forms.NewHabitForm(fm).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				ctx.Println("Cancelled.")
				return nil
			}
			return err
		}
		var err error
		if in, err = fm.Input(); err != nil {
			return err
		}

	case c.Template != "":
		t, ok := models.FindTemplate(c.Template)
		if !ok {
			ctx.Println(apperrors.NotFound("template", c.Template))
			return nil
		}
		in = tracker.FromTemplate(t)
		if c.Name != "" {
			in.Name = c.Name
		}

	default:
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("habit name is required (or use --template or --interactive)")
		}
		freq, err := utils.ParseFrequency(c.Frequency, c.Days)
		if err != nil {
			return err
		}
		in = tracker.HabitInput{
			Name:        c.Name,
			Description: c.Description,
			Category:    c.Category,
			Icon:        c.Icon,
			Difficulty:  models.Difficulty(strings.ToLower(c.Difficulty)),
			Frequency:   freq,
		}
	}

	h, err := ctx.Tracker.AddHabit(in)
	if err != nil {
		return err
	}
	ctx.Printf("Added habit: %s (%s)\n", h.Name, h.Frequency)
	return nil
}

type HabitListCmd struct {
	Category string `help:"Only show habits in this category."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Tracker.Habits()
	if err != nil {
		return err
	}

	shown := 0
	for _, h := range habits {
		if c.Category != "" && !strings.EqualFold(h.CategoryLabel(), c.Category) {
			continue
		}
		ctx.Println(render.HabitLine(h))
		shown++
	}
	if shown == 0 {
		ctx.Println("No habits found.")
	}
	return nil
}

type HabitTemplatesCmd struct{}

func (c *HabitTemplatesCmd) Run(ctx *cli.Context) error {
	for _, t := range models.Templates() {
		ctx.Printf("%s %-26s %-12s %-8s %s\n", t.Icon, t.Name, t.Category, t.Frequency, render.MutedStyle.Render(t.Description))
	}
	return nil
}

type HabitMarkCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Date  string `help:"Date in YYYY-MM-DD format, today or earlier (default: today)."`
	Undo  bool   `help:"Record the day as not done."`
	At    string `help:"Time of day it was done (HH:MM, default: now when marking today)."`
	Note  string `help:"Optional note for this entry."`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	h, ok, err := ctx.ResolveHabit(c.Habit)
	if err != nil || !ok {
		return err
	}

	day := c.Date
	if day == "" {
		day = ctx.Tracker.Today()
	} else if !utils.ValidateDateFormat(day) {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	} else if day > ctx.Tracker.Today() {
		return fmt.Errorf("cannot mark %s: date is in the future", day)
	}

	var at *time.Time
	switch {
	case c.At != "":
		t, err := utils.ParseTime(c.At)
		if err != nil {
			return fmt.Errorf("invalid time format: %s (expected HH:MM)", c.At)
		}
		at = &t
	case day == ctx.Tracker.Today():
		now := ctx.Tracker.Now()
		at = &now
	}

	var note *string
	if c.Note != "" {
		note = &c.Note
	}

	h, _, err = ctx.Tracker.SetCompletion(h.ID, day, !c.Undo, at, note)
	if err != nil {
		return err
	}
	verb := "Marked"
	if c.Undo {
		verb = "Unmarked"
	}
	ctx.Printf("%s habit %q for %s (streak %d)\n", verb, h.Name, day, h.Streak)
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	h, ok, err := ctx.ResolveHabit(c.Habit)
	if err != nil || !ok {
		return err
	}
	h, _, err = ctx.Tracker.ToggleToday(h.ID)
	if err != nil {
		return err
	}
	ctx.Println(render.HabitLine(h))
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Tracker.Habits()
	if err != nil {
		return err
	}
	today := ctx.Tracker.TodayDate()

	var due []models.Habit
	for _, h := range habits {
		if utils.IsDueOn(h.Frequency, today) || h.CompletedToday {
			due = append(due, h)
		}
	}
	ctx.Printf("%s", render.TodaySummary(analytics.Today(habits), ctx.Tracker.Today()))
	if len(due) == 0 {
		ctx.Println("Nothing due today.")
		return nil
	}
	for _, h := range due {
		ctx.Println(render.HabitLine(h))
	}
	return nil
}

type HabitEditCmd struct {
	Habit       string  `arg:"" help:"Habit name or ID."`
	Name        *string `help:"New name."`
	Description *string `help:"New description."`
	Category    *string `help:"New category."`
	Icon        *string `help:"New icon."`
	Difficulty  *string `help:"New difficulty (easy, medium, hard)."`
	Frequency   *string `help:"New frequency (daily, weekly, monthly, custom)."`
	Days        string  `help:"Weekdays for a custom frequency."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	h, ok, err := ctx.ResolveHabit(c.Habit)
	if err != nil || !ok {
		return err
	}

	patch := tracker.HabitPatch{
		Name:        c.Name,
		Description: c.Description,
		Category:    c.Category,
		Icon:        c.Icon,
	}
	if c.Difficulty != nil {
		d := models.Difficulty(strings.ToLower(*c.Difficulty))
		patch.Difficulty = &d
	}
	if c.Frequency != nil {
		freq, err := utils.ParseFrequency(*c.Frequency, c.Days)
		if err != nil {
			return err
		}
		patch.Frequency = &freq
	}

	h, _, err = ctx.Tracker.UpdateHabit(h.ID, patch)
	if err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s\n", h.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	h, ok, err := ctx.ResolveHabit(c.Habit)
	if err != nil || !ok {
		return err
	}
	if _, err := ctx.Tracker.DeleteHabit(h.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", h.Name)
	return nil
}
