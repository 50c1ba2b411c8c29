package goals

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/forms"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/render"
	"github.com/julianstephens/habitual/internal/tracker"
)

type GoalCmd struct {
	Add      GoalAddCmd      `cmd:"" help:"Add a goal, optionally linked to a habit."`
	List     GoalListCmd     `cmd:"" help:"List goals with their progress."`
	Progress GoalProgressCmd `cmd:"" help:"Add to the progress of a manual goal."`
	Set      GoalSetCmd      `cmd:"" help:"Set the progress of a manual goal."`
	Delete   GoalDeleteCmd   `cmd:"" help:"Delete a goal."`
}

type GoalAddCmd struct {
	Title       string `arg:"" optional:"" help:"Goal title."`
	Target      int    `help:"Target value (days for a linked habit)."`
	Habit       string `help:"Link the goal to a habit (name or ID)."`
	Period      string `help:"Window counted for a linked habit (week, month, year)." default:"week"`
	Unit        string `help:"Unit label." default:"days"`
	Description string `help:"Goal description."`
	Deadline    string `help:"Deadline in YYYY-MM-DD format."`
	Interactive bool   `short:"i" help:"Fill in the goal with an interactive form."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	var in tracker.GoalInput
	if c.Interactive {
		habits, err := ctx.Tracker.Habits()
		if err != nil {
			return err
		}
		fm := &forms.GoalForm{Title: c.Title, Unit: c.Unit}
		if err := forms.NewGoalForm(fm, habits).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				ctx.Println("Cancelled.")
				return nil
			}
			return err
		}
		if in, err = fm.Input(); err != nil {
			return err
		}
	} else {
		if c.Title == "" {
			return fmt.Errorf("goal title is required (or use --interactive)")
		}
		if c.Target < 1 {
			return fmt.Errorf("--target must be at least 1")
		}
		in = tracker.GoalInput{
			Title:       c.Title,
			Description: c.Description,
			TargetDays:  c.Target,
			Unit:        c.Unit,
			Period:      models.GoalPeriod(c.Period),
			Deadline:    c.Deadline,
		}
		if c.Habit != "" {
			h, ok, err := ctx.ResolveHabit(c.Habit)
			if err != nil || !ok {
				return err
			}
			in.HabitID = h.ID
		}
	}

	g, err := ctx.Tracker.AddGoal(in)
	if err != nil {
		return err
	}
	ctx.Printf("Added goal: %s (%s)\n", g.Title, render.ShortID(g.ID))
	return nil
}

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	statuses, err := ctx.Tracker.Goals()
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		ctx.Println("No goals found.")
		return nil
	}
	ctx.Println(render.HeaderStyle.Render("Goals"))
	for _, st := range statuses {
		ctx.Println(render.GoalLine(st.Goal, st.Progress))
	}
	return nil
}

type GoalProgressCmd struct {
	Goal string `arg:"" help:"Goal ID (or unique prefix) or title."`
	Add  int    `help:"Amount to add; negative values subtract." default:"1"`
}

func (c *GoalProgressCmd) Run(ctx *cli.Context) error {
	g, ok, err := ctx.ResolveGoal(c.Goal)
	if err != nil || !ok {
		return err
	}
	st, _, err := ctx.Tracker.IncrementGoal(g.ID, c.Add)
	if err != nil {
		return err
	}
	ctx.Println(render.GoalLine(st.Goal, st.Progress))
	return nil
}

type GoalSetCmd struct {
	Goal  string `arg:"" help:"Goal ID (or unique prefix) or title."`
	Value int    `arg:"" help:"New progress value."`
}

func (c *GoalSetCmd) Run(ctx *cli.Context) error {
	g, ok, err := ctx.ResolveGoal(c.Goal)
	if err != nil || !ok {
		return err
	}
	st, _, err := ctx.Tracker.SetGoalValue(g.ID, c.Value)
	if err != nil {
		return err
	}
	ctx.Println(render.GoalLine(st.Goal, st.Progress))
	return nil
}

type GoalDeleteCmd struct {
	Goal string `arg:"" help:"Goal ID (or unique prefix) or title."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	g, ok, err := ctx.ResolveGoal(c.Goal)
	if err != nil || !ok {
		return err
	}
	if _, err := ctx.Tracker.DeleteGoal(g.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted goal: %s\n", g.Title)
	return nil
}
