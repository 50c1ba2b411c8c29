package reminders

import (
	"github.com/julianstephens/habitual/internal/cli"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/render"
	"github.com/julianstephens/habitual/internal/scheduler"
	"github.com/julianstephens/habitual/internal/tracker"
)

type ReminderCmd struct {
	Add    ReminderAddCmd    `cmd:"" help:"Add a reminder time for a habit."`
	List   ReminderListCmd   `cmd:"" help:"List reminders."`
	Toggle ReminderToggleCmd `cmd:"" help:"Enable or disable a reminder."`
	Delete ReminderDeleteCmd `cmd:"" help:"Delete a reminder."`
	Agenda ReminderAgendaCmd `cmd:"" help:"Show today's reminders in time order."`
}

type ReminderAddCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Time  string `required:"" help:"Reminder time (HH:MM)."`
}

func (c *ReminderAddCmd) Run(ctx *cli.Context) error {
	h, ok, err := ctx.ResolveHabit(c.Habit)
	if err != nil || !ok {
		return err
	}
	r, err := ctx.Tracker.AddReminder(h.ID, c.Time)
	if err != nil {
		return err
	}
	ctx.Printf("Added reminder for %s at %s (%s)\n", r.HabitName, r.Time, render.ShortID(r.ID))
	return nil
}

type ReminderListCmd struct{}

func (c *ReminderListCmd) Run(ctx *cli.Context) error {
	statuses, err := ctx.Tracker.Reminders()
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		ctx.Println("No reminders found.")
		return nil
	}
	for _, st := range statuses {
		state := render.DoneStyle.Render("on ")
		if !st.Reminder.Enabled {
			state = render.MutedStyle.Render("off")
		}
		name := st.Reminder.HabitName
		if st.Orphaned {
			name += " " + render.WarnStyle.Render("(habit deleted)")
		}
		ctx.Printf("%s  %s  %s  %s\n", render.MutedStyle.Render(render.ShortID(st.Reminder.ID)), st.Reminder.Time, state, name)
	}
	return nil
}

type ReminderToggleCmd struct {
	ID string `arg:"" help:"Reminder ID or unique prefix."`
}

func (c *ReminderToggleCmd) Run(ctx *cli.Context) error {
	id, ok, err := resolve(ctx, c.ID)
	if err != nil || !ok {
		return err
	}
	r, _, err := ctx.Tracker.ToggleReminder(id)
	if err != nil {
		return err
	}
	state := "disabled"
	if r.Enabled {
		state = "enabled"
	}
	ctx.Printf("Reminder for %s at %s %s\n", r.HabitName, r.Time, state)
	return nil
}

type ReminderDeleteCmd struct {
	ID string `arg:"" help:"Reminder ID or unique prefix."`
}

func (c *ReminderDeleteCmd) Run(ctx *cli.Context) error {
	id, ok, err := resolve(ctx, c.ID)
	if err != nil || !ok {
		return err
	}
	if _, err := ctx.Tracker.DeleteReminder(id); err != nil {
		return err
	}
	ctx.Println("Deleted reminder.")
	return nil
}

type ReminderAgendaCmd struct{}

func (c *ReminderAgendaCmd) Run(ctx *cli.Context) error {
	agenda, err := ctx.Tracker.Agenda()
	if err != nil {
		return err
	}
	if len(agenda.Slots) == 0 {
		ctx.Printf("No reminders scheduled for %s.\n", agenda.Date)
		return nil
	}

	ctx.Printf("%s\n", render.HeaderStyle.Render("Reminders for "+agenda.Date))
	for _, s := range agenda.Slots {
		var state string
		switch s.Status {
		case scheduler.SlotStatusDone:
			state = render.DoneStyle.Render("done")
		case scheduler.SlotStatusOverdue:
			state = render.WarnStyle.Render("overdue")
		default:
			state = render.MutedStyle.Render("upcoming")
		}
		ctx.Printf("  %s  %-24s %s\n", s.Start, render.Truncate(s.Habit.Name, 24), state)
	}
	if next, ok := agenda.Next(); ok {
		ctx.Printf("\nNext: %s at %s (%d open)\n", next.Habit.Name, next.Start, agenda.Pending())
	}
	return nil
}

func resolve(ctx *cli.Context, ref string) (string, bool, error) {
	statuses, err := ctx.Tracker.Reminders()
	if err != nil {
		return "", false, err
	}
	if i := cli.MatchID(ids(statuses), ref); i >= 0 {
		return statuses[i].Reminder.ID, true, nil
	}
	ctx.Println(apperrors.NotFound("reminder", ref))
	return "", false, nil
}

func ids(statuses []tracker.ReminderStatus) []string {
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = st.Reminder.ID
	}
	return out
}
