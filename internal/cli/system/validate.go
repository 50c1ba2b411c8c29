package system

import (
	"strings"

	"github.com/julianstephens/habitual/internal/cli"
)

type ValidateCmd struct {
	Fix bool `help:"Repair duplicate records and stale cached totals."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	result, _, err := ctx.Tracker.Check(false)
	if err != nil {
		return err
	}
	ctx.Println(strings.TrimRight(result.FormatReport(), "\n"))

	if !c.Fix || !result.HasConflicts() {
		return nil
	}

	ctx.PerformAutomaticBackup()
	_, actions, err := ctx.Tracker.Check(true)
	if err != nil {
		return err
	}
	if len(actions) == 0 {
		ctx.Println("\nNothing could be fixed automatically.")
		return nil
	}

	ctx.Printf("\nApplied %d fix(es):\n", len(actions))
	for _, a := range actions {
		ctx.Printf("  ✓ %s\n", a.Action)
	}
	return nil
}
