package settings

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/heatmap"
	"github.com/julianstephens/habitual/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone      *string `help:"IANA timezone used to decide the current day, or Local."`
	TrendWeeks    *int    `help:"Weeks shown in the completion trend (6 or 12)."`
	HeatmapWindow *string `help:"Default heatmap window (month, 6months, year)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Repo.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:        %s\n", settings.Timezone)
		ctx.Printf("  Trend Weeks:     %d\n", settings.TrendWeeks)
		ctx.Printf("  Heatmap Window:  %s\n", settings.HeatmapWindow)
		if tz := ctx.Config.General.Timezone; tz != "" && tz != settings.Timezone {
			ctx.Printf("\nTimezone overridden for this run: %s\n", tz)
		}
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.TrendWeeks != nil {
		if *c.TrendWeeks != constants.DefaultTrendWeeks && *c.TrendWeeks != constants.ShortTrendWeeks {
			return fmt.Errorf("trend weeks must be %d or %d", constants.ShortTrendWeeks, constants.DefaultTrendWeeks)
		}
		settings.TrendWeeks = *c.TrendWeeks
		updated = true
	}
	if c.HeatmapWindow != nil {
		window, err := heatmap.ParseWindow(*c.HeatmapWindow)
		if err != nil {
			return err
		}
		settings.HeatmapWindow = string(window)
		updated = true
	}

	if updated {
		if err := ctx.Repo.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Settings = settings
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
