package models

import "github.com/julianstephens/habitual/internal/constants"

// Settings represents user preferences persisted alongside the habit data
type Settings struct {
	Timezone      string `json:"timezone"`      // IANA timezone name or "Local" for system timezone
	TrendWeeks    int    `json:"trendWeeks"`    // number of weeks in the completion-rate trend (6 or 12)
	HeatmapWindow string `json:"heatmapWindow"` // default heatmap window: month, 6months or year
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.TrendWeeks != constants.DefaultTrendWeeks && settings.TrendWeeks != constants.ShortTrendWeeks {
		settings.TrendWeeks = constants.DefaultTrendWeeks
	}
	if settings.HeatmapWindow == "" {
		settings.HeatmapWindow = constants.DefaultHeatmapWindow
	}
}
