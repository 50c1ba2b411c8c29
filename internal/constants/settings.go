package constants

const (
	// Setting names accepted by `habitual settings`
	SettingTimezone      = "timezone"
	SettingTrendWeeks    = "trend_weeks"
	SettingHeatmapWindow = "heatmap_window"

	// Default Settings Values
	DefaultTimezone      = "Local" // Use system local timezone by default
	DefaultTrendWeeks    = 12
	ShortTrendWeeks      = 6
	DefaultTrendMonths   = 6
	DefaultHeatmapWindow = "month"
)
