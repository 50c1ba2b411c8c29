package constants

const (
	AppName            = "habitual"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitual/habitual.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Persisted record keys
	KeyHabits        = "habits"
	KeyGoals         = "habit-goals"
	KeyLegacyGoals   = "goals"
	KeyReminders     = "habit-reminders"
	KeyLastResetDate = "lastResetDate"
	KeySettings      = "settings"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitual-"

	// Export constants
	ExportFilePrefix = "habits-export-"

	UncategorizedLabel = "Uncategorized"
	DefaultGoalUnit    = "days"
)
