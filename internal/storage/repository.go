package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
)

// Repository reads and writes the application's records through a Provider.
// Missing or malformed records load as empty values so a damaged store never
// blocks startup; backend failures are still returned.
type Repository struct {
	provider Provider
	defaults models.Settings
}

func NewRepository(p Provider) *Repository {
	return &Repository{provider: p}
}

// WithSettingsDefaults sets the preferences used for fields that were never
// stored, such as display defaults from the config file.
func (r *Repository) WithSettingsDefaults(defaults models.Settings) *Repository {
	r.defaults = defaults
	return r
}

func (r *Repository) Provider() Provider {
	return r.provider
}

func (r *Repository) Habits() ([]models.Habit, error) {
	return loadList[models.Habit](r.provider, constants.KeyHabits)
}

func (r *Repository) SaveHabits(habits []models.Habit) error {
	return r.put(constants.KeyHabits, nonNil(habits))
}

// Goals reads the current key and falls back to the legacy one.
func (r *Repository) Goals() ([]models.Goal, error) {
	raw, err := r.provider.Get(constants.KeyGoals)
	if errors.Is(err, ErrNotFound) {
		return loadList[models.Goal](r.provider, constants.KeyLegacyGoals)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", constants.KeyGoals, err)
	}
	return decodeList[models.Goal](constants.KeyGoals, raw), nil
}

func (r *Repository) SaveGoals(goals []models.Goal) error {
	return r.put(constants.KeyGoals, nonNil(goals))
}

func (r *Repository) Reminders() ([]models.Reminder, error) {
	return loadList[models.Reminder](r.provider, constants.KeyReminders)
}

func (r *Repository) SaveReminders(reminders []models.Reminder) error {
	return r.put(constants.KeyReminders, nonNil(reminders))
}

// LastResetDate returns the stored rollover date, or "" when absent. Both a
// JSON string and a bare date are accepted.
func (r *Repository) LastResetDate() (string, error) {
	raw, err := r.provider.Get(constants.KeyLastResetDate)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", constants.KeyLastResetDate, err)
	}

	var date string
	if err := json.Unmarshal(raw, &date); err != nil {
		date = strings.TrimSpace(string(raw))
	}
	return date, nil
}

func (r *Repository) SetLastResetDate(date string) error {
	return r.put(constants.KeyLastResetDate, date)
}

// Settings returns stored preferences, falling back to the configured
// defaults and then the built-in ones for unset fields.
func (r *Repository) Settings() (models.Settings, error) {
	settings := r.defaults
	raw, err := r.provider.Get(constants.KeySettings)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return settings, fmt.Errorf("failed to read %s: %w", constants.KeySettings, err)
	default:
		if err := json.Unmarshal(raw, &settings); err != nil {
			logger.Warn("malformed record, using defaults", "key", constants.KeySettings, "error", err)
			settings = r.defaults
		}
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

func (r *Repository) SaveSettings(settings models.Settings) error {
	return r.put(constants.KeySettings, settings)
}

func (r *Repository) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.provider.Put(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func loadList[T any](p Provider, key string) ([]T, error) {
	raw, err := p.Get(key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return decodeList[T](key, raw), nil
}

func decodeList[T any](key string, raw []byte) []T {
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.Warn("malformed record, treating as empty", "key", key, "error", err)
		return []T{}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
