package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

// IsDueOn reports whether a habit with the given frequency is expected on
// date. Weekly and monthly habits can be done on any day of their period, so
// they are always due.
func IsDueOn(freq models.Frequency, date time.Time) bool {
	switch freq.Kind {
	case models.FrequencyCustom:
		for _, wd := range freq.CustomDays {
			if date.Weekday() == wd {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if wd, ok := models.ParseWeekday(part); ok {
			weekdays = append(weekdays, wd)
			continue
		}
		// Try parsing as number (0=Sunday, 6=Saturday)
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, time.Weekday(num))
	}
	if len(weekdays) == 0 {
		return nil, fmt.Errorf("no weekdays given")
	}
	return weekdays, nil
}

// ParseFrequency builds a Frequency from a kind name and, for custom
// frequencies, a comma-separated weekday list.
func ParseFrequency(kind, days string) (models.Frequency, error) {
	k, err := models.ParseFrequencyKind(kind)
	if err != nil {
		return models.Frequency{}, err
	}
	if k != models.FrequencyCustom {
		if days != "" {
			return models.Frequency{}, fmt.Errorf("--days is only valid with custom frequency")
		}
		return models.Frequency{Kind: k}, nil
	}
	weekdays, err := ParseWeekdays(days)
	if err != nil {
		return models.Frequency{}, fmt.Errorf("custom frequency needs weekdays: %w", err)
	}
	return models.Custom(weekdays...), nil
}
