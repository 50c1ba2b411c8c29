// Package export renders habits as CSV rows or as a JSON/YAML snapshot.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var csvHeader = []string{
	"Habit Name", "Category", "Description", "Current Streak",
	"Total Days", "Completed Days", "Completion Rate",
}

// ParseFormat parses an export format name; "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s (must be csv, json, or yaml)", s)
	}
}

// FileName returns the default export file name for the given day.
func FileName(format Format, date time.Time) string {
	return constants.ExportFilePrefix + date.Format(constants.DateFormat) + "." + string(format)
}

// Summary aggregates the exported habits.
type Summary struct {
	TotalHabits           int `json:"totalHabits" yaml:"totalHabits"`
	TotalCompletions      int `json:"totalCompletions" yaml:"totalCompletions"`
	AverageCompletionRate int `json:"averageCompletionRate" yaml:"averageCompletionRate"`
}

// Snapshot is the full JSON/YAML export document.
type Snapshot struct {
	ExportDate string         `json:"exportDate" yaml:"exportDate"`
	Habits     []models.Habit `json:"habits" yaml:"habits"`
	Summary    Summary        `json:"summary" yaml:"summary"`
}

// NewSnapshot builds a snapshot stamped with now. The average rate is the
// mean of the unrounded per-habit rates, rounded once at the end.
func NewSnapshot(habits []models.Habit, now time.Time) Snapshot {
	if habits == nil {
		habits = []models.Habit{}
	}
	summary := Summary{TotalHabits: len(habits)}
	var rateSum float64
	for _, h := range habits {
		summary.TotalCompletions += h.CompletedDays
		if h.TotalDays > 0 {
			rateSum += float64(h.CompletedDays) / float64(h.TotalDays)
		}
	}
	if len(habits) > 0 {
		summary.AverageCompletionRate = int(rateSum/float64(len(habits))*100 + 0.5)
	}
	return Snapshot{
		ExportDate: now.UTC().Format(time.RFC3339),
		Habits:     habits,
		Summary:    summary,
	}
}

// WriteCSV writes one row per habit under the fixed header.
func WriteCSV(w io.Writer, habits []models.Habit) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, h := range habits {
		row := []string{
			h.Name,
			h.Category,
			h.Description,
			strconv.Itoa(h.Streak),
			strconv.Itoa(h.TotalDays),
			strconv.Itoa(h.CompletedDays),
			strconv.Itoa(h.CompletionRate()) + "%",
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for %q: %w", h.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, snapshot Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode json export: %w", err)
	}
	return nil
}

func WriteYAML(w io.Writer, snapshot Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode yaml export: %w", err)
	}
	return enc.Close()
}

// Write renders habits in the requested format.
func Write(w io.Writer, format Format, habits []models.Habit, now time.Time) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, habits)
	case FormatJSON:
		return WriteJSON(w, NewSnapshot(habits, now))
	case FormatYAML:
		return WriteYAML(w, NewSnapshot(habits, now))
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}
