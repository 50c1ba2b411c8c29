package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitual/internal/models"
)

var exportNow = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

func sampleHabits() []models.Habit {
	return []models.Habit{
		{
			ID: "h1", Name: "Exercise", Category: "Health", Description: "30 minutes, outside",
			Frequency: models.Daily(), Streak: 3, TotalDays: 4, CompletedDays: 3,
			Completions: []models.Completion{{Date: "2026-10-19", Completed: true, CompletionTime: "07:15"}},
		},
		{
			ID: "h2", Name: "Journal", Frequency: models.Custom(time.Monday, time.Friday),
			TotalDays: 3, CompletedDays: 1,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleHabits()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2", len(records))
	}
	if strings.Join(records[0], ",") != "Habit Name,Category,Description,Current Streak,Total Days,Completed Days,Completion Rate" {
		t.Errorf("unexpected header %v", records[0])
	}
	want := []string{"Exercise", "Health", "30 minutes, outside", "3", "4", "3", "75%"}
	for i, v := range want {
		if records[1][i] != v {
			t.Errorf("row 1 col %d = %q, want %q", i, records[1][i], v)
		}
	}
	if records[2][6] != "33%" {
		t.Errorf("Journal rate = %q, want 33%%", records[2][6])
	}
}

func TestWriteCSV_NoHabits(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 1 {
		t.Errorf("got %d lines, want only the header", lines)
	}
}

func TestNewSnapshot(t *testing.T) {
	tests := []struct {
		name   string
		habits []models.Habit
		want   Summary
	}{
		{
			name:   "no habits",
			habits: nil,
			want:   Summary{},
		},
		{
			// (0.75 + 0.3333) / 2 = 0.5417
			name:   "mean of unrounded rates",
			habits: sampleHabits(),
			want:   Summary{TotalHabits: 2, TotalCompletions: 4, AverageCompletionRate: 54},
		},
		{
			name:   "untracked habit counts as zero rate",
			habits: []models.Habit{{Name: "a", TotalDays: 2, CompletedDays: 2}, {Name: "b"}},
			want:   Summary{TotalHabits: 2, TotalCompletions: 2, AverageCompletionRate: 50},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := NewSnapshot(tt.habits, exportNow)
			if snap.Summary != tt.want {
				t.Errorf("Summary = %+v, want %+v", snap.Summary, tt.want)
			}
			if snap.ExportDate != "2026-10-19T08:30:00Z" {
				t.Errorf("ExportDate = %q", snap.ExportDate)
			}
			if snap.Habits == nil {
				t.Error("Habits should never be nil")
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleHabits(), exportNow); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var decoded Snapshot
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if len(decoded.Habits) != 2 || decoded.Habits[1].Frequency.Kind != models.FrequencyCustom {
		t.Errorf("unexpected habits %+v", decoded.Habits)
	}
	if !strings.Contains(buf.String(), `"averageCompletionRate": 54`) {
		t.Errorf("summary missing from output:\n%s", buf.String())
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, sampleHabits(), exportNow); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"exportDate:", "totalHabits: 2", "completionTime:", "kind: custom"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml output missing %q:\n%s", want, out)
		}
	}

	var decoded Snapshot
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if decoded.Habits[0].Completions[0].Date != "2026-10-19" {
		t.Errorf("completion date = %q", decoded.Habits[0].Completions[0].Date)
	}
}

func TestParseFormatAndFileName(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}

	if got := FileName(FormatCSV, exportNow); got != "habits-export-2026-10-19.csv" {
		t.Errorf("FileName() = %q", got)
	}
}
