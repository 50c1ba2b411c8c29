package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestTodayIn(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	instant := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	if got := TodayIn(instant, time.UTC); got != "2026-03-01" {
		t.Errorf("TodayIn(UTC) = %s, want 2026-03-01", got)
	}
	if got := TodayIn(instant, tokyo); got != "2026-03-02" {
		t.Errorf("TodayIn(JST) = %s, want 2026-03-02", got)
	}
}

func TestWeekAndMonthBoundaries(t *testing.T) {
	// 2026-10-15 is a Thursday.
	d := MustDate("2026-10-15")

	if got := FormatDate(StartOfWeek(d)); got != "2026-10-11" {
		t.Errorf("StartOfWeek() = %s, want 2026-10-11", got)
	}
	if got := FormatDate(EndOfWeek(d)); got != "2026-10-17" {
		t.Errorf("EndOfWeek() = %s, want 2026-10-17", got)
	}
	if got := FormatDate(StartOfMonth(d)); got != "2026-10-01" {
		t.Errorf("StartOfMonth() = %s, want 2026-10-01", got)
	}
	if got := FormatDate(EndOfMonth(MustDate("2028-02-10"))); got != "2028-02-29" {
		t.Errorf("EndOfMonth() = %s, want 2028-02-29", got)
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2026-03-31", 1)
	if err != nil {
		t.Fatalf("AddDays() error = %v", err)
	}
	if got != "2026-04-01" {
		t.Errorf("AddDays() = %s, want 2026-04-01", got)
	}
	if _, err := AddDays("31/03/2026", 1); err == nil {
		t.Error("AddDays() expected error for malformed date")
	}
}

func TestDaysBetween(t *testing.T) {
	// Spans the US DST change on 2026-03-08.
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	a := time.Date(2026, 3, 7, 23, 0, 0, 0, ny)
	b := time.Date(2026, 3, 9, 1, 0, 0, 0, ny)
	if got := DaysBetween(a, b); got != 2 {
		t.Errorf("DaysBetween() = %d, want 2", got)
	}
}

func TestValidateFormats(t *testing.T) {
	if !ValidateDateFormat("2026-02-28") || ValidateDateFormat("2026-02-30") {
		t.Error("ValidateDateFormat() gave unexpected result")
	}
	if !ValidateTimeFormat("07:30") || ValidateTimeFormat("25:00") {
		t.Error("ValidateTimeFormat() gave unexpected result")
	}
}
