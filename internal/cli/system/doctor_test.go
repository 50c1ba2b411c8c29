package system

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tracker"
)

func TestDoctorCmd_HealthyStore(t *testing.T) {
	ctx, out := startedContext(t, filepath.Join(t.TempDir(), "habitual.db"))

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("DoctorCmd.Run() error = %v\n%s", err, out.String())
	}
	for _, want := range []string{
		"✓ Database reachable: OK",
		"✓ Schema version: OK",
		"✓ Migrations complete: OK",
		"⚠ Backups present: WARNING",
		"✓ Data integrity: OK",
		"✓ Clock/timezone: OK",
		"All diagnostics passed!",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDoctorCmd_MissingStore(t *testing.T) {
	ctx, out := newContext(t, filepath.Join(t.TempDir(), "habitual.db"))

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to fail on a missing store")
	}
	if !strings.Contains(out.String(), "❌ Database reachable: FAIL") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "⊘ Data integrity: SKIPPED") {
		t.Errorf("integrity check should be skipped:\n%s", out.String())
	}
}

func TestDoctorCmd_Integrity(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(h *models.Habit)
		want    string
		wantErr bool
	}{
		{
			name:    "stale cache warns",
			corrupt: func(h *models.Habit) { h.CompletedDays = 9 },
			want:    "⚠ Data integrity: WARNING",
		},
		{
			name: "duplicate record fails",
			corrupt: func(h *models.Habit) {
				h.Completions = append(h.Completions, h.Completions[0])
			},
			want:    "❌ Data integrity: FAIL",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := startedContext(t, filepath.Join(t.TempDir(), "habits.json"))
			h, err := ctx.Tracker.AddHabit(tracker.HabitInput{Name: "Read"})
			if err != nil {
				t.Fatal(err)
			}
			if _, _, err := ctx.Tracker.ToggleToday(h.ID); err != nil {
				t.Fatal(err)
			}

			habits, _ := ctx.Repo.Habits()
			tt.corrupt(&habits[0])
			if err := ctx.Repo.SaveHabits(habits); err != nil {
				t.Fatal(err)
			}

			err = (&DoctorCmd{}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("DoctorCmd.Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out.String())
			}
		})
	}
}
