package forms

import (
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

func TestHabitForm_Input(t *testing.T) {
	tests := []struct {
		name    string
		form    HabitForm
		want    models.Frequency
		wantErr bool
	}{
		{"daily", HabitForm{Name: "Read", Frequency: models.FrequencyDaily}, models.Daily(), false},
		{"days ignored unless custom", HabitForm{Name: "Read", Frequency: models.FrequencyWeekly, Days: "mon"}, models.Weekly(), false},
		{"custom", HabitForm{Name: "Gym", Frequency: models.FrequencyCustom, Days: "fri,mon"}, models.Custom(time.Monday, time.Friday), false},
		{"custom without days", HabitForm{Name: "Gym", Frequency: models.FrequencyCustom}, models.Frequency{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := tt.form.Input()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Input() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if in.Frequency.String() != tt.want.String() {
				t.Errorf("frequency = %s, want %s", in.Frequency, tt.want)
			}
			if in.Name != tt.form.Name {
				t.Errorf("name = %q, want %q", in.Name, tt.form.Name)
			}
		})
	}
}

func TestGoalForm_Input(t *testing.T) {
	fm := GoalForm{Title: "Run", HabitID: "h1", Target: " 5 ", Period: models.PeriodMonth}
	in, err := fm.Input()
	if err != nil {
		t.Fatalf("Input() error = %v", err)
	}
	if in.TargetDays != 5 || in.HabitID != "h1" || in.Period != models.PeriodMonth {
		t.Errorf("unexpected input: %+v", in)
	}

	fm.Target = "five"
	if _, err := fm.Input(); err == nil {
		t.Error("expected error for non-numeric target")
	}
}

func TestNewForms(t *testing.T) {
	hf := &HabitForm{}
	if NewHabitForm(hf) == nil {
		t.Fatal("NewHabitForm returned nil")
	}
	if hf.Frequency != models.FrequencyDaily {
		t.Errorf("frequency default = %q, want daily", hf.Frequency)
	}

	gf := &GoalForm{}
	if NewGoalForm(gf, []models.Habit{{ID: "h1", Name: "Read"}}) == nil {
		t.Fatal("NewGoalForm returned nil")
	}
	if gf.Period != models.PeriodWeek {
		t.Errorf("period default = %q, want week", gf.Period)
	}
}
