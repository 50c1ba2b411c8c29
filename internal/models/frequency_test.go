package models

import (
	"encoding/json"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestFrequency_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Frequency
		wantErr bool
	}{
		{
			name:  "tagged daily",
			input: `{"kind":"daily"}`,
			want:  Daily(),
		},
		{
			name:  "bare capitalised string",
			input: `"Daily"`,
			want:  Daily(),
		},
		{
			name:  "bare upper-case weekly",
			input: `"WEEKLY"`,
			want:  Weekly(),
		},
		{
			name:  "custom with short and long names",
			input: `{"kind":"custom","customDays":["fri","Monday","friday"]}`,
			want:  Custom(time.Monday, time.Friday),
		},
		{
			name:  "custom days ignored for monthly",
			input: `{"kind":"monthly","customDays":["monday"]}`,
			want:  Monthly(),
		},
		{
			name:    "unknown kind",
			input:   `"hourly"`,
			wantErr: true,
		},
		{
			name:    "unknown weekday",
			input:   `{"kind":"custom","customDays":["someday"]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Frequency
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Kind != tt.want.Kind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.want.Kind)
			}
			if len(got.CustomDays) != len(tt.want.CustomDays) {
				t.Fatalf("CustomDays = %v, want %v", got.CustomDays, tt.want.CustomDays)
			}
			for i := range got.CustomDays {
				if got.CustomDays[i] != tt.want.CustomDays[i] {
					t.Errorf("CustomDays[%d] = %v, want %v", i, got.CustomDays[i], tt.want.CustomDays[i])
				}
			}
		})
	}
}

func TestFrequency_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Custom(time.Wednesday, time.Monday))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"kind":"custom","customDays":["monday","wednesday"]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	data, err = json.Marshal(Frequency{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"kind":"daily"}` {
		t.Errorf("zero frequency marshalled as %s, want daily", data)
	}
}

func TestFrequency_YAML(t *testing.T) {
	data, err := yaml.Marshal(Custom(time.Friday, time.Monday))
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	var got Frequency
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("yaml.Unmarshal(%q) error = %v", data, err)
	}
	if got.Kind != FrequencyCustom || len(got.CustomDays) != 2 || got.CustomDays[0] != time.Monday {
		t.Errorf("decoded %+v from %q", got, data)
	}

	if err := yaml.Unmarshal([]byte("Weekly"), &got); err != nil {
		t.Fatalf("yaml.Unmarshal(scalar) error = %v", err)
	}
	if got.Kind != FrequencyWeekly {
		t.Errorf("Kind = %q, want weekly", got.Kind)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, whole, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{10, 10, 100},
	}
	for _, tt := range tests {
		if got := Percent(tt.part, tt.whole); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.part, tt.whole, got, tt.want)
		}
	}
}

func TestFindTemplate(t *testing.T) {
	tmpl, ok := FindTemplate("exercise")
	if !ok {
		t.Fatal("expected Exercise template to be found")
	}
	if tmpl.Category != "Health" || !tmpl.Frequency.IsDaily() {
		t.Errorf("unexpected template: %+v", tmpl)
	}
	if _, ok := FindTemplate("juggling"); ok {
		t.Error("unexpected template match for juggling")
	}
}

func TestHabit_CategoryLabel(t *testing.T) {
	if got := (Habit{}).CategoryLabel(); got != "Uncategorized" {
		t.Errorf("CategoryLabel() = %q, want Uncategorized", got)
	}
	if got := (Habit{Category: "Health"}).CategoryLabel(); got != "Health" {
		t.Errorf("CategoryLabel() = %q, want Health", got)
	}
}
