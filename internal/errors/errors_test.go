package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("habit not found"), expected: "Error: habit not found"},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("failed to save habits: %w", errors.New("disk full")),
			expected: "Error: failed to save habits: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	if got := Formatf("invalid window %q", "decade"); got != `Error: invalid window "decade"` {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestNotFound(t *testing.T) {
	if got := NotFound("habit", "Exercise"); got != `habit "Exercise" not found` {
		t.Errorf("NotFound() = %q", got)
	}
}
