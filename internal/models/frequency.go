package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type FrequencyKind string

const (
	FrequencyDaily   FrequencyKind = "daily"
	FrequencyWeekly  FrequencyKind = "weekly"
	FrequencyMonthly FrequencyKind = "monthly"
	FrequencyCustom  FrequencyKind = "custom"
)

// Frequency describes how often a habit is meant to be performed. CustomDays
// is only meaningful when Kind is FrequencyCustom.
type Frequency struct {
	Kind       FrequencyKind
	CustomDays []time.Weekday
}

func Daily() Frequency   { return Frequency{Kind: FrequencyDaily} }
func Weekly() Frequency  { return Frequency{Kind: FrequencyWeekly} }
func Monthly() Frequency { return Frequency{Kind: FrequencyMonthly} }

// Custom builds a custom frequency over the given weekdays, deduplicated and
// sorted Sunday first.
func Custom(days ...time.Weekday) Frequency {
	seen := make(map[time.Weekday]bool, len(days))
	var out []time.Weekday
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return Frequency{Kind: FrequencyCustom, CustomDays: out}
}

// ParseFrequencyKind parses a frequency name case-insensitively.
func ParseFrequencyKind(s string) (FrequencyKind, error) {
	switch FrequencyKind(strings.ToLower(strings.TrimSpace(s))) {
	case FrequencyDaily, "":
		return FrequencyDaily, nil
	case FrequencyWeekly:
		return FrequencyWeekly, nil
	case FrequencyMonthly:
		return FrequencyMonthly, nil
	case FrequencyCustom:
		return FrequencyCustom, nil
	default:
		return "", fmt.Errorf("invalid frequency: %s (must be daily, weekly, monthly, or custom)", s)
	}
}

func (f Frequency) IsDaily() bool {
	return f.Kind == FrequencyDaily || f.Kind == ""
}

func (f Frequency) String() string {
	switch f.Kind {
	case FrequencyCustom:
		if len(f.CustomDays) == 0 {
			return "custom"
		}
		days := make([]string, len(f.CustomDays))
		for i, wd := range f.CustomDays {
			days[i] = wd.String()[:3]
		}
		return "custom (" + strings.Join(days, ",") + ")"
	case "":
		return string(FrequencyDaily)
	default:
		return string(f.Kind)
	}
}

type frequencyJSON struct {
	Kind       FrequencyKind `json:"kind" yaml:"kind"`
	CustomDays []string      `json:"customDays,omitempty" yaml:"customDays,omitempty"`
}

func (f Frequency) tagged() frequencyJSON {
	out := frequencyJSON{Kind: f.Kind}
	if out.Kind == "" {
		out.Kind = FrequencyDaily
	}
	if f.Kind == FrequencyCustom {
		for _, wd := range f.CustomDays {
			out.CustomDays = append(out.CustomDays, strings.ToLower(wd.String()))
		}
	}
	return out
}

func (f Frequency) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.tagged())
}

// MarshalYAML encodes the same tagged shape as MarshalJSON.
func (f Frequency) MarshalYAML() (any, error) {
	return f.tagged(), nil
}

// UnmarshalJSON accepts both the tagged object form and a bare frequency
// string in any case ("Daily", "weekly").
func (f *Frequency) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		kind, err := ParseFrequencyKind(name)
		if err != nil {
			return err
		}
		*f = Frequency{Kind: kind}
		return nil
	}

	var raw frequencyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid frequency: %w", err)
	}
	return f.fromTagged(raw)
}

func (f *Frequency) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		kind, err := ParseFrequencyKind(node.Value)
		if err != nil {
			return err
		}
		*f = Frequency{Kind: kind}
		return nil
	}
	var raw frequencyJSON
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("invalid frequency: %w", err)
	}
	return f.fromTagged(raw)
}

func (f *Frequency) fromTagged(raw frequencyJSON) error {
	kind, err := ParseFrequencyKind(string(raw.Kind))
	if err != nil {
		return err
	}
	if kind != FrequencyCustom {
		*f = Frequency{Kind: kind}
		return nil
	}
	days := make([]time.Weekday, 0, len(raw.CustomDays))
	for _, name := range raw.CustomDays {
		wd, ok := ParseWeekday(name)
		if !ok {
			return fmt.Errorf("invalid weekday: %s", name)
		}
		days = append(days, wd)
	}
	*f = Custom(days...)
	return nil
}

var weekdayNames = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekday parses a full or three-letter weekday name case-insensitively.
func ParseWeekday(s string) (time.Weekday, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	return wd, ok
}
