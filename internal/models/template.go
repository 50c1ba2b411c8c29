package models

import "strings"

// HabitTemplate is a built-in starter habit.
type HabitTemplate struct {
	Name        string
	Description string
	Category    string
	Icon        string
	Frequency   Frequency
}

var templates = []HabitTemplate{
	{Name: "Morning Meditation", Description: "10 minutes of mindfulness to start the day", Category: "Health", Icon: "🧘", Frequency: Daily()},
	{Name: "Read for 30 minutes", Description: "Read books to expand knowledge", Category: "Personal", Icon: "📚", Frequency: Daily()},
	{Name: "Exercise", Description: "30+ minutes of physical activity", Category: "Health", Icon: "💪", Frequency: Daily()},
	{Name: "Drink 8 glasses of water", Description: "Stay hydrated throughout the day", Category: "Health", Icon: "💧", Frequency: Daily()},
	{Name: "Write Journal", Description: "Reflect on the day and express gratitude", Category: "Personal", Icon: "📝", Frequency: Daily()},
	{Name: "Learn a new skill", Description: "Spend time learning something new", Category: "Productivity", Icon: "🎯", Frequency: Weekly()},
}

// Templates returns a copy of the built-in habit templates.
func Templates() []HabitTemplate {
	out := make([]HabitTemplate, len(templates))
	copy(out, templates)
	return out
}

// FindTemplate looks a template up by name, case-insensitively.
func FindTemplate(name string) (HabitTemplate, bool) {
	for _, t := range templates {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return HabitTemplate{}, false
}
