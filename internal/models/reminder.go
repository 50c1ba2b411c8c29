package models

// Reminder is a stored reminder time for a habit. Nothing is scheduled from
// it; it is listed and toggled only.
type Reminder struct {
	ID        string `json:"id" validate:"required"`
	HabitID   string `json:"habitId" validate:"required"`
	HabitName string `json:"habitName,omitempty"`
	Time      string `json:"time" validate:"required,clock"` // HH:MM format
	Enabled   bool   `json:"enabled"`
}
