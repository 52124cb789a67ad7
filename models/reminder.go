package models

import "gorm.io/gorm"

const (
	ReminderMeal       = "meal"
	ReminderMedication = "medication"
)

// Reminder covers both meal reminders (breakfast/lunch/dinner) and
// medication alerts. Time is a local wall-clock "HH:MM" string.
type Reminder struct {
	gorm.Model
	UserID uint   `gorm:"index;not null"`
	Kind   string `gorm:"type:varchar(16);not null"` // meal | medication
	Name   string `gorm:"not null"`                  // "breakfast", "Metformin", …
	Time   string `gorm:"type:varchar(5);not null"`  // "07:30"
	Active bool   `gorm:"default:true"`
}
