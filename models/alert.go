package models

import "time"

type Alert struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Type      string `gorm:"type:varchar(32)"` // reminder.meal, reminder.medication, meal.saved, …
	Message   string
	Read      bool `gorm:"default:false"`
	CreatedAt time.Time
}
