package models

import "time"

// UserDevice maps a user's phone to an SNS platform endpoint so reminder
// alerts can be delivered as push notifications. The raw push token is
// never stored, only its hash.
type UserDevice struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	Platform    string `gorm:"type:varchar(16)"` // android | ios
	TokenHash   string `gorm:"type:varchar(64);uniqueIndex"`
	EndpointARN string
	UpdatedAt   time.Time
}
