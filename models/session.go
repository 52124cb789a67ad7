package models

import "time"

// SessionProfile is the single active-session record. It is written on
// non-guest login or registration, cleared on logout, and read once at
// startup to restore the session. Absence means "no active session".
// Guest profiles are never written here.
type SessionProfile struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"type:varchar(64);not null"`
	FullName  string
	Email     string
	Type      string
	Gender    string
	HeightCm  float64
	WeightKg  float64
	WaistCm   float64
	LastDTX   float64
	UpdatedAt time.Time
}
