package models

import (
	"gorm.io/gorm"
)

// Role tags for an account. AtRisk users get the same features as
// patients; the tag only drives presentation and coaching copy.
const (
	UserTypePatient   = "Patient"
	UserTypeCaregiver = "Caregiver"
	UserTypeAtRisk    = "AtRisk"
)

type User struct {
	gorm.Model
	UserID    string `gorm:"type:varchar(64);uniqueIndex;not null"` // public id
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	FullName  string
	Type      string `gorm:"type:varchar(16);default:'Patient'"`
	Gender    string
	HeightCm  float64
	WeightKg  float64
	WaistCm   float64
	LastDTX   float64 // most recent blood glucose reading, mg/dL
	Onboarded bool
	ResetCode string // pending password-reset code, empty when none
}

func ValidUserType(t string) bool {
	switch t {
	case UserTypePatient, UserTypeCaregiver, UserTypeAtRisk:
		return true
	}
	return false
}
