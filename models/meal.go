package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal is a confirmed meal record. Nutrient values are stored already
// scaled by the portion multiplier; Portion is retained for display and
// audit only and must never be re-applied.
type Meal struct {
	gorm.Model
	MealID     string    `gorm:"type:varchar(64);uniqueIndex;not null"` // public id
	UserID     uint      // FK → users.id
	Name       string    // food label from the analysis
	ImageURL   string    // captured photo location
	CapturedAt time.Time // when the photo was taken
	Calories   float64   // kcal
	Carbs      float64   // grams
	Protein    float64   // grams
	Fat        float64   // grams
	Sugar      float64   // grams
	Portion    float64   // 0.25 | 0.5 | 1.0
}
