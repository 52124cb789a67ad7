package services

import (
	"sync"

	"diabkit/models"
)

// Nutrient field selectors for MealLog.Aggregate.
type NutrientField int

const (
	FieldCalories NutrientField = iota
	FieldCarbs
	FieldProtein
	FieldFat
	FieldSugar
)

// MealLog is the active session's meal record store: append-only,
// insertion-ordered, queryable for per-nutrient totals. It backs the
// dashboard's "today" numbers; long-term history lives in the database.
type MealLog struct {
	mu      sync.RWMutex
	records []models.Meal
}

func NewMealLog() *MealLog {
	return &MealLog{}
}

func (l *MealLog) Append(record models.Meal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
}

// All returns the records in confirmation order.
func (l *MealLog) All() []models.Meal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Meal, len(l.records))
	copy(out, l.records)
	return out
}

func (l *MealLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Aggregate sums one nutrient field across all records; an empty log
// totals to zero.
func (l *MealLog) Aggregate(field NutrientField) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var sum float64
	for _, r := range l.records {
		switch field {
		case FieldCalories:
			sum += r.Calories
		case FieldCarbs:
			sum += r.Carbs
		case FieldProtein:
			sum += r.Protein
		case FieldFat:
			sum += r.Fat
		case FieldSugar:
			sum += r.Sugar
		}
	}
	return sum
}
