package services

import (
	"testing"

	"diabkit/models"
)

func TestMealLogEmptyAggregatesToZero(t *testing.T) {
	log := NewMealLog()
	for _, f := range []NutrientField{FieldCalories, FieldCarbs, FieldProtein, FieldFat, FieldSugar} {
		if got := log.Aggregate(f); got != 0 {
			t.Errorf("Aggregate(%d) on empty log = %v, want 0", f, got)
		}
	}
	if log.Len() != 0 {
		t.Errorf("Len() = %d, want 0", log.Len())
	}
}

func TestMealLogAggregateIsAdditive(t *testing.T) {
	log := NewMealLog()
	log.Append(models.Meal{Name: "Breakfast", Calories: 350, Carbs: 40, Protein: 15, Fat: 12, Sugar: 8})

	before := log.Aggregate(FieldCalories)
	log.Append(models.Meal{Name: "Lunch", Calories: 520, Carbs: 55, Protein: 30, Fat: 18, Sugar: 6})

	if got := log.Aggregate(FieldCalories); got != before+520 {
		t.Errorf("Aggregate(calories) = %v, want %v", got, before+520)
	}
	if got := log.Aggregate(FieldCarbs); got != 95 {
		t.Errorf("Aggregate(carbs) = %v, want 95", got)
	}
	if got := log.Aggregate(FieldSugar); got != 14 {
		t.Errorf("Aggregate(sugar) = %v, want 14", got)
	}
}

func TestMealLogPreservesInsertionOrder(t *testing.T) {
	log := NewMealLog()
	names := []string{"Oatmeal", "Grilled Chicken", "Salad"}
	for _, n := range names {
		log.Append(models.Meal{Name: n})
	}

	all := log.All()
	if len(all) != len(names) {
		t.Fatalf("All() returned %d records, want %d", len(all), len(names))
	}
	for i, n := range names {
		if all[i].Name != n {
			t.Errorf("All()[%d].Name = %q, want %q", i, all[i].Name, n)
		}
	}

	// the returned slice is a copy; mutating it must not corrupt the log
	all[0].Name = "mutated"
	if log.All()[0].Name != "Oatmeal" {
		t.Error("All() exposed internal storage")
	}
}
