package utils

import (
	"fmt"
	"strings"
)

// Rule-of-thumb screening for a diabetic eater, applied to the scaled
// (per-portion-as-eaten) values of an analyzed meal. ADA guidance puts
// added sugars under 10% of daily calories and favors 45-60g carbs per
// meal; the checks below flag the obvious outliers, nothing more.

const (
	mealCarbCautionG  = 60  // grams of carbs in one meal
	mealSugarCautionG = 25  // grams of sugar in one meal
	mealKcalCautionG  = 800 // kcal in one meal
)

func AssessMealForDiabetic(foodName string, calories, carbs, sugar float64) []string {
	var warnings []string

	if sugar >= mealSugarCautionG {
		warnings = append(warnings,
			fmt.Sprintf("High sugar (%.0fg): expect a sharp glucose rise; consider a smaller portion.", sugar))
	} else if calories > 0 && (sugar*4)/calories >= 0.10 {
		warnings = append(warnings,
			fmt.Sprintf("Sugar makes up over 10%% of this meal's calories (%.0fg).", sugar))
	}

	if carbs >= mealCarbCautionG {
		warnings = append(warnings,
			fmt.Sprintf("Carbohydrates (%.0fg) exceed the 45-60g per-meal range.", carbs))
	}

	if calories >= mealKcalCautionG {
		warnings = append(warnings,
			fmt.Sprintf("Large meal (%.0f kcal): splitting it can smooth out glucose response.", calories))
	}

	if looksSugary(strings.ToLower(foodName)) && sugar < mealSugarCautionG {
		warnings = append(warnings,
			"Desserts and sweet drinks often carry more sugar than estimated; check the label if available.")
	}

	return warnings
}

func looksSugary(name string) bool {
	for _, s := range []string{"cake", "dessert", "ice cream", "soda", "juice", "candy", "donut", "pastry", "milkshake", "bubble tea"} {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}
