package utils

import "errors"

var ErrImplausibleBody = errors.New("height/weight out of plausible range")

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, ErrImplausibleBody
	}

	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	default:
		return "Obese"
	}
}

// WaistRisk flags abdominal-obesity risk from waist circumference (cm),
// a stronger type-2 predictor than BMI alone. Thresholds follow the
// common IDF cutoffs.
func WaistRisk(waistCm float64, gender string) bool {
	if waistCm <= 0 {
		return false
	}
	if gender == "Female" {
		return waistCm >= 80
	}
	return waistCm >= 94
}
