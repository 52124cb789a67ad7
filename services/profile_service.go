package services

import (
	"errors"

	"diabkit/config"
	"diabkit/models"
	"diabkit/utils"
)

// DTXPoint is one entry of the glucose trend series. Until device sync
// exists the dashboard serves the mock series below.
type DTXPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

var DTXMockSeries = []DTXPoint{
	{Date: "Jan", Value: 110},
	{Date: "Feb", Value: 125},
	{Date: "Mar", Value: 115},
	{Date: "Apr", Value: 130},
	{Date: "May", Value: 105},
}

func GetUserProfile(email string) (map[string]interface{}, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.New("user not found")
	}

	out := map[string]interface{}{
		"id":        user.UserID,
		"email":     user.Email,
		"full_name": user.FullName,
		"type":      user.Type,
		"gender":    user.Gender,
		"height_cm": user.HeightCm,
		"weight_kg": user.WeightKg,
		"waist_cm":  user.WaistCm,
		"last_dtx":  user.LastDTX,
		"onboarded": user.Onboarded,
		"is_guest":  false,
	}
	if bmi, err := utils.CalculateBMI(user.HeightCm, user.WeightKg); err == nil {
		out["bmi"] = bmi
		out["bmi_category"] = utils.BMICategory(bmi)
	}
	out["waist_risk"] = utils.WaistRisk(user.WaistCm, user.Gender)
	return out, nil
}

type ProfileUpdateInput struct {
	FullName string  `json:"full_name"`
	Gender   string  `json:"gender"`
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
	WaistCm  float64 `json:"waist_cm"`
	LastDTX  float64 `json:"last_dtx"`
}

func UpdateUserProfile(email string, in ProfileUpdateInput) error {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return errors.New("user not found")
	}

	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Gender != "" {
		user.Gender = in.Gender
	}
	if in.HeightCm > 0 {
		user.HeightCm = in.HeightCm
	}
	if in.WeightKg > 0 {
		user.WeightKg = in.WeightKg
	}
	if in.WaistCm > 0 {
		user.WaistCm = in.WaistCm
	}
	if in.LastDTX > 0 {
		user.LastDTX = in.LastDTX
	}

	if err := config.DB.Save(&user).Error; err != nil {
		return err
	}
	// keep the persisted session copy in step with the account
	return SaveSessionProfile(&user)
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, "email = ?", email).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}
