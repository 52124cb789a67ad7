package services

import (
	"errors"
	"fmt"

	"diabkit/config"
	"diabkit/models"
	"diabkit/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidBiometrics  = errors.New("height and weight must be positive")
	ErrInvalidUserType    = errors.New("unknown user type")
	ErrInvalidResetCode   = errors.New("invalid reset code")
)

type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Type     string
	Gender   string
	HeightCm float64
	WeightKg float64
	WaistCm  float64
	LastDTX  float64
}

func RegisterUser(in RegisterInput) (*models.User, error) {
	if !models.ValidUserType(in.Type) {
		return nil, ErrInvalidUserType
	}
	if in.HeightCm <= 0 || in.WeightKg <= 0 {
		return nil, ErrInvalidBiometrics
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UserID:    uuid.NewString(),
		Email:     in.Email,
		Password:  hashed,
		FullName:  in.FullName,
		Type:      in.Type,
		Gender:    in.Gender,
		HeightCm:  in.HeightCm,
		WeightKg:  in.WeightKg,
		WaistCm:   in.WaistCm,
		LastDTX:   in.LastDTX,
		Onboarded: true,
	}
	if err := config.DB.Create(user).Error; err != nil {
		return nil, err
	}

	if err := SaveSessionProfile(user); err != nil {
		return nil, err
	}
	return user, nil
}

func AuthenticateUser(email, password string) (string, *models.User, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.Email, false)
	if err != nil {
		return "", nil, err
	}
	if err := SaveSessionProfile(&user); err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// GuestProfile is the in-memory profile for a guest session. Guests are
// never written to the users table or the session store.
func GuestProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":        "guest",
		"full_name": "Guest User",
		"type":      models.UserTypePatient,
		"gender":    "Male",
		"height_cm": 170.0,
		"weight_kg": 70.0,
		"waist_cm":  85.0,
		"last_dtx":  100.0,
		"is_guest":  true,
	}
}

func GuestLogin() (string, error) {
	return utils.GenerateJWT("", true)
}

// SaveSessionProfile writes the single active-session record,
// replacing whatever was there.
func SaveSessionProfile(user *models.User) error {
	if err := config.DB.Where("1 = 1").Delete(&models.SessionProfile{}).Error; err != nil {
		return err
	}
	return config.DB.Create(&models.SessionProfile{
		UserID:   user.UserID,
		FullName: user.FullName,
		Email:    user.Email,
		Type:     user.Type,
		Gender:   user.Gender,
		HeightCm: user.HeightCm,
		WeightKg: user.WeightKg,
		WaistCm:  user.WaistCm,
		LastDTX:  user.LastDTX,
	}).Error
}

// RestoreSession reads the persisted session at startup. nil means no
// active session.
func RestoreSession() (*models.SessionProfile, error) {
	var sp models.SessionProfile
	err := config.DB.Order("updated_at DESC").First(&sp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

// Logout erases the persisted session copy. The account itself stays.
func Logout() error {
	return config.DB.Where("1 = 1").Delete(&models.SessionProfile{}).Error
}

func ForgotPassword(email string) error {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		// do not reveal whether the account exists
		return nil
	}
	user.ResetCode = utils.GenerateResetCode()
	if err := config.DB.Save(&user).Error; err != nil {
		return err
	}
	return utils.SendResetCodeEmail(user.Email, user.ResetCode)
}

func ResetPassword(email, code, newPassword string) error {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return ErrInvalidResetCode
	}
	if user.ResetCode == "" || user.ResetCode != code {
		return ErrInvalidResetCode
	}
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = hashed
	user.ResetCode = ""
	return config.DB.Save(&user).Error
}
