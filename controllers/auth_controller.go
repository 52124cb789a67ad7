package controllers

import (
	"errors"
	"net/http"

	"diabkit/services"
	"diabkit/utils"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	FullName string  `json:"full_name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Type     string  `json:"type" binding:"required"`
	Gender   string  `json:"gender"`
	HeightCm float64 `json:"height_cm" binding:"required"`
	WeightKg float64 `json:"weight_kg" binding:"required"`
	WaistCm  float64 `json:"waist_cm"`
	LastDTX  float64 `json:"last_dtx"`
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.RegisterUser(services.RegisterInput{
		FullName: input.FullName,
		Email:    input.Email,
		Password: input.Password,
		Type:     input.Type,
		Gender:   input.Gender,
		HeightCm: input.HeightCm,
		WeightKg: input.WeightKg,
		WaistCm:  input.WaistCm,
		LastDTX:  input.LastDTX,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidUserType) || errors.Is(err, services.ErrInvalidBiometrics) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := services.SeedReminders(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := utils.GenerateJWT(user.Email, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user_id": user.UserID})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := services.AuthenticateUser(input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": user.UserID})
}

// GuestLogin issues a token-only session. Nothing is persisted for
// guests, so logout for them is purely client-side.
func GuestLogin(c *gin.Context) {
	token, err := services.GuestLogin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "profile": services.GuestProfile()})
}

func Logout(c *gin.Context) {
	if !c.GetBool("guest") {
		if err := services.Logout(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Session reports the restored session profile, or null when no
// non-guest login has been persisted.
func Session(c *gin.Context) {
	sp, err := services.RestoreSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sp})
}

func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := services.ForgotPassword(input.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reset code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset code was sent"})
}

func ResetPassword(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Code     string `json:"code" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := services.ResetPassword(input.Email, input.Code, input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid reset code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
