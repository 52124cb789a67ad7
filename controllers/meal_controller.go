package controllers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"diabkit/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Meals *services.MealService
}

func NewMealController(meals *services.MealService) *MealController {
	return &MealController{Meals: meals}
}

type AnalyzeMealRequest struct {
	ImageBase64 string  `json:"image_base64" binding:"required"`
	Portion     float64 `json:"portion"`
}

type mealCandidateResponse struct {
	Name       string    `json:"name"`
	CapturedAt time.Time `json:"captured_at"`
	Calories   float64   `json:"calories"`
	Carbs      float64   `json:"carbs"`
	Protein    float64   `json:"protein"`
	Fat        float64   `json:"fat"`
	Sugar      float64   `json:"sugar"`
	Portion    float64   `json:"portion"`
	Warnings   []string  `json:"warnings"`
}

// AnalyzeMeal runs one capture-and-analyze cycle for an uploaded photo
// and returns the pending candidate. Nothing is saved yet.
func (mc *MealController) AnalyzeMeal(c *gin.Context) {
	var req AnalyzeMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if req.Portion == 0 {
		req.Portion = 1.0
	}

	imageBytes, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 is not valid base64"})
		return
	}

	candidate, err := mc.Meals.AnalyzeImage(c.Request.Context(), imageBytes, req.Portion)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPortion):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrCameraUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read the captured image"})
		default:
			// RequestFailed, MalformedResponse and Timeout all collapse to
			// one user-facing retry signal; details stay server-side
			c.JSON(http.StatusBadGateway, gin.H{"error": "analysis failed, try again"})
		}
		return
	}

	c.JSON(http.StatusOK, mealCandidateResponse{
		Name:       candidate.Name,
		CapturedAt: candidate.CapturedAt,
		Calories:   candidate.Calories,
		Carbs:      candidate.Carbs,
		Protein:    candidate.Protein,
		Fat:        candidate.Fat,
		Sugar:      candidate.Sugar,
		Portion:    candidate.Portion,
		Warnings:   candidate.Warnings,
	})
}

type ConfirmMealRequest struct {
	Name        string    `json:"name"`
	ImageBase64 string    `json:"image_base64"`
	CapturedAt  time.Time `json:"captured_at"`
	Calories    float64   `json:"calories"`
	Carbs       float64   `json:"carbs"`
	Protein     float64   `json:"protein"`
	Fat         float64   `json:"fat"`
	Sugar       float64   `json:"sugar"`
	Portion     float64   `json:"portion" binding:"required"`
}

// ConfirmMeal saves a candidate the user accepted. The record is
// immutable afterwards.
func (mc *MealController) ConfirmMeal(c *gin.Context) {
	var req ConfirmMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var imageBytes []byte
	if req.ImageBase64 != "" {
		b, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 is not valid base64"})
			return
		}
		imageBytes = b
	}

	meal, err := mc.Meals.ConfirmMeal(c.GetUint("userID"), services.ConfirmMealInput{
		Name:       req.Name,
		Image:      imageBytes,
		CapturedAt: req.CapturedAt,
		Calories:   req.Calories,
		Carbs:      req.Carbs,
		Protein:    req.Protein,
		Fat:        req.Fat,
		Sugar:      req.Sugar,
		Portion:    req.Portion,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidPortion) || errors.Is(err, services.ErrInvalidNutrients) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (mc *MealController) ListMeals(c *gin.Context) {
	meals, err := mc.Meals.ListMeals(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (mc *MealController) TodaySummary(c *gin.Context) {
	summary, err := mc.Meals.TodaySummary(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// SessionMeals lists what was confirmed since this process started,
// with running totals straight from the session log.
func (mc *MealController) SessionMeals(c *gin.Context) {
	log := mc.Meals.SessionLog(c.GetUint("userID"))
	c.JSON(http.StatusOK, gin.H{
		"meals": log.All(),
		"totals": gin.H{
			"calories": log.Aggregate(services.FieldCalories),
			"carbs":    log.Aggregate(services.FieldCarbs),
			"protein":  log.Aggregate(services.FieldProtein),
			"fat":      log.Aggregate(services.FieldFat),
			"sugar":    log.Aggregate(services.FieldSugar),
		},
	})
}
