package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"diabkit/config"
	"diabkit/models"
	"diabkit/utils"

	"github.com/google/uuid"
)

var ErrInvalidNutrients = errors.New("nutrient values must be non-negative")

type MealService struct {
	analyzer NutritionAnalyzer

	mu          sync.Mutex
	sessionLogs map[uint]*MealLog
}

func NewMealService(analyzer NutritionAnalyzer) *MealService {
	return &MealService{
		analyzer:    analyzer,
		sessionLogs: make(map[uint]*MealLog),
	}
}

// SessionLog returns the user's active-session record store, creating it
// on first use. Session logs start empty after a restart; persisted
// history is served from the database.
func (s *MealService) SessionLog(userID uint) *MealLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	log, ok := s.sessionLogs[userID]
	if !ok {
		log = NewMealLog()
		s.sessionLogs[userID] = log
	}
	return log
}

// AnalyzeImage runs one capture cycle where the uploading device acts as
// the camera. The returned candidate is pending: nothing is stored until
// the user confirms it.
func (s *MealService) AnalyzeImage(ctx context.Context, jpegBytes []byte, portion float64) (*MealCandidate, error) {
	if !ValidPortion(portion) {
		return nil, ErrInvalidPortion
	}

	session := NewCaptureSession(NewStillCamera(jpegBytes), s.analyzer)
	defer session.Cancel()

	if err := session.Start(ctx); err != nil {
		return nil, err
	}
	if err := session.SetPortion(portion); err != nil {
		return nil, err
	}
	if err := session.TriggerCapture(ctx); err != nil {
		return nil, err
	}

	select {
	case ev := <-session.Events():
		if ev.Err != nil {
			return nil, ev.Err
		}
		return ev.Candidate, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrAnalysisTimeout, ctx.Err())
	}
}

type ConfirmMealInput struct {
	Name       string
	Image      []byte // encoded JPEG from the capture
	CapturedAt time.Time
	Calories   float64
	Carbs      float64
	Protein    float64
	Fat        float64
	Sugar      float64
	Portion    float64
}

// ConfirmMeal persists a pending candidate as an immutable meal record
// and appends it to the session log. Values arrive already scaled; the
// portion is stored for display only.
func (s *MealService) ConfirmMeal(userID uint, in ConfirmMealInput) (*models.Meal, error) {
	if !ValidPortion(in.Portion) {
		return nil, ErrInvalidPortion
	}
	if in.Calories < 0 || in.Carbs < 0 || in.Protein < 0 || in.Fat < 0 || in.Sugar < 0 {
		return nil, ErrInvalidNutrients
	}
	name := in.Name
	if name == "" {
		name = "Meal"
	}
	capturedAt := in.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}

	imageURL := ""
	if len(in.Image) > 0 {
		url, err := utils.UploadJPEG(in.Image, "meal-photos")
		if err != nil {
			return nil, fmt.Errorf("store meal photo: %w", err)
		}
		imageURL = url
	}

	meal := &models.Meal{
		MealID:     uuid.NewString(),
		UserID:     userID,
		Name:       name,
		ImageURL:   imageURL,
		CapturedAt: capturedAt,
		Calories:   in.Calories,
		Carbs:      in.Carbs,
		Protein:    in.Protein,
		Fat:        in.Fat,
		Sugar:      in.Sugar,
		Portion:    in.Portion,
	}
	if err := config.DB.Create(meal).Error; err != nil {
		return nil, err
	}

	s.SessionLog(userID).Append(*meal)
	EmitAlert(userID, "meal.saved", fmt.Sprintf("%s logged (%.0f kcal)", meal.Name, meal.Calories))
	return meal, nil
}

// ListMeals returns the user's history, newest first.
func (s *MealService) ListMeals(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := config.DB.
		Where("user_id = ?", userID).
		Order("captured_at DESC").
		Find(&meals).Error
	return meals, err
}

type DailySummary struct {
	Date     time.Time `json:"date"`
	Meals    int       `json:"meals"`
	Calories float64   `json:"calories"`
	Carbs    float64   `json:"carbs"`
	Protein  float64   `json:"protein"`
	Fat      float64   `json:"fat"`
	Sugar    float64   `json:"sugar"`
}

// TodaySummary aggregates the persisted records captured today.
func (s *MealService) TodaySummary(userID uint) (*DailySummary, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24 * time.Hour)

	var meals []models.Meal
	if err := config.DB.
		Where("user_id = ? AND captured_at >= ? AND captured_at < ?", userID, start, end).
		Order("captured_at ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}

	sum := &DailySummary{Date: start, Meals: len(meals)}
	for _, m := range meals {
		sum.Calories += m.Calories
		sum.Carbs += m.Carbs
		sum.Protein += m.Protein
		sum.Fat += m.Fat
		sum.Sugar += m.Sugar
	}
	return sum, nil
}
