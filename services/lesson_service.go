package services

import (
	"errors"
	"sync"

	"diabkit/models"

	"github.com/google/uuid"
)

var (
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrAttemptNotFound = errors.New("quiz attempt not found")
)

// Lessons is the built-in learning-center catalog.
var Lessons = []models.Lesson{
	{
		ID:          "1",
		Title:       "Understanding Type 2 Diabetes",
		Level:       "Easy",
		VideoURL:    "https://www.youtube.com/embed/wZAjVQWbMlE",
		Description: "A basic introduction to how insulin and glucose work in your body.",
		Quiz: []models.QuizQuestion{
			{
				Question:     "What is the primary role of insulin?",
				Options:      []string{"To store fat", "To help glucose enter cells", "To increase blood pressure"},
				CorrectIndex: 1,
				Explanation:  "Insulin acts like a key that lets sugar (glucose) from the blood into your cells to be used for energy.",
			},
			{
				Question:     "Which organ produces insulin?",
				Options:      []string{"Liver", "Pancreas", "Kidneys"},
				CorrectIndex: 1,
				Explanation:  "The pancreas is responsible for producing insulin in the human body.",
			},
		},
	},
	{
		ID:          "2",
		Title:       "The Plate Method",
		Level:       "Medium",
		VideoURL:    "https://www.youtube.com/embed/G6jW0X7-T7U",
		Description: "Learn how to balance your plate with protein, fiber, and carbs.",
		Quiz: []models.QuizQuestion{
			{
				Question:     "What portion of your plate should be non-starchy vegetables?",
				Options:      []string{"1/4", "1/2", "3/4"},
				CorrectIndex: 1,
				Explanation:  "Non-starchy vegetables should fill half of your plate to provide essential fiber and nutrients.",
			},
		},
	},
}

// LessonService serves the catalog and hosts in-flight quiz attempts.
// Attempts are in-memory; abandoning one simply leaks nothing past the
// process lifetime.
type LessonService struct {
	mu       sync.Mutex
	attempts map[string]*quizAttempt
}

type quizAttempt struct {
	userID   uint
	lessonID string
	engine   *QuizEngine
}

func NewLessonService() *LessonService {
	return &LessonService{attempts: make(map[string]*quizAttempt)}
}

func (s *LessonService) ListLessons() []models.Lesson {
	return Lessons
}

func (s *LessonService) GetLesson(id string) (*models.Lesson, error) {
	for i := range Lessons {
		if Lessons[i].ID == id {
			return &Lessons[i], nil
		}
	}
	return nil, ErrLessonNotFound
}

// StartAttempt creates a fresh engine for the lesson; restarting the
// same lesson gets a clean slate.
func (s *LessonService) StartAttempt(userID uint, lessonID string) (string, *models.Lesson, error) {
	lesson, err := s.GetLesson(lessonID)
	if err != nil {
		return "", nil, err
	}
	engine, err := NewQuizEngine(*lesson)
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.attempts[id] = &quizAttempt{userID: userID, lessonID: lessonID, engine: engine}
	s.mu.Unlock()
	return id, lesson, nil
}

func (s *LessonService) attempt(userID uint, attemptID string) (*quizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[attemptID]
	if !ok || a.userID != userID {
		return nil, ErrAttemptNotFound
	}
	return a, nil
}

// AnswerResult tells the client whether the pick was right and carries
// the explanation shown before advancing.
type AnswerResult struct {
	Correct      bool   `json:"correct"`
	CorrectIndex int    `json:"correct_index"`
	Explanation  string `json:"explanation"`
}

func (s *LessonService) Answer(userID uint, attemptID string, selectedIndex int) (*AnswerResult, error) {
	a, err := s.attempt(userID, attemptID)
	if err != nil {
		return nil, err
	}
	q, _, err := a.engine.Current()
	if err != nil {
		return nil, err
	}
	if err := a.engine.Answer(selectedIndex); err != nil {
		return nil, err
	}
	return &AnswerResult{
		Correct:      selectedIndex == q.CorrectIndex,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
	}, nil
}

// PublicQuestion is a question with the answer key stripped.
type PublicQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// AttemptState is returned after each advance: either the next question
// or the final result with its band.
type AttemptState struct {
	Done          bool            `json:"done"`
	QuestionIndex int             `json:"question_index,omitempty"`
	Question      *PublicQuestion `json:"question,omitempty"`
	Score         int             `json:"score,omitempty"`
	Total         int             `json:"total,omitempty"`
	Band          string          `json:"band,omitempty"`
}

func (s *LessonService) Advance(userID uint, attemptID string) (*AttemptState, error) {
	a, err := s.attempt(userID, attemptID)
	if err != nil {
		return nil, err
	}
	if err := a.engine.Advance(); err != nil {
		return nil, err
	}

	if score, total, done := a.engine.Result(); done {
		s.mu.Lock()
		delete(s.attempts, attemptID)
		s.mu.Unlock()
		return &AttemptState{Done: true, Score: score, Total: total, Band: ScoreBand(score, total)}, nil
	}

	q, idx, err := a.engine.Current()
	if err != nil {
		return nil, err
	}
	return &AttemptState{
		QuestionIndex: idx,
		Question:      &PublicQuestion{Question: q.Question, Options: q.Options},
	}, nil
}
