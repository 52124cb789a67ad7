package services

import (
	"errors"
	"sync"

	"diabkit/models"
)

// Quiz misuse is a programming-contract violation, not a user error:
// calls out of turn are rejected with a sentinel and change nothing.
var (
	ErrQuizEmpty           = errors.New("lesson has no quiz questions")
	ErrQuizCompleted       = errors.New("quiz already completed")
	ErrQuizAlreadyAnswered = errors.New("question already answered")
	ErrQuizNotAnswered     = errors.New("current question not answered yet")
	ErrQuizInvalidOption   = errors.New("selected option out of range")
)

// Score bands for presentation; lower bounds inclusive.
const (
	BandNeedsReview = "needs review" // < 50%
	BandClose       = "close"        // 50-79%
	BandMastered    = "mastered"     // >= 80%
)

// QuizEngine walks a lesson's fixed question sequence:
// Question[i] -> Answered[i] -> Question[i+1], ending in Completed.
// Each attempt gets a fresh engine; attempts share no state.
type QuizEngine struct {
	mu        sync.Mutex
	questions []models.QuizQuestion
	index     int
	answers   []int
	answered  bool
	completed bool
	score     int
}

func NewQuizEngine(lesson models.Lesson) (*QuizEngine, error) {
	if len(lesson.Quiz) == 0 {
		return nil, ErrQuizEmpty
	}
	return &QuizEngine{
		questions: lesson.Quiz,
		answers:   make([]int, 0, len(lesson.Quiz)),
	}, nil
}

// Current returns the active question and its index.
func (e *QuizEngine) Current() (models.QuizQuestion, int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.completed {
		return models.QuizQuestion{}, 0, ErrQuizCompleted
	}
	return e.questions[e.index], e.index, nil
}

// Answer records the selection for the current question. The first
// answer is authoritative; answering again before Advance is rejected.
func (e *QuizEngine) Answer(selectedIndex int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.completed {
		return ErrQuizCompleted
	}
	if e.answered {
		return ErrQuizAlreadyAnswered
	}
	q := e.questions[e.index]
	if selectedIndex < 0 || selectedIndex >= len(q.Options) {
		return ErrQuizInvalidOption
	}
	e.answers = append(e.answers, selectedIndex)
	e.answered = true
	if selectedIndex == q.CorrectIndex {
		e.score++
	}
	return nil
}

// Advance moves past an answered question; after the last one the
// engine completes and the final score freezes.
func (e *QuizEngine) Advance() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.completed {
		return ErrQuizCompleted
	}
	if !e.answered {
		return ErrQuizNotAnswered
	}
	e.answered = false
	if e.index+1 < len(e.questions) {
		e.index++
		return nil
	}
	e.completed = true
	return nil
}

// Result reports (score, total, done). Score is only final once done.
func (e *QuizEngine) Result() (int, int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score, len(e.questions), e.completed
}

// ScoreBand maps a final score to its presentation band.
func ScoreBand(score, total int) string {
	if total <= 0 {
		return BandNeedsReview
	}
	pct := float64(score) / float64(total) * 100
	switch {
	case pct >= 80:
		return BandMastered
	case pct >= 50:
		return BandClose
	default:
		return BandNeedsReview
	}
}
