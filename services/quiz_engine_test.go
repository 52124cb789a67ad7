package services

import (
	"errors"
	"testing"

	"diabkit/models"
)

func twoQuestionLesson() models.Lesson {
	return models.Lesson{
		ID:    "test-lesson",
		Title: "Test Lesson",
		Quiz: []models.QuizQuestion{
			{
				Question:     "Which nutrient raises blood glucose the most?",
				Options:      []string{"Fat", "Carbohydrates", "Protein"},
				CorrectIndex: 1,
				Explanation:  "Carbohydrates break down into glucose directly.",
			},
			{
				Question:     "A good fasting glucose target is:",
				Options:      []string{"80-130 mg/dL", "200-250 mg/dL"},
				CorrectIndex: 0,
				Explanation:  "ADA recommends 80-130 mg/dL before meals.",
			},
		},
	}
}

func TestQuizEngineRequiresQuestions(t *testing.T) {
	_, err := NewQuizEngine(models.Lesson{ID: "empty"})
	if !errors.Is(err, ErrQuizEmpty) {
		t.Fatalf("NewQuizEngine(empty) = %v, want ErrQuizEmpty", err)
	}
}

func TestQuizEngineScoring(t *testing.T) {
	cases := []struct {
		name    string
		answers []int
		score   int
	}{
		{"all correct", []int{1, 0}, 2},
		{"one correct", []int{1, 1}, 1},
		{"none correct", []int{0, 1}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewQuizEngine(twoQuestionLesson())
			if err != nil {
				t.Fatalf("NewQuizEngine() error: %v", err)
			}
			for i, a := range tc.answers {
				if err := e.Answer(a); err != nil {
					t.Fatalf("Answer(q%d) error: %v", i, err)
				}
				if err := e.Advance(); err != nil {
					t.Fatalf("Advance(q%d) error: %v", i, err)
				}
			}
			score, total, done := e.Result()
			if !done {
				t.Fatal("quiz not completed after the last advance")
			}
			if score != tc.score || total != 2 {
				t.Fatalf("Result() = %d/%d, want %d/2", score, total, tc.score)
			}
		})
	}
}

func TestQuizFirstAnswerIsAuthoritative(t *testing.T) {
	e, err := NewQuizEngine(twoQuestionLesson())
	if err != nil {
		t.Fatalf("NewQuizEngine() error: %v", err)
	}

	if err := e.Answer(0); err != nil { // wrong on purpose
		t.Fatalf("Answer() error: %v", err)
	}
	if err := e.Answer(1); !errors.Is(err, ErrQuizAlreadyAnswered) {
		t.Fatalf("second Answer() = %v, want ErrQuizAlreadyAnswered", err)
	}

	if err := e.Advance(); err != nil {
		t.Fatalf("Advance() error: %v", err)
	}
	if err := e.Answer(0); err != nil {
		t.Fatalf("Answer(q2) error: %v", err)
	}
	if err := e.Advance(); err != nil {
		t.Fatalf("Advance(q2) error: %v", err)
	}

	score, _, _ := e.Result()
	if score != 1 {
		t.Fatalf("score = %d, want 1 (the changed answer must not count)", score)
	}
}

func TestQuizAdvanceRequiresAnswer(t *testing.T) {
	e, err := NewQuizEngine(twoQuestionLesson())
	if err != nil {
		t.Fatalf("NewQuizEngine() error: %v", err)
	}
	if err := e.Advance(); !errors.Is(err, ErrQuizNotAnswered) {
		t.Fatalf("Advance() before answering = %v, want ErrQuizNotAnswered", err)
	}
}

func TestQuizRejectsOutOfRangeOption(t *testing.T) {
	e, err := NewQuizEngine(twoQuestionLesson())
	if err != nil {
		t.Fatalf("NewQuizEngine() error: %v", err)
	}
	for _, idx := range []int{-1, 3, 99} {
		if err := e.Answer(idx); !errors.Is(err, ErrQuizInvalidOption) {
			t.Errorf("Answer(%d) = %v, want ErrQuizInvalidOption", idx, err)
		}
	}
	// the invalid attempts left the question open
	if err := e.Answer(1); err != nil {
		t.Fatalf("Answer() after invalid attempts = %v, want nil", err)
	}
}

func TestQuizCompletedIsTerminal(t *testing.T) {
	e, err := NewQuizEngine(twoQuestionLesson())
	if err != nil {
		t.Fatalf("NewQuizEngine() error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := e.Answer(0); err != nil {
			t.Fatalf("Answer() error: %v", err)
		}
		if err := e.Advance(); err != nil {
			t.Fatalf("Advance() error: %v", err)
		}
	}

	if _, _, err := e.Current(); !errors.Is(err, ErrQuizCompleted) {
		t.Fatalf("Current() after completion = %v, want ErrQuizCompleted", err)
	}
	if err := e.Answer(0); !errors.Is(err, ErrQuizCompleted) {
		t.Fatalf("Answer() after completion = %v, want ErrQuizCompleted", err)
	}
	if err := e.Advance(); !errors.Is(err, ErrQuizCompleted) {
		t.Fatalf("Advance() after completion = %v, want ErrQuizCompleted", err)
	}
}

func TestQuizRetakeStartsClean(t *testing.T) {
	lesson := twoQuestionLesson()
	e1, err := NewQuizEngine(lesson)
	if err != nil {
		t.Fatalf("NewQuizEngine() error: %v", err)
	}
	for i := 0; i < 2; i++ {
		e1.Answer(1 - i) // 1 then 0, both correct
		e1.Advance()
	}
	if score, _, _ := e1.Result(); score != 2 {
		t.Fatalf("first attempt score = %d, want 2", score)
	}

	e2, err := NewQuizEngine(lesson)
	if err != nil {
		t.Fatalf("NewQuizEngine() error: %v", err)
	}
	score, _, done := e2.Result()
	if score != 0 || done {
		t.Fatalf("fresh engine carries state: score=%d done=%v", score, done)
	}
	if _, idx, err := e2.Current(); err != nil || idx != 0 {
		t.Fatalf("fresh engine Current() = (idx %d, %v), want (0, nil)", idx, err)
	}
}

func TestScoreBandBoundaries(t *testing.T) {
	cases := []struct {
		score, total int
		want         string
	}{
		{0, 2, BandNeedsReview},
		{1, 2, BandClose},  // exactly 50%
		{2, 2, BandMastered},
		{2, 5, BandNeedsReview}, // 40%
		{4, 5, BandMastered},    // exactly 80%
		{79, 100, BandClose},
		{80, 100, BandMastered},
		{49, 100, BandNeedsReview},
		{0, 0, BandNeedsReview},
	}
	for _, tc := range cases {
		if got := ScoreBand(tc.score, tc.total); got != tc.want {
			t.Errorf("ScoreBand(%d, %d) = %q, want %q", tc.score, tc.total, got, tc.want)
		}
	}
}
