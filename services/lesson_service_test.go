package services

import (
	"errors"
	"testing"
)

func TestGetLesson(t *testing.T) {
	s := NewLessonService()

	lesson, err := s.GetLesson("1")
	if err != nil {
		t.Fatalf("GetLesson(1) error: %v", err)
	}
	if lesson.Title != "Understanding Type 2 Diabetes" {
		t.Fatalf("GetLesson(1).Title = %q", lesson.Title)
	}

	if _, err := s.GetLesson("999"); !errors.Is(err, ErrLessonNotFound) {
		t.Fatalf("GetLesson(999) = %v, want ErrLessonNotFound", err)
	}
}

func TestAttemptFullRun(t *testing.T) {
	s := NewLessonService()
	const userID = 7

	attemptID, lesson, err := s.StartAttempt(userID, "1")
	if err != nil {
		t.Fatalf("StartAttempt() error: %v", err)
	}
	if len(lesson.Quiz) != 2 {
		t.Fatalf("lesson 1 has %d questions, want 2", len(lesson.Quiz))
	}

	// q1 wrong: the result still reveals the answer and the explanation
	res, err := s.Answer(userID, attemptID, 0)
	if err != nil {
		t.Fatalf("Answer(q1) error: %v", err)
	}
	if res.Correct || res.CorrectIndex != 1 || res.Explanation == "" {
		t.Fatalf("Answer(q1) = %+v, want incorrect with key and explanation", res)
	}

	state, err := s.Advance(userID, attemptID)
	if err != nil {
		t.Fatalf("Advance(q1) error: %v", err)
	}
	if state.Done || state.QuestionIndex != 1 || state.Question == nil {
		t.Fatalf("Advance(q1) = %+v, want question 1", state)
	}

	// q2 right
	res, err = s.Answer(userID, attemptID, 1)
	if err != nil {
		t.Fatalf("Answer(q2) error: %v", err)
	}
	if !res.Correct {
		t.Fatalf("Answer(q2) = %+v, want correct", res)
	}

	state, err = s.Advance(userID, attemptID)
	if err != nil {
		t.Fatalf("Advance(q2) error: %v", err)
	}
	if !state.Done || state.Score != 1 || state.Total != 2 || state.Band != BandClose {
		t.Fatalf("final state = %+v, want done 1/2 %q", state, BandClose)
	}

	// the finished attempt is gone
	if _, err := s.Answer(userID, attemptID, 0); !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("Answer() on finished attempt = %v, want ErrAttemptNotFound", err)
	}
}

func TestAttemptIsScopedToItsUser(t *testing.T) {
	s := NewLessonService()

	attemptID, _, err := s.StartAttempt(1, "2")
	if err != nil {
		t.Fatalf("StartAttempt() error: %v", err)
	}
	if _, err := s.Answer(2, attemptID, 0); !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("Answer() as another user = %v, want ErrAttemptNotFound", err)
	}
}

func TestRestartGetsFreshAttempt(t *testing.T) {
	s := NewLessonService()
	const userID = 1

	first, _, err := s.StartAttempt(userID, "2")
	if err != nil {
		t.Fatalf("StartAttempt() error: %v", err)
	}
	if _, err := s.Answer(userID, first, 0); err != nil {
		t.Fatalf("Answer() error: %v", err)
	}

	second, _, err := s.StartAttempt(userID, "2")
	if err != nil {
		t.Fatalf("second StartAttempt() error: %v", err)
	}
	if second == first {
		t.Fatal("restart reused the attempt id")
	}
	// the new attempt starts unanswered
	if _, err := s.Answer(userID, second, 1); err != nil {
		t.Fatalf("Answer() on fresh attempt = %v, want nil", err)
	}
}

func TestStartAttemptUnknownLesson(t *testing.T) {
	s := NewLessonService()
	if _, _, err := s.StartAttempt(1, "does-not-exist"); !errors.Is(err, ErrLessonNotFound) {
		t.Fatalf("StartAttempt(unknown) = %v, want ErrLessonNotFound", err)
	}
}
