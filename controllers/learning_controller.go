package controllers

import (
	"errors"
	"net/http"

	"diabkit/services"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	Lessons *services.LessonService
}

func NewLearningController(lessons *services.LessonService) *LearningController {
	return &LearningController{Lessons: lessons}
}

func (lc *LearningController) ListLessons(c *gin.Context) {
	c.JSON(http.StatusOK, lc.Lessons.ListLessons())
}

func (lc *LearningController) GetLesson(c *gin.Context) {
	lesson, err := lc.Lessons.GetLesson(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func (lc *LearningController) StartQuiz(c *gin.Context) {
	attemptID, lesson, err := lc.Lessons.StartAttempt(c.GetUint("userID"), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrLessonNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	first := lesson.Quiz[0]
	c.JSON(http.StatusCreated, gin.H{
		"attempt_id": attemptID,
		"total":      len(lesson.Quiz),
		"question": services.PublicQuestion{
			Question: first.Question,
			Options:  first.Options,
		},
	})
}

type QuizAnswerRequest struct {
	SelectedIndex *int `json:"selected_index" binding:"required"`
}

func (lc *LearningController) AnswerQuiz(c *gin.Context) {
	var req QuizAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "selected_index is required"})
		return
	}

	result, err := lc.Lessons.Answer(c.GetUint("userID"), c.Param("attempt"), *req.SelectedIndex)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAttemptNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "attempt not found"})
		case errors.Is(err, services.ErrQuizInvalidOption),
			errors.Is(err, services.ErrQuizAlreadyAnswered),
			errors.Is(err, services.ErrQuizCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

func (lc *LearningController) AdvanceQuiz(c *gin.Context) {
	state, err := lc.Lessons.Advance(c.GetUint("userID"), c.Param("attempt"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAttemptNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "attempt not found"})
		case errors.Is(err, services.ErrQuizNotAnswered), errors.Is(err, services.ErrQuizCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, state)
}
