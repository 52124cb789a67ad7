package routes

import (
	"diabkit/config"
	"diabkit/controllers"
	"diabkit/middlewares"
	"diabkit/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		push = nil
	}
	services.InitAlertDeps(config.DB, hub, push)

	mealCtl := controllers.NewMealController(services.NewMealService(services.NewGeminiService()))
	learnCtl := controllers.NewLearningController(services.NewLessonService())
	notifCtl := controllers.NewNotificationController(push)
	rtCtl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/guest", controllers.GuestLogin)
		auth.GET("/session", controllers.Session)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/auth/logout", controllers.Logout)

		api.GET("/user/profile", controllers.GetProfile)
		api.GET("/user/dtx-trend", controllers.DTXTrend)

		// Lessons are readable by guests too
		api.GET("/lessons", learnCtl.ListLessons)
		api.GET("/lessons/:id", learnCtl.GetLesson)
	}

	// Everything below persists state, so guests are shut out
	acct := r.Group("/")
	acct.Use(middlewares.AuthMiddleware(), middlewares.RequireAccount())
	{
		acct.PUT("/user/profile", controllers.UpdateProfile)

		acct.POST("/meals/analyze", mealCtl.AnalyzeMeal)
		acct.POST("/meals", mealCtl.ConfirmMeal)
		acct.GET("/meals", mealCtl.ListMeals)
		acct.GET("/meals/today", mealCtl.TodaySummary)
		acct.GET("/meals/session", mealCtl.SessionMeals)

		acct.POST("/lessons/:id/quiz", learnCtl.StartQuiz)
		acct.POST("/quiz/:attempt/answer", learnCtl.AnswerQuiz)
		acct.POST("/quiz/:attempt/advance", learnCtl.AdvanceQuiz)

		acct.GET("/notifications/reminders", notifCtl.ListReminders)
		acct.POST("/notifications/reminders", notifCtl.CreateReminder)
		acct.PUT("/notifications/reminders/:id", notifCtl.UpdateReminder)
		acct.DELETE("/notifications/reminders/:id", notifCtl.DeleteReminder)
		acct.GET("/notifications/alerts", notifCtl.ListAlerts)
		acct.POST("/notifications/devices", notifCtl.RegisterDevice)

		acct.GET("/ws/alerts", rtCtl.AlertsWS)
	}

	return r
}
