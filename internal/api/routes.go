package api

import (
	"net/http"

	"github.com/fitjourney/chronicle/internal/service"
	"github.com/fitjourney/chronicle/internal/session"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	manager *session.Manager,
	workoutService service.WorkoutService,
	historyService service.HistoryService,
	goalService service.GoalService,
	exportService service.ExportService,
) {
	workoutHandler := NewWorkoutHandler(workoutService)
	historyHandler := NewHistoryHandler(historyService, exportService)
	goalHandler := NewGoalHandler(goalService)
	sessionHandler := NewSessionHandler(manager)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		workouts := apiV1.Group("/workouts")
		{
			workouts.GET("", workoutHandler.ListWorkouts)
			workouts.POST("", workoutHandler.SaveCustomWorkout)
			workouts.GET("/:id", workoutHandler.GetWorkout)
		}

		logs := apiV1.Group("/logs")
		{
			logs.GET("", historyHandler.ListLogs)
			// POST /api/v1/logs/export - archive every log to object storage
			logs.POST("/export", historyHandler.ExportLogs)
			logs.GET("/:id", historyHandler.GetLog)
			logs.DELETE("/:id", historyHandler.DeleteLog)
		}
		apiV1.GET("/stats", historyHandler.Dashboard)

		goals := apiV1.Group("/goals")
		{
			goals.GET("", goalHandler.ListGoals)
			goals.POST("", goalHandler.SaveGoal)
			goals.GET("/active", goalHandler.GetActiveGoal)
			goals.PUT("/:id", goalHandler.SaveGoal)
			goals.DELETE("/:id", goalHandler.DeleteGoal)
		}

		sessions := apiV1.Group("/sessions")
		{
			sessions.POST("", sessionHandler.StartSession)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.DELETE("/:id", sessionHandler.DiscardSession)
			sessions.PUT("/:id/notes", sessionHandler.SetNotes)
			sessions.GET("/:id/notifications", sessionHandler.Notifications)
			sessions.POST("/:id/finish", sessionHandler.FinishSession)
			sessions.POST("/:id/restore", sessionHandler.RestoreDefaults)

			// --- Exercise list edits ---
			sessions.POST("/:id/exercises", sessionHandler.AddExercise)
			sessions.PUT("/:id/exercises/order", sessionHandler.ReorderExercises)
			sessions.DELETE("/:id/exercises/:exercise", sessionHandler.RemoveExercise)

			// --- Sets ---
			sessions.POST("/:id/exercises/:exercise/sets", sessionHandler.AddSet)
			sessions.PATCH("/:id/exercises/:exercise/sets/:set", sessionHandler.UpdateSet)
			sessions.POST("/:id/exercises/:exercise/sets/:set/rest/:action", sessionHandler.ControlRest)
		}
	}
}
