package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gaindalf/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	catalogService service.CatalogService,
	workoutService service.WorkoutService,
	suggestionService service.SuggestionService,
	progressService service.ProgressService,
	backupService service.BackupService,
) {

	authHandler := NewAuthHandler(authService)
	muscleGroupHandler := NewMuscleGroupHandler(catalogService)
	liftHandler := NewLiftHandler(catalogService, workoutService)
	workoutHandler := NewWorkoutHandler(workoutService, catalogService, suggestionService)
	analyticsHandler := NewAnalyticsHandler(progressService)
	settingsHandler := NewSettingsHandler(catalogService, backupService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Catalog Routes ---
		muscleGroupGroup := protected.Group("/muscle-groups")
		{
			muscleGroupGroup.GET("", muscleGroupHandler.List)
			muscleGroupGroup.POST("", muscleGroupHandler.Create)
			muscleGroupGroup.PATCH("/:id", muscleGroupHandler.Rename)
			muscleGroupGroup.DELETE("/:id", muscleGroupHandler.Delete)
		}

		liftGroup := protected.Group("/lifts")
		{
			liftGroup.GET("", liftHandler.List)
			liftGroup.POST("", liftHandler.Create)
			liftGroup.PATCH("/:id", liftHandler.Update)
			liftGroup.DELETE("/:id", liftHandler.Delete)
			// GET /api/v1/lifts/{id}/last-sets - sets from the most recent occurrence
			liftGroup.GET("/:id/last-sets", liftHandler.LastSets)
		}

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.List)
			workoutGroup.POST("", workoutHandler.Create)
			workoutGroup.GET("/:id", workoutHandler.Get)
			workoutGroup.PATCH("/:id", workoutHandler.UpdateSubtitle)
			workoutGroup.DELETE("/:id", workoutHandler.Delete)

			// Lift occurrences inside a workout.
			workoutGroup.POST("/:id/lifts", workoutHandler.AddLift)
			workoutGroup.DELETE("/:id/lifts/:wlId", workoutHandler.RemoveLift)

			// GET /api/v1/workouts/{id}/suggest - next muscle group and lift
			workoutGroup.GET("/:id/suggest", workoutHandler.Suggest)
			// GET /api/v1/workouts/{id}/suggest/{groupId} - next lift inside a chosen group
			workoutGroup.GET("/:id/suggest/:groupId", workoutHandler.SuggestForGroup)
		}

		// --- Set Routes ---
		setGroup := protected.Group("/workout-lifts/:wlId/sets")
		{
			setGroup.POST("", workoutHandler.AddSet)
			setGroup.PATCH("/:setNumber", workoutHandler.UpdateSet)
			setGroup.DELETE("/:setNumber", workoutHandler.DeleteSet)
		}

		// --- Analytics Routes ---
		analyticsGroup := protected.Group("/analytics")
		{
			analyticsGroup.GET("/progress", analyticsHandler.Progress)
			analyticsGroup.GET("/lifts/:id", analyticsHandler.LiftHistory)
		}

		// --- Settings Routes ---
		settingsGroup := protected.Group("/settings")
		{
			settingsGroup.GET("/conflicts", settingsHandler.ListConflicts)
			settingsGroup.POST("/conflicts", settingsHandler.CreateConflict)
			settingsGroup.DELETE("/conflicts/:id", settingsHandler.DeleteConflict)
			settingsGroup.POST("/backup", settingsHandler.TriggerBackup)
		}
	}
}
