package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"

	"gaindalf/internal/api"
	"gaindalf/internal/config"
	"gaindalf/internal/repository/mongo"
	"gaindalf/internal/service"
	"gaindalf/internal/storage"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Info("Starting Gaindalf server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	log.Info("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureMuscleGroupIndexes(ctx, appDB.Collection("muscle_groups"))
		mongo.EnsureLiftIndexes(ctx, appDB.Collection("lifts"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"), appDB.Collection("workout_lifts"))
		log.Info("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	backupStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	groupRepo := mongo.NewMongoMuscleGroupRepository(appDB)
	liftRepo := mongo.NewMongoLiftRepository(appDB)
	conflictRepo := mongo.NewMongoConflictRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	catalogService := service.NewCatalogService(groupRepo, liftRepo, conflictRepo)
	workoutService := service.NewWorkoutService(workoutRepo, liftRepo)
	suggestionService := service.NewSuggestionService(groupRepo, liftRepo, conflictRepo, workoutRepo)
	progressService := service.NewProgressService(liftRepo, workoutRepo)
	backupService := service.NewBackupService(groupRepo, liftRepo, conflictRepo, workoutRepo, backupStorage)

	// --- Scheduled Backups ---
	if cfg.Backup.Enabled {
		scheduler := cron.New()
		err := scheduler.AddFunc(cfg.Backup.Schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			key, err := backupService.Run(ctx)
			if err != nil {
				log.Errorf("Scheduled backup failed: %v", err)
				return
			}
			log.Infof("Scheduled backup written: %s", key)
		})
		if err != nil {
			log.Fatalf("Invalid backup schedule %q: %v", cfg.Backup.Schedule, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Infof("Backup scheduler started with schedule %q", cfg.Backup.Schedule)
	}

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		authService,
		catalogService,
		workoutService,
		suggestionService,
		progressService,
		backupService,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Infof("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exiting.")
}
