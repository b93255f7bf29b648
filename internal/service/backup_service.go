package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"gaindalf/internal/domain"
	"gaindalf/internal/repository"
	"gaindalf/internal/storage"
)

// BackupExport is the JSON document written to object storage: the complete
// dataset plus an export timestamp.
type BackupExport struct {
	ExportedAt   time.Time                    `json:"exportedAt"`
	MuscleGroups []domain.MuscleGroup         `json:"muscleGroups"`
	Lifts        []domain.Lift                `json:"lifts"`
	Conflicts    []domain.MuscleGroupConflict `json:"conflicts"`
	Workouts     []domain.Workout             `json:"workouts"`
	WorkoutLifts []domain.WorkoutLift         `json:"workoutLifts"`
}

// BackupService exports the full dataset as a JSON object to S3.
type BackupService interface {
	// Run performs one backup and returns the object key it wrote.
	Run(ctx context.Context) (string, error)
}

// backupService implements the BackupService interface.
type backupService struct {
	groupRepo    repository.MuscleGroupRepository
	liftRepo     repository.LiftRepository
	conflictRepo repository.ConflictRepository
	workoutRepo  repository.WorkoutRepository
	store        storage.ObjectStorage
}

// NewBackupService creates a new instance of backupService.
func NewBackupService(
	groupRepo repository.MuscleGroupRepository,
	liftRepo repository.LiftRepository,
	conflictRepo repository.ConflictRepository,
	workoutRepo repository.WorkoutRepository,
	store storage.ObjectStorage,
) BackupService {
	return &backupService{
		groupRepo:    groupRepo,
		liftRepo:     liftRepo,
		conflictRepo: conflictRepo,
		workoutRepo:  workoutRepo,
		store:        store,
	}
}

// Run reads the complete dataset and uploads it as one JSON object. Object
// keys carry the date plus a random suffix so repeated runs never collide.
func (s *backupService) Run(ctx context.Context) (string, error) {
	export := BackupExport{ExportedAt: time.Now().UTC()}

	var err error
	if export.MuscleGroups, err = s.groupRepo.GetAll(ctx); err != nil {
		return "", fmt.Errorf("backup: read muscle groups: %w", err)
	}
	if export.Lifts, err = s.liftRepo.GetAll(ctx); err != nil {
		return "", fmt.Errorf("backup: read lifts: %w", err)
	}
	if export.Conflicts, err = s.conflictRepo.GetAll(ctx); err != nil {
		return "", fmt.Errorf("backup: read conflicts: %w", err)
	}
	if export.Workouts, err = s.workoutRepo.GetAll(ctx); err != nil {
		return "", fmt.Errorf("backup: read workouts: %w", err)
	}
	if export.WorkoutLifts, err = s.workoutRepo.GetAllLifts(ctx); err != nil {
		return "", fmt.Errorf("backup: read workout lifts: %w", err)
	}

	payload, err := json.Marshal(export)
	if err != nil {
		return "", fmt.Errorf("backup: marshal export: %w", err)
	}

	key := fmt.Sprintf("backups/%s-%s.json", export.ExportedAt.Format("2006-01-02T15-04-05"), uuid.NewString())
	if err := s.store.Put(ctx, key, "application/json", payload); err != nil {
		return "", fmt.Errorf("backup: upload: %w", err)
	}

	log.WithFields(log.Fields{
		"key":      key,
		"workouts": len(export.Workouts),
	}).Info("backup uploaded")
	return key, nil
}
