package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaindalf/internal/engine"
	"gaindalf/internal/repository"
)

// ProgressService computes normalized strength/endurance index series for
// charting. As with suggestions, each call takes a fresh snapshot so
// concurrent mutations never leak into a running computation.
type ProgressService interface {
	// GetProgress returns one index point per workout, date ascending.
	GetProgress(ctx context.Context) ([]engine.IndexPoint, error)
	// GetLiftHistory returns the index series restricted to a single lift.
	// Fails only when the lift does not exist; a lift with no history yields
	// an empty series.
	GetLiftHistory(ctx context.Context, liftID primitive.ObjectID) ([]engine.IndexPoint, error)
}

// progressService implements the ProgressService interface.
type progressService struct {
	liftRepo    repository.LiftRepository
	workoutRepo repository.WorkoutRepository
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(liftRepo repository.LiftRepository, workoutRepo repository.WorkoutRepository) ProgressService {
	return &progressService{
		liftRepo:    liftRepo,
		workoutRepo: workoutRepo,
	}
}

func (s *progressService) GetProgress(ctx context.Context) ([]engine.IndexPoint, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return engine.ComputeAllIndexes(snap), nil
}

func (s *progressService) GetLiftHistory(ctx context.Context, liftID primitive.ObjectID) ([]engine.IndexPoint, error) {
	if _, err := s.liftRepo.GetByID(ctx, liftID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLiftNotFound
		}
		return nil, err
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return engine.ComputeLiftIndexes(snap, liftID), nil
}

// loadSnapshot reads the workout history the index engine needs. The
// catalogue collections are not required here: index computation only touches
// workouts and their lift occurrences.
func (s *progressService) loadSnapshot(ctx context.Context) (*engine.Snapshot, error) {
	workouts, err := s.workoutRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	occurrences, err := s.workoutRepo.GetAllLifts(ctx)
	if err != nil {
		return nil, err
	}
	return &engine.Snapshot{
		Workouts:     workouts,
		WorkoutLifts: occurrences,
	}, nil
}
