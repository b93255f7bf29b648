package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaindalf/internal/domain"
	"gaindalf/internal/engine"
	"gaindalf/internal/repository"
)

// SuggestionResult is a suggestion with its identifiers resolved to names for
// presentation.
type SuggestionResult struct {
	MuscleGroupID   primitive.ObjectID
	MuscleGroupName string
	LiftID          primitive.ObjectID
	LiftName        string
	PreviousSets    []domain.WorkoutSet
}

// SuggestionService assembles a fresh snapshot per call and runs the
// suggestion engine over it. It performs no caching: the engine always sees
// the data as of the moment of the request.
type SuggestionService interface {
	Suggest(ctx context.Context, workoutID primitive.ObjectID) (*SuggestionResult, error)
	SuggestForGroup(ctx context.Context, workoutID, muscleGroupID primitive.ObjectID) (*SuggestionResult, error)
}

// suggestionService implements the SuggestionService interface.
type suggestionService struct {
	groupRepo    repository.MuscleGroupRepository
	liftRepo     repository.LiftRepository
	conflictRepo repository.ConflictRepository
	workoutRepo  repository.WorkoutRepository
}

// NewSuggestionService creates a new instance of suggestionService.
func NewSuggestionService(
	groupRepo repository.MuscleGroupRepository,
	liftRepo repository.LiftRepository,
	conflictRepo repository.ConflictRepository,
	workoutRepo repository.WorkoutRepository,
) SuggestionService {
	return &suggestionService{
		groupRepo:    groupRepo,
		liftRepo:     liftRepo,
		conflictRepo: conflictRepo,
		workoutRepo:  workoutRepo,
	}
}

// Suggest recommends the next muscle group and lift for the workout.
// The engine's error sentinels (engine.ErrNoMuscleGroups,
// engine.ErrNoLiftsInGroup) propagate unchanged.
func (s *suggestionService) Suggest(ctx context.Context, workoutID primitive.ObjectID) (*SuggestionResult, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := snapshotWorkout(snap, workoutID); err != nil {
		return nil, err
	}

	suggestion, err := engine.Suggest(snap, workoutID)
	if err != nil {
		return nil, err
	}
	return s.resolve(snap, suggestion)
}

// SuggestForGroup recommends the next lift within a caller-chosen group.
func (s *suggestionService) SuggestForGroup(ctx context.Context, workoutID, muscleGroupID primitive.ObjectID) (*SuggestionResult, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := snapshotWorkout(snap, workoutID); err != nil {
		return nil, err
	}
	if !snapshotHasGroup(snap, muscleGroupID) {
		return nil, ErrMuscleGroupNotFound
	}

	suggestion, err := engine.SuggestForGroup(snap, workoutID, muscleGroupID)
	if err != nil {
		return nil, err
	}
	return s.resolve(snap, suggestion)
}

// loadSnapshot performs one consistent read of everything the engine needs.
func (s *suggestionService) loadSnapshot(ctx context.Context) (*engine.Snapshot, error) {
	groups, err := s.groupRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	lifts, err := s.liftRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	conflicts, err := s.conflictRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	workouts, err := s.workoutRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	occurrences, err := s.workoutRepo.GetAllLifts(ctx)
	if err != nil {
		return nil, err
	}

	return &engine.Snapshot{
		Groups:       groups,
		Lifts:        lifts,
		Conflicts:    conflicts,
		Workouts:     workouts,
		WorkoutLifts: occurrences,
	}, nil
}

// resolve turns engine identifiers into a presentable result with names.
func (s *suggestionService) resolve(snap *engine.Snapshot, suggestion *engine.Suggestion) (*SuggestionResult, error) {
	result := &SuggestionResult{
		MuscleGroupID: suggestion.MuscleGroupID,
		LiftID:        suggestion.LiftID,
		PreviousSets:  suggestion.PreviousSets,
	}
	for _, g := range snap.Groups {
		if g.ID == suggestion.MuscleGroupID {
			result.MuscleGroupName = g.Name
			break
		}
	}
	for _, l := range snap.Lifts {
		if l.ID == suggestion.LiftID {
			result.LiftName = l.Name
			break
		}
	}
	return result, nil
}

func snapshotWorkout(snap *engine.Snapshot, workoutID primitive.ObjectID) (*domain.Workout, error) {
	for i := range snap.Workouts {
		if snap.Workouts[i].ID == workoutID {
			return &snap.Workouts[i], nil
		}
	}
	return nil, ErrWorkoutNotFound
}

func snapshotHasGroup(snap *engine.Snapshot, groupID primitive.ObjectID) bool {
	for _, g := range snap.Groups {
		if g.ID == groupID {
			return true
		}
	}
	return false
}
