package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaindalf/internal/domain"
	"gaindalf/internal/repository"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrWorkoutLiftNotFound = errors.New("workout lift not found")
	ErrSetNotFound         = errors.New("set not found")
)

// WorkoutService manages training sessions: the workout records themselves,
// the lift occurrences inside them, and the sets of each occurrence.
type WorkoutService interface {
	CreateWorkout(ctx context.Context) (*domain.Workout, error)
	GetWorkouts(ctx context.Context) ([]domain.Workout, error)
	GetWorkoutByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	UpdateSubtitle(ctx context.Context, id primitive.ObjectID, subtitle string) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, id primitive.ObjectID) error

	AddLiftToWorkout(ctx context.Context, workoutID, liftID primitive.ObjectID, displayOrder int) (*domain.WorkoutLift, error)
	GetWorkoutLifts(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutLift, error)
	RemoveLiftFromWorkout(ctx context.Context, workoutID, liftOccurrenceID primitive.ObjectID) error

	AddSet(ctx context.Context, liftOccurrenceID primitive.ObjectID, reps *int, weight *float64) (*domain.WorkoutSet, error)
	UpdateSet(ctx context.Context, liftOccurrenceID primitive.ObjectID, setNumber int, reps *int, weight *float64) (*domain.WorkoutSet, error)
	DeleteSet(ctx context.Context, liftOccurrenceID primitive.ObjectID, setNumber int) error

	// LastSets returns the sets from the most recent occurrence of the lift,
	// ordered by set number. Empty when the lift has never been performed.
	LastSets(ctx context.Context, liftID primitive.ObjectID) ([]domain.WorkoutSet, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo repository.WorkoutRepository
	liftRepo    repository.LiftRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, liftRepo repository.LiftRepository) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		liftRepo:    liftRepo,
	}
}

// --- Workouts ---

// CreateWorkout starts a new session dated today with an empty subtitle.
func (s *workoutService) CreateWorkout(ctx context.Context) (*domain.Workout, error) {
	workout := &domain.Workout{Date: time.Now().UTC()}
	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id
	return workout, nil
}

func (s *workoutService) GetWorkouts(ctx context.Context) ([]domain.Workout, error) {
	return s.workoutRepo.GetAll(ctx)
}

func (s *workoutService) GetWorkoutByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) UpdateSubtitle(ctx context.Context, id primitive.ObjectID, subtitle string) (*domain.Workout, error) {
	if err := s.workoutRepo.UpdateSubtitle(ctx, id, subtitle); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return s.GetWorkoutByID(ctx, id)
}

func (s *workoutService) DeleteWorkout(ctx context.Context, id primitive.ObjectID) error {
	if err := s.workoutRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

// --- Lift occurrences ---

func (s *workoutService) AddLiftToWorkout(ctx context.Context, workoutID, liftID primitive.ObjectID, displayOrder int) (*domain.WorkoutLift, error) {
	if _, err := s.GetWorkoutByID(ctx, workoutID); err != nil {
		return nil, err
	}
	if _, err := s.liftRepo.GetByID(ctx, liftID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLiftNotFound
		}
		return nil, err
	}

	occurrence := &domain.WorkoutLift{
		WorkoutID:    workoutID,
		LiftID:       liftID,
		DisplayOrder: displayOrder,
		Sets:         []domain.WorkoutSet{},
	}
	id, err := s.workoutRepo.AddLift(ctx, occurrence)
	if err != nil {
		return nil, err
	}
	occurrence.ID = id
	return occurrence, nil
}

func (s *workoutService) GetWorkoutLifts(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutLift, error) {
	return s.workoutRepo.GetLiftsByWorkoutID(ctx, workoutID)
}

// RemoveLiftFromWorkout deletes one occurrence and its embedded sets. The
// workout id guards against removing an occurrence through the wrong workout.
func (s *workoutService) RemoveLiftFromWorkout(ctx context.Context, workoutID, liftOccurrenceID primitive.ObjectID) error {
	occurrence, err := s.getOccurrence(ctx, liftOccurrenceID)
	if err != nil {
		return err
	}
	if occurrence.WorkoutID != workoutID {
		return ErrWorkoutLiftNotFound
	}

	if err := s.workoutRepo.RemoveLift(ctx, liftOccurrenceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutLiftNotFound
		}
		return err
	}
	return nil
}

// --- Sets ---

// AddSet appends a set to the occurrence with the next sequential set number.
func (s *workoutService) AddSet(ctx context.Context, liftOccurrenceID primitive.ObjectID, reps *int, weight *float64) (*domain.WorkoutSet, error) {
	occurrence, err := s.getOccurrence(ctx, liftOccurrenceID)
	if err != nil {
		return nil, err
	}

	next := 0
	for _, set := range occurrence.Sets {
		if set.SetNumber > next {
			next = set.SetNumber
		}
	}
	newSet := domain.WorkoutSet{SetNumber: next + 1, Reps: reps, Weight: weight}
	occurrence.Sets = append(occurrence.Sets, newSet)

	if err := s.workoutRepo.ReplaceSets(ctx, liftOccurrenceID, occurrence.Sets); err != nil {
		return nil, err
	}
	return &newSet, nil
}

// UpdateSet patches reps and/or weight of one set; nil arguments leave the
// current value untouched.
func (s *workoutService) UpdateSet(ctx context.Context, liftOccurrenceID primitive.ObjectID, setNumber int, reps *int, weight *float64) (*domain.WorkoutSet, error) {
	occurrence, err := s.getOccurrence(ctx, liftOccurrenceID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, set := range occurrence.Sets {
		if set.SetNumber == setNumber {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrSetNotFound
	}

	if reps != nil {
		occurrence.Sets[idx].Reps = reps
	}
	if weight != nil {
		occurrence.Sets[idx].Weight = weight
	}

	if err := s.workoutRepo.ReplaceSets(ctx, liftOccurrenceID, occurrence.Sets); err != nil {
		return nil, err
	}
	return &occurrence.Sets[idx], nil
}

// DeleteSet removes one set and renumbers the rest, keeping set numbers
// sequential within the occurrence.
func (s *workoutService) DeleteSet(ctx context.Context, liftOccurrenceID primitive.ObjectID, setNumber int) error {
	occurrence, err := s.getOccurrence(ctx, liftOccurrenceID)
	if err != nil {
		return err
	}

	remaining := make([]domain.WorkoutSet, 0, len(occurrence.Sets))
	found := false
	for _, set := range occurrence.Sets {
		if set.SetNumber == setNumber {
			found = true
			continue
		}
		remaining = append(remaining, set)
	}
	if !found {
		return ErrSetNotFound
	}

	sort.Slice(remaining, func(i, j int) bool { return remaining[i].SetNumber < remaining[j].SetNumber })
	for i := range remaining {
		remaining[i].SetNumber = i + 1
	}

	return s.workoutRepo.ReplaceSets(ctx, liftOccurrenceID, remaining)
}

// LastSets returns the sets of the lift's most recent occurrence.
func (s *workoutService) LastSets(ctx context.Context, liftID primitive.ObjectID) ([]domain.WorkoutSet, error) {
	if _, err := s.liftRepo.GetByID(ctx, liftID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLiftNotFound
		}
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

	dates := make(map[primitive.ObjectID]time.Time, len(workouts))
	for _, w := range workouts {
		dates[w.ID] = w.Date
	}

	var best *domain.WorkoutLift
	var bestDate time.Time
	for i := range occurrences {
		occ := &occurrences[i]
		if occ.LiftID != liftID {
			continue
		}
		d, ok := dates[occ.WorkoutID]
		if !ok {
			continue
		}
		if best == nil || d.After(bestDate) || (d.Equal(bestDate) && occ.ID.Hex() > best.ID.Hex()) {
			best = occ
			bestDate = d
		}
	}
	if best == nil {
		return []domain.WorkoutSet{}, nil
	}

	sets := make([]domain.WorkoutSet, len(best.Sets))
	copy(sets, best.Sets)
	sort.Slice(sets, func(i, j int) bool { return sets[i].SetNumber < sets[j].SetNumber })
	return sets, nil
}

func (s *workoutService) getOccurrence(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLift, error) {
	occurrence, err := s.workoutRepo.GetLiftByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutLiftNotFound
		}
		return nil, err
	}
	return occurrence, nil
}
