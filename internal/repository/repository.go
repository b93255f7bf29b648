package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaindalf/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// MuscleGroupRepository defines the interface for muscle group data.
type MuscleGroupRepository interface {
	Create(ctx context.Context, group *domain.MuscleGroup) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MuscleGroup, error)
	GetAll(ctx context.Context) ([]domain.MuscleGroup, error)
	Rename(ctx context.Context, id primitive.ObjectID, name string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// LiftRepository defines the interface for lift data.
type LiftRepository interface {
	Create(ctx context.Context, lift *domain.Lift) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Lift, error)
	GetAll(ctx context.Context) ([]domain.Lift, error)
	Update(ctx context.Context, lift *domain.Lift) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ConflictRepository defines the interface for muscle group conflict pairs.
type ConflictRepository interface {
	Create(ctx context.Context, conflict *domain.MuscleGroupConflict) (primitive.ObjectID, error)
	// FindPair looks the pair up in either orientation.
	FindPair(ctx context.Context, groupAID, groupBID primitive.ObjectID) (*domain.MuscleGroupConflict, error)
	GetAll(ctx context.Context) ([]domain.MuscleGroupConflict, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// WorkoutRepository defines the interface for workouts and the lift
// occurrences (with their embedded sets) they own.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetAll(ctx context.Context) ([]domain.Workout, error)
	UpdateSubtitle(ctx context.Context, id primitive.ObjectID, subtitle string) error
	// Delete removes the workout and cascades to its lift occurrences.
	Delete(ctx context.Context, id primitive.ObjectID) error

	AddLift(ctx context.Context, lift *domain.WorkoutLift) (primitive.ObjectID, error)
	GetLiftByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLift, error)
	GetLiftsByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutLift, error)
	GetAllLifts(ctx context.Context) ([]domain.WorkoutLift, error)
	RemoveLift(ctx context.Context, id primitive.ObjectID) error
	// ReplaceSets overwrites the embedded set list of one occurrence.
	ReplaceSets(ctx context.Context, liftOccurrenceID primitive.ObjectID, sets []domain.WorkoutSet) error
}

// UserRepository defines the interface for the single account.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
