package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaindalf/internal/domain"
)

func TestGetLiftHistoryUnknownLift(t *testing.T) {
	svc := NewProgressService(&fakeLiftRepo{}, &fakeWorkoutRepo{})

	_, err := svc.GetLiftHistory(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrLiftNotFound)
}

func TestGetLiftHistoryNoOccurrences(t *testing.T) {
	liftRepo := &fakeLiftRepo{}
	svc := NewProgressService(liftRepo, &fakeWorkoutRepo{})
	ctx := context.Background()

	lift := domain.Lift{Name: "Bench Press"}
	_, err := liftRepo.Create(ctx, &lift)
	require.NoError(t, err)

	points, err := svc.GetLiftHistory(ctx, lift.ID)
	require.NoError(t, err)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestGetProgressSeries(t *testing.T) {
	liftRepo := &fakeLiftRepo{}
	workoutRepo := &fakeWorkoutRepo{}
	svc := NewProgressService(liftRepo, workoutRepo)
	ctx := context.Background()

	lift := domain.Lift{Name: "Bench Press"}
	_, err := liftRepo.Create(ctx, &lift)
	require.NoError(t, err)

	w1 := domain.Workout{Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	_, err = workoutRepo.Create(ctx, &w1)
	require.NoError(t, err)
	w2 := domain.Workout{Date: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)}
	_, err = workoutRepo.Create(ctx, &w2)
	require.NoError(t, err)

	occ1 := domain.WorkoutLift{WorkoutID: w1.ID, LiftID: lift.ID, Sets: []domain.WorkoutSet{
		{SetNumber: 1, Reps: intP(8), Weight: floatP(50)},
	}}
	_, err = workoutRepo.AddLift(ctx, &occ1)
	require.NoError(t, err)
	occ2 := domain.WorkoutLift{WorkoutID: w2.ID, LiftID: lift.ID, Sets: []domain.WorkoutSet{
		{SetNumber: 1, Reps: intP(8), Weight: floatP(55)},
	}}
	_, err = workoutRepo.AddLift(ctx, &occ2)
	require.NoError(t, err)

	points, err := svc.GetProgress(ctx)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, w1.ID, points[0].WorkoutID)
	require.NotNil(t, points[0].Strength)
	assert.InDelta(t, 1.0, *points[0].Strength, 1e-9)
	require.NotNil(t, points[1].Strength)
	assert.InDelta(t, 1.1, *points[1].Strength, 1e-9)
}
