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

func newWorkoutFixture(t *testing.T) (WorkoutService, *fakeWorkoutRepo, *fakeLiftRepo, domain.Lift) {
	t.Helper()
	workoutRepo := &fakeWorkoutRepo{}
	liftRepo := &fakeLiftRepo{}

	lift := domain.Lift{Name: "Bench Press"}
	_, err := liftRepo.Create(context.Background(), &lift)
	require.NoError(t, err)

	return NewWorkoutService(workoutRepo, liftRepo), workoutRepo, liftRepo, lift
}

func TestCreateWorkoutDefaultsToToday(t *testing.T) {
	svc, _, _, _ := newWorkoutFixture(t)

	workout, err := svc.CreateWorkout(context.Background())
	require.NoError(t, err)
	assert.False(t, workout.ID.IsZero())
	assert.WithinDuration(t, time.Now().UTC(), workout.Date, time.Minute)
	assert.Empty(t, workout.Subtitle)
}

func TestUpdateSubtitle(t *testing.T) {
	svc, _, _, _ := newWorkoutFixture(t)
	ctx := context.Background()

	workout, err := svc.CreateWorkout(ctx)
	require.NoError(t, err)

	updated, err := svc.UpdateSubtitle(ctx, workout.ID, "Heavy push day")
	require.NoError(t, err)
	assert.Equal(t, "Heavy push day", updated.Subtitle)

	_, err = svc.UpdateSubtitle(ctx, primitive.NewObjectID(), "nope")
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestAddLiftToWorkoutValidatesBothSides(t *testing.T) {
	svc, _, _, lift := newWorkoutFixture(t)
	ctx := context.Background()

	workout, err := svc.CreateWorkout(ctx)
	require.NoError(t, err)

	_, err = svc.AddLiftToWorkout(ctx, primitive.NewObjectID(), lift.ID, 0)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	_, err = svc.AddLiftToWorkout(ctx, workout.ID, primitive.NewObjectID(), 0)
	assert.ErrorIs(t, err, ErrLiftNotFound)

	occurrence, err := svc.AddLiftToWorkout(ctx, workout.ID, lift.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, workout.ID, occurrence.WorkoutID)
	assert.Equal(t, lift.ID, occurrence.LiftID)
	assert.Equal(t, 2, occurrence.DisplayOrder)
	assert.NotNil(t, occurrence.Sets)
	assert.Empty(t, occurrence.Sets)
}

func TestRemoveLiftFromWrongWorkout(t *testing.T) {
	svc, _, _, lift := newWorkoutFixture(t)
	ctx := context.Background()

	workout, err := svc.CreateWorkout(ctx)
	require.NoError(t, err)
	other, err := svc.CreateWorkout(ctx)
	require.NoError(t, err)

	occurrence, err := svc.AddLiftToWorkout(ctx, workout.ID, lift.ID, 0)
	require.NoError(t, err)

	err = svc.RemoveLiftFromWorkout(ctx, other.ID, occurrence.ID)
	assert.ErrorIs(t, err, ErrWorkoutLiftNotFound)

	err = svc.RemoveLiftFromWorkout(ctx, workout.ID, occurrence.ID)
	assert.NoError(t, err)
}

func TestDeleteWorkoutCascadesToOccurrences(t *testing.T) {
	svc, workoutRepo, _, lift := newWorkoutFixture(t)
	ctx := context.Background()

	workout, err := svc.CreateWorkout(ctx)
	require.NoError(t, err)
	_, err = svc.AddLiftToWorkout(ctx, workout.ID, lift.ID, 0)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteWorkout(ctx, workout.ID))

	remaining, err := workoutRepo.GetAllLifts(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestAddSetNumbersSequentially(t *testing.T) {
	svc, _, _, lift := newWorkoutFixture(t)
	ctx := context.Background()

	workout, err := svc.CreateWorkout(ctx)
	require.NoError(t, err)
	occurrence, err := svc.AddLiftToWorkout(ctx, workout.ID, lift.ID, 0)
	require.NoError(t, err)

	first, err := svc.AddSet(ctx, occurrence.ID, intP(8), floatP(80))
	require.NoError(t, err)
	assert.Equal(t, 1, first.SetNumber)

	second, err := svc.AddSet(ctx, occurrence.ID, intP(8), floatP(80))
	require.NoError(t, err)
	assert.Equal(t, 2, second.SetNumber)

	// An unfilled set is allowed; both values stay nil.
	third, err := svc.AddSet(ctx, occurrence.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, third.SetNumber)
	assert.Nil(t, third.Reps)
	assert.Nil(t, third.Weight)
}

func TestUpdateSetPatchesOnlyGivenFields(t *testing.T) {
	svc, _, _, lift := newWorkoutFixture(t)
	ctx := context.Background()

	workout, err := svc.CreateWorkout(ctx)
	require.NoError(t, err)
	occurrence, err := svc.AddLiftToWorkout(ctx, workout.ID, lift.ID, 0)
	require.NoError(t, err)
	_, err = svc.AddSet(ctx, occurrence.ID, intP(8), floatP(80))
	require.NoError(t, err)

	updated, err := svc.UpdateSet(ctx, occurrence.ID, 1, nil, floatP(82.5))
	require.NoError(t, err)
	require.NotNil(t, updated.Reps)
	assert.Equal(t, 8, *updated.Reps)
	require.NotNil(t, updated.Weight)
	assert.Equal(t, 82.5, *updated.Weight)

	_, err = svc.UpdateSet(ctx, occurrence.ID, 99, intP(5), nil)
	assert.ErrorIs(t, err, ErrSetNotFound)
}

func TestDeleteSetRenumbersRemaining(t *testing.T) {
	svc, _, _, lift := newWorkoutFixture(t)
	ctx := context.Background()

	workout, err := svc.CreateWorkout(ctx)
	require.NoError(t, err)
	occurrence, err := svc.AddLiftToWorkout(ctx, workout.ID, lift.ID, 0)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.AddSet(ctx, occurrence.ID, intP(8+i), floatP(80))
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteSet(ctx, occurrence.ID, 2))

	lifts, err := svc.GetWorkoutLifts(ctx, workout.ID)
	require.NoError(t, err)
	require.Len(t, lifts, 1)
	sets := lifts[0].Sets
	require.Len(t, sets, 2)
	assert.Equal(t, 1, sets[0].SetNumber)
	assert.Equal(t, 8, *sets[0].Reps)
	assert.Equal(t, 2, sets[1].SetNumber)
	assert.Equal(t, 10, *sets[1].Reps)

	// The next added set continues from the new maximum.
	next, err := svc.AddSet(ctx, occurrence.ID, intP(6), floatP(85))
	require.NoError(t, err)
	assert.Equal(t, 3, next.SetNumber)

	assert.ErrorIs(t, svc.DeleteSet(ctx, occurrence.ID, 99), ErrSetNotFound)
}

func TestLastSetsReturnsMostRecentOccurrence(t *testing.T) {
	svc, workoutRepo, _, lift := newWorkoutFixture(t)
	ctx := context.Background()

	older := domain.Workout{Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	_, err := workoutRepo.Create(ctx, &older)
	require.NoError(t, err)
	newer := domain.Workout{Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}
	_, err = workoutRepo.Create(ctx, &newer)
	require.NoError(t, err)

	oldOcc, err := svc.AddLiftToWorkout(ctx, older.ID, lift.ID, 0)
	require.NoError(t, err)
	_, err = svc.AddSet(ctx, oldOcc.ID, intP(8), floatP(70))
	require.NoError(t, err)

	newOcc, err := svc.AddLiftToWorkout(ctx, newer.ID, lift.ID, 0)
	require.NoError(t, err)
	_, err = svc.AddSet(ctx, newOcc.ID, intP(6), floatP(75))
	require.NoError(t, err)

	sets, err := svc.LastSets(ctx, lift.ID)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, 75.0, *sets[0].Weight)
}

func TestLastSetsUnknownLift(t *testing.T) {
	svc, _, _, _ := newWorkoutFixture(t)

	_, err := svc.LastSets(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrLiftNotFound)
}

func TestLastSetsNoHistory(t *testing.T) {
	svc, _, _, lift := newWorkoutFixture(t)

	sets, err := svc.LastSets(context.Background(), lift.ID)
	require.NoError(t, err)
	assert.NotNil(t, sets)
	assert.Empty(t, sets)
}
