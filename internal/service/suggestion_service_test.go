package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaindalf/internal/domain"
	"gaindalf/internal/engine"
)

type suggestionFixture struct {
	svc         SuggestionService
	groupRepo   *fakeGroupRepo
	liftRepo    *fakeLiftRepo
	workoutRepo *fakeWorkoutRepo
}

func newSuggestionFixture() *suggestionFixture {
	groupRepo := &fakeGroupRepo{}
	liftRepo := &fakeLiftRepo{}
	conflictRepo := &fakeConflictRepo{}
	workoutRepo := &fakeWorkoutRepo{}
	return &suggestionFixture{
		svc:         NewSuggestionService(groupRepo, liftRepo, conflictRepo, workoutRepo),
		groupRepo:   groupRepo,
		liftRepo:    liftRepo,
		workoutRepo: workoutRepo,
	}
}

func TestSuggestUnknownWorkout(t *testing.T) {
	f := newSuggestionFixture()
	ctx := context.Background()

	group := domain.MuscleGroup{Name: "Chest"}
	_, err := f.groupRepo.Create(ctx, &group)
	require.NoError(t, err)

	_, err = f.svc.Suggest(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestSuggestEmptyCatalogue(t *testing.T) {
	f := newSuggestionFixture()
	ctx := context.Background()

	workout := domain.Workout{}
	_, err := f.workoutRepo.Create(ctx, &workout)
	require.NoError(t, err)

	_, err = f.svc.Suggest(ctx, workout.ID)
	assert.ErrorIs(t, err, engine.ErrNoMuscleGroups)
}

func TestSuggestResolvesNames(t *testing.T) {
	f := newSuggestionFixture()
	ctx := context.Background()

	group := domain.MuscleGroup{Name: "Back"}
	_, err := f.groupRepo.Create(ctx, &group)
	require.NoError(t, err)
	lift := domain.Lift{Name: "Barbell Row", MuscleGroupIDs: []primitive.ObjectID{group.ID}}
	_, err = f.liftRepo.Create(ctx, &lift)
	require.NoError(t, err)
	workout := domain.Workout{}
	_, err = f.workoutRepo.Create(ctx, &workout)
	require.NoError(t, err)

	result, err := f.svc.Suggest(ctx, workout.ID)
	require.NoError(t, err)
	assert.Equal(t, group.ID, result.MuscleGroupID)
	assert.Equal(t, "Back", result.MuscleGroupName)
	assert.Equal(t, lift.ID, result.LiftID)
	assert.Equal(t, "Barbell Row", result.LiftName)
	assert.NotNil(t, result.PreviousSets)
	assert.Empty(t, result.PreviousSets)
}

func TestSuggestForGroupUnknownGroup(t *testing.T) {
	f := newSuggestionFixture()
	ctx := context.Background()

	group := domain.MuscleGroup{Name: "Chest"}
	_, err := f.groupRepo.Create(ctx, &group)
	require.NoError(t, err)
	workout := domain.Workout{}
	_, err = f.workoutRepo.Create(ctx, &workout)
	require.NoError(t, err)

	_, err = f.svc.SuggestForGroup(ctx, workout.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrMuscleGroupNotFound)
}

func TestSuggestForGroupNoLifts(t *testing.T) {
	f := newSuggestionFixture()
	ctx := context.Background()

	group := domain.MuscleGroup{Name: "Chest"}
	_, err := f.groupRepo.Create(ctx, &group)
	require.NoError(t, err)
	workout := domain.Workout{}
	_, err = f.workoutRepo.Create(ctx, &workout)
	require.NoError(t, err)

	_, err = f.svc.SuggestForGroup(ctx, workout.ID, group.ID)
	assert.ErrorIs(t, err, engine.ErrNoLiftsInGroup)
}
