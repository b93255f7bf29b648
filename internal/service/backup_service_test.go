package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gaindalf/internal/domain"
)

type fakeObjectStorage struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeObjectStorage) Put(_ context.Context, objectKey, contentType string, body []byte) error {
	s.objects[objectKey] = body
	s.types[objectKey] = contentType
	return nil
}

func (s *fakeObjectStorage) Delete(_ context.Context, objectKey string) error {
	delete(s.objects, objectKey)
	return nil
}

func TestBackupRunExportsEverything(t *testing.T) {
	groupRepo := &fakeGroupRepo{}
	liftRepo := &fakeLiftRepo{}
	conflictRepo := &fakeConflictRepo{}
	workoutRepo := &fakeWorkoutRepo{}
	store := newFakeObjectStorage()
	svc := NewBackupService(groupRepo, liftRepo, conflictRepo, workoutRepo, store)
	ctx := context.Background()

	group := domain.MuscleGroup{Name: "Chest"}
	_, err := groupRepo.Create(ctx, &group)
	require.NoError(t, err)
	lift := domain.Lift{Name: "Bench Press"}
	_, err = liftRepo.Create(ctx, &lift)
	require.NoError(t, err)
	workout := domain.Workout{Subtitle: "Heavy push day"}
	_, err = workoutRepo.Create(ctx, &workout)
	require.NoError(t, err)

	key, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "backups/"))
	assert.True(t, strings.HasSuffix(key, ".json"))
	assert.Equal(t, "application/json", store.types[key])

	var export BackupExport
	require.NoError(t, json.Unmarshal(store.objects[key], &export))
	assert.False(t, export.ExportedAt.IsZero())
	require.Len(t, export.MuscleGroups, 1)
	assert.Equal(t, "Chest", export.MuscleGroups[0].Name)
	require.Len(t, export.Lifts, 1)
	require.Len(t, export.Workouts, 1)
	assert.Equal(t, "Heavy push day", export.Workouts[0].Subtitle)
}

func TestBackupRunKeysAreUnique(t *testing.T) {
	store := newFakeObjectStorage()
	svc := NewBackupService(&fakeGroupRepo{}, &fakeLiftRepo{}, &fakeConflictRepo{}, &fakeWorkoutRepo{}, store)
	ctx := context.Background()

	first, err := svc.Run(ctx)
	require.NoError(t, err)
	second, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Len(t, store.objects, 2)
}
