package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaindalf/internal/domain"
	"gaindalf/internal/repository"
)

// --- Error Definitions ---
var (
	ErrMuscleGroupNotFound = errors.New("muscle group not found")
	ErrLiftNotFound        = errors.New("lift not found")
	ErrConflictNotFound    = errors.New("conflict not found")
	ErrNameTaken           = errors.New("name already exists")
	ErrSelfConflict        = errors.New("a muscle group cannot conflict with itself")
	ErrConflictExists      = errors.New("conflict already exists")
	ErrValidationFailed    = errors.New("validation failed")
)

// CatalogService manages the training catalogue: muscle groups, lifts and
// their group tags, and the symmetric conflict pairs between groups.
type CatalogService interface {
	CreateMuscleGroup(ctx context.Context, name string) (*domain.MuscleGroup, error)
	GetMuscleGroups(ctx context.Context) ([]domain.MuscleGroup, error)
	RenameMuscleGroup(ctx context.Context, id primitive.ObjectID, name string) (*domain.MuscleGroup, error)
	DeleteMuscleGroup(ctx context.Context, id primitive.ObjectID) error

	CreateLift(ctx context.Context, name string, muscleGroupIDs []primitive.ObjectID) (*domain.Lift, error)
	GetLifts(ctx context.Context) ([]domain.Lift, error)
	UpdateLift(ctx context.Context, id primitive.ObjectID, name *string, muscleGroupIDs []primitive.ObjectID) (*domain.Lift, error)
	DeleteLift(ctx context.Context, id primitive.ObjectID) error

	CreateConflict(ctx context.Context, groupAID, groupBID primitive.ObjectID) (*domain.MuscleGroupConflict, error)
	GetConflicts(ctx context.Context) ([]domain.MuscleGroupConflict, error)
	DeleteConflict(ctx context.Context, id primitive.ObjectID) error

	GetMuscleGroupByID(ctx context.Context, id primitive.ObjectID) (*domain.MuscleGroup, error)
	GetLiftByID(ctx context.Context, id primitive.ObjectID) (*domain.Lift, error)
}

// catalogService implements the CatalogService interface.
type catalogService struct {
	groupRepo    repository.MuscleGroupRepository
	liftRepo     repository.LiftRepository
	conflictRepo repository.ConflictRepository
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(
	groupRepo repository.MuscleGroupRepository,
	liftRepo repository.LiftRepository,
	conflictRepo repository.ConflictRepository,
) CatalogService {
	return &catalogService{
		groupRepo:    groupRepo,
		liftRepo:     liftRepo,
		conflictRepo: conflictRepo,
	}
}

// --- Muscle groups ---

func (s *catalogService) CreateMuscleGroup(ctx context.Context, name string) (*domain.MuscleGroup, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}

	group := &domain.MuscleGroup{Name: name}
	id, err := s.groupRepo.Create(ctx, group)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	group.ID = id
	return group, nil
}

func (s *catalogService) GetMuscleGroups(ctx context.Context) ([]domain.MuscleGroup, error) {
	return s.groupRepo.GetAll(ctx)
}

func (s *catalogService) RenameMuscleGroup(ctx context.Context, id primitive.ObjectID, name string) (*domain.MuscleGroup, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}

	if err := s.groupRepo.Rename(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrMuscleGroupNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return s.GetMuscleGroupByID(ctx, id)
}

func (s *catalogService) DeleteMuscleGroup(ctx context.Context, id primitive.ObjectID) error {
	if err := s.groupRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMuscleGroupNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) GetMuscleGroupByID(ctx context.Context, id primitive.ObjectID) (*domain.MuscleGroup, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMuscleGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// --- Lifts ---

func (s *catalogService) CreateLift(ctx context.Context, name string, muscleGroupIDs []primitive.ObjectID) (*domain.Lift, error) {
	if name == "" {
		return nil, ErrValidationFailed
	}
	if err := s.verifyMuscleGroupsExist(ctx, muscleGroupIDs); err != nil {
		return nil, err
	}

	lift := &domain.Lift{Name: name, MuscleGroupIDs: muscleGroupIDs}
	id, err := s.liftRepo.Create(ctx, lift)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	lift.ID = id
	return lift, nil
}

func (s *catalogService) GetLifts(ctx context.Context) ([]domain.Lift, error) {
	return s.liftRepo.GetAll(ctx)
}

// UpdateLift applies a partial update: a nil name keeps the current one, and a
// nil group id slice keeps the current tags (an empty non-nil slice clears
// them).
func (s *catalogService) UpdateLift(ctx context.Context, id primitive.ObjectID, name *string, muscleGroupIDs []primitive.ObjectID) (*domain.Lift, error) {
	lift, err := s.GetLiftByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		if *name == "" {
			return nil, ErrValidationFailed
		}
		lift.Name = *name
	}
	if muscleGroupIDs != nil {
		if err := s.verifyMuscleGroupsExist(ctx, muscleGroupIDs); err != nil {
			return nil, err
		}
		lift.MuscleGroupIDs = muscleGroupIDs
	}

	if err := s.liftRepo.Update(ctx, lift); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrLiftNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return lift, nil
}

func (s *catalogService) DeleteLift(ctx context.Context, id primitive.ObjectID) error {
	if err := s.liftRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLiftNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) GetLiftByID(ctx context.Context, id primitive.ObjectID) (*domain.Lift, error) {
	lift, err := s.liftRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLiftNotFound
		}
		return nil, err
	}
	return lift, nil
}

func (s *catalogService) verifyMuscleGroupsExist(ctx context.Context, ids []primitive.ObjectID) error {
	for _, id := range ids {
		if _, err := s.groupRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrMuscleGroupNotFound
			}
			return err
		}
	}
	return nil
}

// --- Conflicts ---

// CreateConflict records a symmetric conflict pair. Self-conflicts and
// duplicates in either orientation are rejected.
func (s *catalogService) CreateConflict(ctx context.Context, groupAID, groupBID primitive.ObjectID) (*domain.MuscleGroupConflict, error) {
	if groupAID == groupBID {
		return nil, ErrSelfConflict
	}
	if _, err := s.GetMuscleGroupByID(ctx, groupAID); err != nil {
		return nil, err
	}
	if _, err := s.GetMuscleGroupByID(ctx, groupBID); err != nil {
		return nil, err
	}

	_, err := s.conflictRepo.FindPair(ctx, groupAID, groupBID)
	if err == nil {
		return nil, ErrConflictExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	conflict := &domain.MuscleGroupConflict{GroupAID: groupAID, GroupBID: groupBID}
	id, err := s.conflictRepo.Create(ctx, conflict)
	if err != nil {
		return nil, err
	}
	conflict.ID = id
	return conflict, nil
}

func (s *catalogService) GetConflicts(ctx context.Context) ([]domain.MuscleGroupConflict, error) {
	return s.conflictRepo.GetAll(ctx)
}

func (s *catalogService) DeleteConflict(ctx context.Context, id primitive.ObjectID) error {
	if err := s.conflictRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrConflictNotFound
		}
		return err
	}
	return nil
}
