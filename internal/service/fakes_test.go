package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaindalf/internal/domain"
	"gaindalf/internal/repository"
)

// In-memory repository fakes. Each mirrors the duplicate/not-found behaviour
// of the Mongo implementations so service error mapping can be tested without
// a database.

// --- Muscle groups ---

type fakeGroupRepo struct {
	groups []domain.MuscleGroup
}

func (r *fakeGroupRepo) Create(_ context.Context, group *domain.MuscleGroup) (primitive.ObjectID, error) {
	for _, g := range r.groups {
		if g.Name == group.Name {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	group.ID = primitive.NewObjectID()
	r.groups = append(r.groups, *group)
	return group.ID, nil
}

func (r *fakeGroupRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.MuscleGroup, error) {
	for i := range r.groups {
		if r.groups[i].ID == id {
			g := r.groups[i]
			return &g, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeGroupRepo) GetAll(_ context.Context) ([]domain.MuscleGroup, error) {
	return append([]domain.MuscleGroup(nil), r.groups...), nil
}

func (r *fakeGroupRepo) Rename(_ context.Context, id primitive.ObjectID, name string) error {
	for _, g := range r.groups {
		if g.ID != id && g.Name == name {
			return repository.ErrDuplicate
		}
	}
	for i := range r.groups {
		if r.groups[i].ID == id {
			r.groups[i].Name = name
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeGroupRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range r.groups {
		if r.groups[i].ID == id {
			r.groups = append(r.groups[:i], r.groups[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- Lifts ---

type fakeLiftRepo struct {
	lifts []domain.Lift
}

func (r *fakeLiftRepo) Create(_ context.Context, lift *domain.Lift) (primitive.ObjectID, error) {
	for _, l := range r.lifts {
		if l.Name == lift.Name {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	lift.ID = primitive.NewObjectID()
	r.lifts = append(r.lifts, *lift)
	return lift.ID, nil
}

func (r *fakeLiftRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Lift, error) {
	for i := range r.lifts {
		if r.lifts[i].ID == id {
			l := r.lifts[i]
			return &l, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeLiftRepo) GetAll(_ context.Context) ([]domain.Lift, error) {
	return append([]domain.Lift(nil), r.lifts...), nil
}

func (r *fakeLiftRepo) Update(_ context.Context, lift *domain.Lift) error {
	for _, l := range r.lifts {
		if l.ID != lift.ID && l.Name == lift.Name {
			return repository.ErrDuplicate
		}
	}
	for i := range r.lifts {
		if r.lifts[i].ID == lift.ID {
			r.lifts[i] = *lift
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeLiftRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range r.lifts {
		if r.lifts[i].ID == id {
			r.lifts = append(r.lifts[:i], r.lifts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- Conflicts ---

type fakeConflictRepo struct {
	conflicts []domain.MuscleGroupConflict
}

func (r *fakeConflictRepo) Create(_ context.Context, conflict *domain.MuscleGroupConflict) (primitive.ObjectID, error) {
	conflict.ID = primitive.NewObjectID()
	r.conflicts = append(r.conflicts, *conflict)
	return conflict.ID, nil
}

func (r *fakeConflictRepo) FindPair(_ context.Context, groupAID, groupBID primitive.ObjectID) (*domain.MuscleGroupConflict, error) {
	for i := range r.conflicts {
		c := r.conflicts[i]
		if (c.GroupAID == groupAID && c.GroupBID == groupBID) ||
			(c.GroupAID == groupBID && c.GroupBID == groupAID) {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeConflictRepo) GetAll(_ context.Context) ([]domain.MuscleGroupConflict, error) {
	return append([]domain.MuscleGroupConflict(nil), r.conflicts...), nil
}

func (r *fakeConflictRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range r.conflicts {
		if r.conflicts[i].ID == id {
			r.conflicts = append(r.conflicts[:i], r.conflicts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- Workouts ---

type fakeWorkoutRepo struct {
	workouts    []domain.Workout
	occurrences []domain.WorkoutLift
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	workout.ID = primitive.NewObjectID()
	r.workouts = append(r.workouts, *workout)
	return workout.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	for i := range r.workouts {
		if r.workouts[i].ID == id {
			w := r.workouts[i]
			return &w, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) GetAll(_ context.Context) ([]domain.Workout, error) {
	return append([]domain.Workout(nil), r.workouts...), nil
}

func (r *fakeWorkoutRepo) UpdateSubtitle(_ context.Context, id primitive.ObjectID, subtitle string) error {
	for i := range r.workouts {
		if r.workouts[i].ID == id {
			r.workouts[i].Subtitle = subtitle
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeWorkoutRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range r.workouts {
		if r.workouts[i].ID == id {
			r.workouts = append(r.workouts[:i], r.workouts[i+1:]...)
			kept := r.occurrences[:0]
			for _, occ := range r.occurrences {
				if occ.WorkoutID != id {
					kept = append(kept, occ)
				}
			}
			r.occurrences = kept
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeWorkoutRepo) AddLift(_ context.Context, lift *domain.WorkoutLift) (primitive.ObjectID, error) {
	lift.ID = primitive.NewObjectID()
	if lift.Sets == nil {
		lift.Sets = []domain.WorkoutSet{}
	}
	r.occurrences = append(r.occurrences, *lift)
	return lift.ID, nil
}

func (r *fakeWorkoutRepo) GetLiftByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutLift, error) {
	for i := range r.occurrences {
		if r.occurrences[i].ID == id {
			occ := r.occurrences[i]
			occ.Sets = append([]domain.WorkoutSet(nil), r.occurrences[i].Sets...)
			return &occ, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) GetLiftsByWorkoutID(_ context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutLift, error) {
	var out []domain.WorkoutLift
	for _, occ := range r.occurrences {
		if occ.WorkoutID == workoutID {
			out = append(out, occ)
		}
	}
	return out, nil
}

func (r *fakeWorkoutRepo) GetAllLifts(_ context.Context) ([]domain.WorkoutLift, error) {
	return append([]domain.WorkoutLift(nil), r.occurrences...), nil
}

func (r *fakeWorkoutRepo) RemoveLift(_ context.Context, id primitive.ObjectID) error {
	for i := range r.occurrences {
		if r.occurrences[i].ID == id {
			r.occurrences = append(r.occurrences[:i], r.occurrences[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeWorkoutRepo) ReplaceSets(_ context.Context, liftOccurrenceID primitive.ObjectID, sets []domain.WorkoutSet) error {
	for i := range r.occurrences {
		if r.occurrences[i].ID == liftOccurrenceID {
			r.occurrences[i].Sets = append([]domain.WorkoutSet(nil), sets...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- Users ---

type fakeUserRepo struct {
	users []domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	r.users = append(r.users, *user)
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// --- Test data helpers ---

func intP(v int) *int { return &v }

func floatP(v float64) *float64 { return &v }

func strP(v string) *string { return &v }
