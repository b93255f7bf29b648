// Package engine holds the two analytical cores of the tracker: lift
// suggestion and progress index computation. Both operate on an immutable
// Snapshot assembled by the caller and never touch storage themselves, so
// they are pure, re-entrant, and trivially testable. Every call recomputes
// from scratch; there is no caching between invocations.
package engine

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaindalf/internal/domain"
)

// Snapshot is a consistent, read-only view of the dataset taken at one point
// in time. Callers must not mutate it while an engine call is running.
type Snapshot struct {
	Groups       []domain.MuscleGroup
	Lifts        []domain.Lift
	Conflicts    []domain.MuscleGroupConflict
	Workouts     []domain.Workout
	WorkoutLifts []domain.WorkoutLift
}

// liftByID returns the lift with the given id, if present.
func (s *Snapshot) liftByID(id primitive.ObjectID) (domain.Lift, bool) {
	for _, l := range s.Lifts {
		if l.ID == id {
			return l, true
		}
	}
	return domain.Lift{}, false
}

// workoutDates returns a lookup from workout id to workout date.
func (s *Snapshot) workoutDates() map[primitive.ObjectID]time.Time {
	dates := make(map[primitive.ObjectID]time.Time, len(s.Workouts))
	for _, w := range s.Workouts {
		dates[w.ID] = w.Date
	}
	return dates
}

// sortedIDs returns the ids in ascending hex order. Hex order is the
// deterministic tie-break used throughout the engines.
func sortedIDs(ids map[primitive.ObjectID]struct{}) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Hex() < out[j].Hex()
	})
	return out
}
