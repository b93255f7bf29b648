package engine

import (
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaindalf/internal/domain"
)

var (
	// ErrNoMuscleGroups is returned when the catalogue contains no muscle
	// groups at all, so there is nothing to recommend.
	ErrNoMuscleGroups = errors.New("no muscle groups exist")

	// ErrNoLiftsInGroup is returned when the selected muscle group has no
	// tagged lifts. The caller decides whether to retry with another group.
	ErrNoLiftsInGroup = errors.New("no lifts found for muscle group")
)

// Suggestion is the engine's recommendation: which muscle group to train
// next, which lift within it, and the sets from the lift's most recent prior
// occurrence to pre-populate a new one.
type Suggestion struct {
	MuscleGroupID primitive.ObjectID
	LiftID        primitive.ObjectID
	PreviousSets  []domain.WorkoutSet
}

// Suggest recommends the next lift to add to the given workout. Muscle groups
// already present in the workout and groups conflicting with them are
// excluded; among the remaining candidates the least recently trained group
// wins, with never-trained groups winning over everything. Constraints are
// relaxed progressively when they exclude every group: first conflicts are
// ignored, then the used-group exclusion too, so the call only fails when the
// catalogue is empty or the winning group has no lifts.
func Suggest(snap *Snapshot, workoutID primitive.ObjectID) (*Suggestion, error) {
	if len(snap.Groups) == 0 {
		return nil, ErrNoMuscleGroups
	}

	used := usedGroupIDs(snap, workoutID)
	conflicting := conflictingGroupIDs(snap, used)

	all := make(map[primitive.ObjectID]struct{}, len(snap.Groups))
	for _, g := range snap.Groups {
		all[g.ID] = struct{}{}
	}

	// Candidate sets in decreasing strictness. The first non-empty one is
	// used; the last level is the full group set, so it never comes up empty.
	levels := []func() map[primitive.ObjectID]struct{}{
		func() map[primitive.ObjectID]struct{} { return subtract(all, used, conflicting) },
		func() map[primitive.ObjectID]struct{} { return subtract(all, used) },
		func() map[primitive.ObjectID]struct{} { return all },
	}

	var candidates map[primitive.ObjectID]struct{}
	for _, level := range levels {
		candidates = level()
		if len(candidates) > 0 {
			break
		}
	}

	groupID := pickStalest(sortedIDs(candidates), func(id primitive.ObjectID) *time.Time {
		return lastGroupTrained(snap, id, workoutID)
	})

	return suggestInGroup(snap, workoutID, groupID)
}

// SuggestForGroup recommends the next lift within a caller-chosen muscle
// group, skipping group selection entirely.
func SuggestForGroup(snap *Snapshot, workoutID, groupID primitive.ObjectID) (*Suggestion, error) {
	if len(snap.Groups) == 0 {
		return nil, ErrNoMuscleGroups
	}
	return suggestInGroup(snap, workoutID, groupID)
}

// suggestInGroup picks the least recently performed lift tagged with the
// group and assembles the final suggestion.
func suggestInGroup(snap *Snapshot, workoutID, groupID primitive.ObjectID) (*Suggestion, error) {
	liftIDs := make(map[primitive.ObjectID]struct{})
	for _, l := range snap.Lifts {
		if l.HasMuscleGroup(groupID) {
			liftIDs[l.ID] = struct{}{}
		}
	}
	if len(liftIDs) == 0 {
		return nil, ErrNoLiftsInGroup
	}

	liftID := pickStalest(sortedIDs(liftIDs), func(id primitive.ObjectID) *time.Time {
		return lastLiftTrained(snap, id, workoutID)
	})

	return &Suggestion{
		MuscleGroupID: groupID,
		LiftID:        liftID,
		PreviousSets:  previousSets(snap, liftID, workoutID),
	}, nil
}

// usedGroupIDs is the union of muscle groups tagged on lifts already present
// in the target workout.
func usedGroupIDs(snap *Snapshot, workoutID primitive.ObjectID) map[primitive.ObjectID]struct{} {
	used := make(map[primitive.ObjectID]struct{})
	for _, wl := range snap.WorkoutLifts {
		if wl.WorkoutID != workoutID {
			continue
		}
		lift, ok := snap.liftByID(wl.LiftID)
		if !ok {
			continue
		}
		for _, gid := range lift.MuscleGroupIDs {
			used[gid] = struct{}{}
		}
	}
	return used
}

// conflictingGroupIDs is every group on the other side of a conflict with a
// used group, excluding groups that are themselves used.
func conflictingGroupIDs(snap *Snapshot, used map[primitive.ObjectID]struct{}) map[primitive.ObjectID]struct{} {
	conflicting := make(map[primitive.ObjectID]struct{})
	for _, c := range snap.Conflicts {
		for usedID := range used {
			if !c.Involves(usedID) {
				continue
			}
			other := c.Other(usedID)
			if _, isUsed := used[other]; !isUsed {
				conflicting[other] = struct{}{}
			}
		}
	}
	return conflicting
}

// lastGroupTrained returns the latest workout date, excluding the target
// workout, containing a lift tagged with the group. Nil when the group has
// never been trained.
func lastGroupTrained(snap *Snapshot, groupID, excludeWorkoutID primitive.ObjectID) *time.Time {
	dates := snap.workoutDates()
	var last *time.Time
	for _, wl := range snap.WorkoutLifts {
		if wl.WorkoutID == excludeWorkoutID {
			continue
		}
		lift, ok := snap.liftByID(wl.LiftID)
		if !ok || !lift.HasMuscleGroup(groupID) {
			continue
		}
		d, ok := dates[wl.WorkoutID]
		if !ok {
			continue
		}
		if last == nil || d.After(*last) {
			v := d
			last = &v
		}
	}
	return last
}

// lastLiftTrained returns the latest workout date, excluding the target
// workout, in which the lift occurs. Nil when the lift has never been done.
func lastLiftTrained(snap *Snapshot, liftID, excludeWorkoutID primitive.ObjectID) *time.Time {
	dates := snap.workoutDates()
	var last *time.Time
	for _, wl := range snap.WorkoutLifts {
		if wl.LiftID != liftID || wl.WorkoutID == excludeWorkoutID {
			continue
		}
		d, ok := dates[wl.WorkoutID]
		if !ok {
			continue
		}
		if last == nil || d.After(*last) {
			v := d
			last = &v
		}
	}
	return last
}

// previousSets returns the sets of the most recent occurrence of the lift
// outside the target workout, ordered by set number. Empty when the lift has
// no prior occurrence. Ties on workout date go to the newest occurrence id.
func previousSets(snap *Snapshot, liftID, excludeWorkoutID primitive.ObjectID) []domain.WorkoutSet {
	dates := snap.workoutDates()
	var best *domain.WorkoutLift
	var bestDate time.Time
	for i := range snap.WorkoutLifts {
		wl := &snap.WorkoutLifts[i]
		if wl.LiftID != liftID || wl.WorkoutID == excludeWorkoutID {
			continue
		}
		d, ok := dates[wl.WorkoutID]
		if !ok {
			continue
		}
		if best == nil || d.After(bestDate) || (d.Equal(bestDate) && wl.ID.Hex() > best.ID.Hex()) {
			best = wl
			bestDate = d
		}
	}
	if best == nil {
		return []domain.WorkoutSet{}
	}

	sets := make([]domain.WorkoutSet, len(best.Sets))
	copy(sets, best.Sets)
	sort.Slice(sets, func(i, j int) bool { return sets[i].SetNumber < sets[j].SetNumber })
	return sets
}

// pickStalest returns the id whose last-trained date is oldest, with nil
// (never trained) sorting before every concrete date. Input ids must already
// be in ascending hex order; ties keep the earlier id, which makes the result
// deterministic.
func pickStalest(ids []primitive.ObjectID, lastTrained func(primitive.ObjectID) *time.Time) primitive.ObjectID {
	best := ids[0]
	bestLast := lastTrained(best)
	for _, id := range ids[1:] {
		if bestLast == nil {
			break // nothing beats never-trained with the lowest id
		}
		last := lastTrained(id)
		if last == nil || last.Before(*bestLast) {
			best = id
			bestLast = last
		}
	}
	return best
}

// subtract returns a copy of base with every id in the remove sets deleted.
func subtract(base map[primitive.ObjectID]struct{}, remove ...map[primitive.ObjectID]struct{}) map[primitive.ObjectID]struct{} {
	out := make(map[primitive.ObjectID]struct{}, len(base))
	for id := range base {
		out[id] = struct{}{}
	}
	for _, set := range remove {
		for id := range set {
			delete(out, id)
		}
	}
	return out
}
