package engine

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaindalf/internal/domain"
)

// IndexPoint is one entry of a progress series: normalized strength and
// endurance for a single workout. Nil index values mean "no lift in this
// workout produced a value" and are rendered as gaps, never as zero.
type IndexPoint struct {
	WorkoutID primitive.ObjectID `json:"workoutId"`
	Date      time.Time          `json:"date"`
	Strength  *float64           `json:"strengthIndex"`
	Endurance *float64           `json:"enduranceIndex"`
}

// ComputeAllIndexes returns one index point per workout, ordered by date
// ascending. A workout's strength index is the mean, over its lift
// occurrences with a usable baseline, of current max weight divided by
// baseline max weight; the endurance index is the same mean over volume.
// Missing baselines, sets, or values degrade to nil, never to an error.
func ComputeAllIndexes(snap *Snapshot) []IndexPoint {
	baselines := baselineOccurrences(snap)

	points := make([]IndexPoint, 0, len(snap.Workouts))
	for _, w := range sortedWorkouts(snap) {
		strength, endurance := aggregateIndexes(snap, baselines, w.ID, primitive.NilObjectID)
		points = append(points, IndexPoint{
			WorkoutID: w.ID,
			Date:      w.Date,
			Strength:  strength,
			Endurance: endurance,
		})
	}
	return points
}

// ComputeLiftIndexes returns one index point per workout in which the given
// lift occurs, ordered by date ascending. The aggregation is the same as
// ComputeAllIndexes restricted to that lift's occurrences, so with a single
// occurrence per workout the "mean" is just the lift's own normalized value.
func ComputeLiftIndexes(snap *Snapshot, liftID primitive.ObjectID) []IndexPoint {
	baselines := baselineOccurrences(snap)

	contains := make(map[primitive.ObjectID]struct{})
	for _, wl := range snap.WorkoutLifts {
		if wl.LiftID == liftID {
			contains[wl.WorkoutID] = struct{}{}
		}
	}

	points := make([]IndexPoint, 0, len(contains))
	for _, w := range sortedWorkouts(snap) {
		if _, ok := contains[w.ID]; !ok {
			continue
		}
		strength, endurance := aggregateIndexes(snap, baselines, w.ID, liftID)
		points = append(points, IndexPoint{
			WorkoutID: w.ID,
			Date:      w.Date,
			Strength:  strength,
			Endurance: endurance,
		})
	}
	return points
}

// aggregateIndexes averages normalized strength and endurance across the
// workout's lift occurrences. When onlyLift is set, occurrences of other
// lifts are skipped.
func aggregateIndexes(snap *Snapshot, baselines map[primitive.ObjectID]*domain.WorkoutLift, workoutID, onlyLift primitive.ObjectID) (*float64, *float64) {
	var strengthRatios, enduranceRatios []float64

	for i := range snap.WorkoutLifts {
		wl := &snap.WorkoutLifts[i]
		if wl.WorkoutID != workoutID {
			continue
		}
		if onlyLift != primitive.NilObjectID && wl.LiftID != onlyLift {
			continue
		}
		baseline, ok := baselines[wl.LiftID]
		if !ok {
			continue
		}

		baselineMax := maxWeight(baseline.Sets)
		currentMax := maxWeight(wl.Sets)
		if baselineMax != nil && *baselineMax > 0 && currentMax != nil {
			strengthRatios = append(strengthRatios, *currentMax / *baselineMax)
		}

		baselineVolume := volume(baseline.Sets)
		currentVolume := volume(wl.Sets)
		if baselineVolume != nil && *baselineVolume > 0 && currentVolume != nil {
			enduranceRatios = append(enduranceRatios, *currentVolume / *baselineVolume)
		}
	}

	return mean(strengthRatios), mean(enduranceRatios)
}

// baselineOccurrences maps each lift to its baseline: the occurrence with the
// earliest workout date, ties broken by ascending occurrence id.
func baselineOccurrences(snap *Snapshot) map[primitive.ObjectID]*domain.WorkoutLift {
	dates := snap.workoutDates()
	baselines := make(map[primitive.ObjectID]*domain.WorkoutLift)
	baselineDates := make(map[primitive.ObjectID]time.Time)

	for i := range snap.WorkoutLifts {
		wl := &snap.WorkoutLifts[i]
		d, ok := dates[wl.WorkoutID]
		if !ok {
			continue
		}
		current, exists := baselines[wl.LiftID]
		if !exists || d.Before(baselineDates[wl.LiftID]) ||
			(d.Equal(baselineDates[wl.LiftID]) && wl.ID.Hex() < current.ID.Hex()) {
			baselines[wl.LiftID] = wl
			baselineDates[wl.LiftID] = d
		}
	}
	return baselines
}

// maxWeight returns the maximum weight among sets with a weight, or nil when
// no set has one.
func maxWeight(sets []domain.WorkoutSet) *float64 {
	var max *float64
	for _, s := range sets {
		if s.Weight == nil {
			continue
		}
		if max == nil || *s.Weight > *max {
			v := *s.Weight
			max = &v
		}
	}
	return max
}

// volume is setCount × meanReps × meanWeight, where each mean is taken over
// the sets that have a value for that field. A set missing only reps still
// contributes its weight to the weight mean, and vice versa. Nil when the
// occurrence has no sets or either mean is undefined.
func volume(sets []domain.WorkoutSet) *float64 {
	if len(sets) == 0 {
		return nil
	}
	var repsSum, weightSum float64
	var repsN, weightN int
	for _, s := range sets {
		if s.Reps != nil {
			repsSum += float64(*s.Reps)
			repsN++
		}
		if s.Weight != nil {
			weightSum += *s.Weight
			weightN++
		}
	}
	if repsN == 0 || weightN == 0 {
		return nil
	}
	v := float64(len(sets)) * (repsSum / float64(repsN)) * (weightSum / float64(weightN))
	return &v
}

// mean returns the arithmetic mean, or nil for an empty slice.
func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}

// sortedWorkouts returns the snapshot's workouts ordered by date ascending,
// ties broken by ascending id.
func sortedWorkouts(snap *Snapshot) []domain.Workout {
	workouts := make([]domain.Workout, len(snap.Workouts))
	copy(workouts, snap.Workouts)
	sort.Slice(workouts, func(i, j int) bool {
		if !workouts[i].Date.Equal(workouts[j].Date) {
			return workouts[i].Date.Before(workouts[j].Date)
		}
		return workouts[i].ID.Hex() < workouts[j].ID.Hex()
	})
	return workouts
}
