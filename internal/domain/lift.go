package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lift is a named exercise in the catalogue (e.g. "Bench Press").
// A lift may be tagged with zero, one, or several muscle groups; the tags are
// stored denormalized on the lift document instead of in a join collection.
type Lift struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	MuscleGroupIDs []primitive.ObjectID `bson:"muscleGroupIds,omitempty" json:"muscleGroupIds,omitempty"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// HasMuscleGroup reports whether the lift is tagged with the given group.
func (l *Lift) HasMuscleGroup(groupID primitive.ObjectID) bool {
	for _, id := range l.MuscleGroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}
