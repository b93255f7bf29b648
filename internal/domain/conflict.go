package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MuscleGroupConflict marks two muscle groups as "do not train back-to-back
// in the same session". The relation is symmetric: (A,B) and (B,A) are the
// same fact, and only one of the two orientations may exist.
type MuscleGroupConflict struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupAID  primitive.ObjectID `bson:"groupAId" json:"groupAId"`
	GroupBID  primitive.ObjectID `bson:"groupBId" json:"groupBId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Involves reports whether the conflict touches the given muscle group.
func (c *MuscleGroupConflict) Involves(groupID primitive.ObjectID) bool {
	return c.GroupAID == groupID || c.GroupBID == groupID
}

// Other returns the opposite side of the conflict relative to groupID.
// Callers must check Involves first.
func (c *MuscleGroupConflict) Other(groupID primitive.ObjectID) primitive.ObjectID {
	if c.GroupAID == groupID {
		return c.GroupBID
	}
	return c.GroupAID
}
