package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is one training session. Lifts performed during the session live in
// their own collection (WorkoutLift) keyed by WorkoutID, since a workout may
// contain the same lift more than once.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date      time.Time          `bson:"date" json:"date"`
	Subtitle  string             `bson:"subtitle" json:"subtitle"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutLift is one occurrence of a lift within a workout. It owns its sets:
// they are embedded in the document, so deleting the occurrence deletes them,
// and deleting a workout cascades through its occurrences.
type WorkoutLift struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID    primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	LiftID       primitive.ObjectID `bson:"liftId" json:"liftId"`
	DisplayOrder int                `bson:"displayOrder" json:"displayOrder"`
	Sets         []WorkoutSet       `bson:"sets" json:"sets"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutSet is a single set within a lift occurrence. SetNumber is sequential
// and unique within the occurrence. Reps and Weight (kilograms) may be nil
// when the set has not been filled in yet.
type WorkoutSet struct {
	SetNumber int      `bson:"setNumber" json:"setNumber"`
	Reps      *int     `bson:"reps,omitempty" json:"reps"`
	Weight    *float64 `bson:"weight,omitempty" json:"weight"`
}
