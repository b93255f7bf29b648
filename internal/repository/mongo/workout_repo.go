package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gaindalf/internal/domain"
	"gaindalf/internal/repository"
)

const (
	workoutCollectionName     = "workouts"
	workoutLiftCollectionName = "workout_lifts"
)

// mongoWorkoutRepository implements repository.WorkoutRepository over two
// collections: workouts, and the lift occurrences they own. Sets are embedded
// in the occurrence documents, so occurrence deletion cascades to them for
// free; workout deletion cascades to occurrences explicitly.
type mongoWorkoutRepository struct {
	workouts *mongo.Collection
	lifts    *mongo.Collection
}

// NewMongoWorkoutRepository creates a workout repository backed by MongoDB.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		workouts: db.Collection(workoutCollectionName),
		lifts:    db.Collection(workoutLiftCollectionName),
	}
}

func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if workout.Date.IsZero() {
		workout.Date = now
	}
	workout.CreatedAt = now
	workout.UpdatedAt = now

	if _, err := r.workouts.InsertOne(ctx, workout); err != nil {
		return primitive.NilObjectID, err
	}
	return workout.ID, nil
}

func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.workouts.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *mongoWorkoutRepository) GetAll(ctx context.Context) ([]domain.Workout, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.workouts.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workouts []domain.Workout
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *mongoWorkoutRepository) UpdateSubtitle(ctx context.Context, id primitive.ObjectID, subtitle string) error {
	update := bson.M{"$set": bson.M{"subtitle": subtitle, "updatedAt": time.Now().UTC()}}
	result, err := r.workouts.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the workout and all its lift occurrences (with their
// embedded sets).
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.workouts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	_, err = r.lifts.DeleteMany(ctx, bson.M{"workoutId": id})
	return err
}

func (r *mongoWorkoutRepository) AddLift(ctx context.Context, lift *domain.WorkoutLift) (primitive.ObjectID, error) {
	if lift.WorkoutID == primitive.NilObjectID || lift.LiftID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("workout ID and lift ID are required")
	}

	lift.ID = primitive.NewObjectID()
	if lift.Sets == nil {
		lift.Sets = []domain.WorkoutSet{}
	}
	now := time.Now().UTC()
	lift.CreatedAt = now
	lift.UpdatedAt = now

	if _, err := r.lifts.InsertOne(ctx, lift); err != nil {
		return primitive.NilObjectID, err
	}
	return lift.ID, nil
}

func (r *mongoWorkoutRepository) GetLiftByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLift, error) {
	var lift domain.WorkoutLift
	err := r.lifts.FindOne(ctx, bson.M{"_id": id}).Decode(&lift)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &lift, nil
}

func (r *mongoWorkoutRepository) GetLiftsByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutLift, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "displayOrder", Value: 1}})
	cursor, err := r.lifts.Find(ctx, bson.M{"workoutId": workoutID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lifts []domain.WorkoutLift
	if err = cursor.All(ctx, &lifts); err != nil {
		return nil, err
	}
	return lifts, nil
}

// GetAllLifts returns every lift occurrence in the database. This is the read
// backing the engines' snapshot.
func (r *mongoWorkoutRepository) GetAllLifts(ctx context.Context) ([]domain.WorkoutLift, error) {
	cursor, err := r.lifts.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lifts []domain.WorkoutLift
	if err = cursor.All(ctx, &lifts); err != nil {
		return nil, err
	}
	return lifts, nil
}

func (r *mongoWorkoutRepository) RemoveLift(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.lifts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoWorkoutRepository) ReplaceSets(ctx context.Context, liftOccurrenceID primitive.ObjectID, sets []domain.WorkoutSet) error {
	if sets == nil {
		sets = []domain.WorkoutSet{}
	}
	update := bson.M{"$set": bson.M{"sets": sets, "updatedAt": time.Now().UTC()}}
	result, err := r.lifts.UpdateOne(ctx, bson.M{"_id": liftOccurrenceID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutIndexes creates the indexes for the workouts and workout_lifts
// collections.
func EnsureWorkoutIndexes(ctx context.Context, workouts, workoutLifts *mongo.Collection) {
	_, _ = workouts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}, Options: options.Index()},
	})
	_, _ = workoutLifts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "workoutId", Value: 1}}, Options: options.Index()},
		{Keys: bson.D{{Key: "liftId", Value: 1}}, Options: options.Index()},
	})
}
