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

const liftCollectionName = "lifts"

// mongoLiftRepository implements repository.LiftRepository
type mongoLiftRepository struct {
	collection *mongo.Collection
}

// NewMongoLiftRepository creates a lift repository backed by MongoDB.
func NewMongoLiftRepository(db *mongo.Database) repository.LiftRepository {
	return &mongoLiftRepository{
		collection: db.Collection(liftCollectionName),
	}
}

func (r *mongoLiftRepository) Create(ctx context.Context, lift *domain.Lift) (primitive.ObjectID, error) {
	if lift.Name == "" {
		return primitive.NilObjectID, errors.New("lift name is required")
	}

	lift.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	lift.CreatedAt = now
	lift.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, lift); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return lift.ID, nil
}

func (r *mongoLiftRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Lift, error) {
	var lift domain.Lift
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&lift)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &lift, nil
}

func (r *mongoLiftRepository) GetAll(ctx context.Context) ([]domain.Lift, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lifts []domain.Lift
	if err = cursor.All(ctx, &lifts); err != nil {
		return nil, err
	}
	return lifts, nil
}

func (r *mongoLiftRepository) Update(ctx context.Context, lift *domain.Lift) error {
	if lift.ID == primitive.NilObjectID {
		return errors.New("lift ID is required for update")
	}
	if lift.Name == "" {
		return errors.New("lift name cannot be empty")
	}

	update := bson.M{
		"$set": bson.M{
			"name":           lift.Name,
			"muscleGroupIds": lift.MuscleGroupIDs,
			"updatedAt":      time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": lift.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoLiftRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureLiftIndexes creates the unique name index and the muscle group tag
// index used when filtering lifts by group.
func EnsureLiftIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "muscleGroupIds", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
