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

const muscleGroupCollectionName = "muscle_groups"

// mongoMuscleGroupRepository implements repository.MuscleGroupRepository
type mongoMuscleGroupRepository struct {
	collection *mongo.Collection
}

// NewMongoMuscleGroupRepository creates a muscle group repository backed by MongoDB.
func NewMongoMuscleGroupRepository(db *mongo.Database) repository.MuscleGroupRepository {
	return &mongoMuscleGroupRepository{
		collection: db.Collection(muscleGroupCollectionName),
	}
}

func (r *mongoMuscleGroupRepository) Create(ctx context.Context, group *domain.MuscleGroup) (primitive.ObjectID, error) {
	if group.Name == "" {
		return primitive.NilObjectID, errors.New("muscle group name is required")
	}

	group.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	group.CreatedAt = now
	group.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, group); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return group.ID, nil
}

func (r *mongoMuscleGroupRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MuscleGroup, error) {
	var group domain.MuscleGroup
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *mongoMuscleGroupRepository) GetAll(ctx context.Context) ([]domain.MuscleGroup, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []domain.MuscleGroup
	if err = cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *mongoMuscleGroupRepository) Rename(ctx context.Context, id primitive.ObjectID, name string) error {
	if name == "" {
		return errors.New("muscle group name cannot be empty")
	}

	update := bson.M{"$set": bson.M{"name": name, "updatedAt": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
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

func (r *mongoMuscleGroupRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMuscleGroupIndexes creates the unique name index backing the
// name-uniqueness invariant.
func EnsureMuscleGroupIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
