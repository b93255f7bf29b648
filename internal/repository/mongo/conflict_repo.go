package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"gaindalf/internal/domain"
	"gaindalf/internal/repository"
)

const conflictCollectionName = "muscle_group_conflicts"

// mongoConflictRepository implements repository.ConflictRepository
type mongoConflictRepository struct {
	collection *mongo.Collection
}

// NewMongoConflictRepository creates a conflict repository backed by MongoDB.
func NewMongoConflictRepository(db *mongo.Database) repository.ConflictRepository {
	return &mongoConflictRepository{
		collection: db.Collection(conflictCollectionName),
	}
}

func (r *mongoConflictRepository) Create(ctx context.Context, conflict *domain.MuscleGroupConflict) (primitive.ObjectID, error) {
	if conflict.GroupAID == primitive.NilObjectID || conflict.GroupBID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("both muscle group IDs are required")
	}

	conflict.ID = primitive.NewObjectID()
	conflict.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, conflict); err != nil {
		return primitive.NilObjectID, err
	}
	return conflict.ID, nil
}

// FindPair looks the conflict up in either orientation, since (A,B) and (B,A)
// are the same fact.
func (r *mongoConflictRepository) FindPair(ctx context.Context, groupAID, groupBID primitive.ObjectID) (*domain.MuscleGroupConflict, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"groupAId": groupAID, "groupBId": groupBID},
			{"groupAId": groupBID, "groupBId": groupAID},
		},
	}

	var conflict domain.MuscleGroupConflict
	err := r.collection.FindOne(ctx, filter).Decode(&conflict)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &conflict, nil
}

func (r *mongoConflictRepository) GetAll(ctx context.Context) ([]domain.MuscleGroupConflict, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var conflicts []domain.MuscleGroupConflict
	if err = cursor.All(ctx, &conflicts); err != nil {
		return nil, err
	}
	return conflicts, nil
}

func (r *mongoConflictRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
