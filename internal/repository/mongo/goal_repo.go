package mongo

import (
	"context"
	"errors"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoGoalRepository struct {
	collection *mongo.Collection
}

// NewMongoGoalRepository creates a repository over the workout-goals collection.
func NewMongoGoalRepository(db *mongo.Database) repository.GoalRepository {
	return &mongoGoalRepository{
		collection: db.Collection(workoutGoalsCollection),
	}
}

func (r *mongoGoalRepository) List(ctx context.Context) ([]domain.WorkoutGoal, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	goals := []domain.WorkoutGoal{}
	if err = cursor.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *mongoGoalRepository) GetActive(ctx context.Context) (*domain.WorkoutGoal, error) {
	var goal domain.WorkoutGoal
	err := r.collection.FindOne(ctx, bson.M{"isActive": true}).Decode(&goal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// Save upserts the goal. Saving an active goal deactivates every other goal.
func (r *mongoGoalRepository) Save(ctx context.Context, goal *domain.WorkoutGoal) error {
	if goal == nil || goal.ID == "" {
		return repository.ErrInvalid
	}
	if goal.IsActive {
		filter := bson.M{"_id": bson.M{"$ne": goal.ID}, "isActive": true}
		if _, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"isActive": false}}); err != nil {
			return err
		}
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": goal.ID}, goal, options.Replace().SetUpsert(true))
	return err
}

func (r *mongoGoalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func ensureGoalIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "isActive", Value: 1}},
		Options: options.Index(),
	})
	return err
}
