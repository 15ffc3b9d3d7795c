// internal/repository/mongo/workout_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoWorkoutRepository implements repository.WorkoutRepository over the
// default-workouts and custom-workouts collections.
type mongoWorkoutRepository struct {
	defaults *mongo.Collection
	customs  *mongo.Collection
}

// NewMongoWorkoutRepository creates a new workout template repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		defaults: db.Collection(defaultWorkoutsCollection),
		customs:  db.Collection(customWorkoutsCollection),
	}
}

// GetByID checks the custom overrides first, then the default catalogue.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	for _, coll := range []*mongo.Collection{r.customs, r.defaults} {
		var workout domain.Workout
		err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
		if err == nil {
			return &workout, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}
	return nil, repository.ErrNotFound
}

// List returns the catalogue with custom overrides applied; custom-only
// templates follow the defaults.
func (r *mongoWorkoutRepository) List(ctx context.Context) ([]domain.Workout, error) {
	defaults, err := findAllWorkouts(ctx, r.defaults)
	if err != nil {
		return nil, err
	}
	customs, err := findAllWorkouts(ctx, r.customs)
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]domain.Workout, len(customs))
	for _, w := range customs {
		overrides[w.ID] = w
	}
	workouts := make([]domain.Workout, 0, len(defaults)+len(customs))
	for _, w := range defaults {
		if c, ok := overrides[w.ID]; ok {
			workouts = append(workouts, c)
			delete(overrides, w.ID)
			continue
		}
		workouts = append(workouts, w)
	}
	for _, w := range customs {
		if _, ok := overrides[w.ID]; ok {
			workouts = append(workouts, w)
		}
	}
	return workouts, nil
}

func findAllWorkouts(ctx context.Context, coll *mongo.Collection) ([]domain.Workout, error) {
	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Save upserts the template into the custom overrides.
func (r *mongoWorkoutRepository) Save(ctx context.Context, workout *domain.Workout) error {
	return upsertWorkout(ctx, r.customs, workout)
}

// SaveDefault upserts the template into the default catalogue.
func (r *mongoWorkoutRepository) SaveDefault(ctx context.Context, workout *domain.Workout) error {
	return upsertWorkout(ctx, r.defaults, workout)
}

func upsertWorkout(ctx context.Context, coll *mongo.Collection, workout *domain.Workout) error {
	if workout == nil || workout.ID == "" || workout.Name == "" {
		return repository.ErrInvalid
	}
	workout.UpdatedAt = time.Now().UTC()
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": workout.ID}, workout, options.Replace().SetUpsert(true))
	return err
}

// CountDefaults returns the size of the default catalogue.
func (r *mongoWorkoutRepository) CountDefaults(ctx context.Context) (int64, error) {
	return r.defaults.CountDocuments(ctx, bson.M{})
}

func ensureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}},
		Options: options.Index(),
	})
	return err
}
