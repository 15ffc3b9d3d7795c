// internal/domain/workout.go
package domain

import (
	"time"
)

// WorkoutCategory groups templates on the dashboard.
type WorkoutCategory string

const (
	CategoryPush   WorkoutCategory = "push"
	CategoryPull   WorkoutCategory = "pull"
	CategoryLegs   WorkoutCategory = "legs"
	CategoryFull   WorkoutCategory = "full"
	CategoryCardio WorkoutCategory = "cardio"
	CategoryCustom WorkoutCategory = "custom"
)

// Workout is a reusable workout template: a named, ordered list of exercises
// with their default sets, reps and rest periods.
type Workout struct {
	ID          string          `bson:"_id" json:"id" yaml:"id"`
	Name        string          `bson:"name" json:"name" yaml:"name"`
	Description string          `bson:"description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`
	Category    WorkoutCategory `bson:"category" json:"category" yaml:"category"`
	Exercises   []Exercise      `bson:"exercises" json:"exercises" yaml:"exercises"`
	UpdatedAt   time.Time       `bson:"updatedAt,omitempty" json:"updatedAt,omitempty" yaml:"-"`
}

// Clone returns a deep copy. Sessions keep a clone of the fetched template
// so that edits never reach the original value.
func (w *Workout) Clone() *Workout {
	if w == nil {
		return nil
	}
	c := *w
	c.Exercises = make([]Exercise, len(w.Exercises))
	for i, ex := range w.Exercises {
		c.Exercises[i] = ex.Clone()
	}
	return &c
}

// ExerciseByID returns the exercise with the given id, if present.
func (w *Workout) ExerciseByID(id string) (Exercise, bool) {
	for _, ex := range w.Exercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return Exercise{}, false
}
