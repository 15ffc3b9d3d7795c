// internal/domain/log.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format stored on logs ("2006-01-02").
const DateLayout = time.DateOnly

// SetState is the lifecycle position of a Set, derived from its flags.
type SetState string

const (
	SetPending   SetState = "pending"
	SetTiming    SetState = "timing"
	SetCompleted SetState = "completed"
)

// Set is one weight x reps attempt of an exercise.
// Completed and TimerActive are never both true.
type Set struct {
	ID          string  `bson:"id" json:"id"`
	Weight      float64 `bson:"weight" json:"weight"`
	Reps        int     `bson:"reps" json:"reps"`
	Completed   bool    `bson:"completed" json:"completed"`
	TimerActive bool    `bson:"timerActive" json:"timerActive"`
	Notes       string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// State derives the lifecycle state from the flags.
func (s Set) State() SetState {
	switch {
	case s.Completed:
		return SetCompleted
	case s.TimerActive:
		return SetTiming
	default:
		return SetPending
	}
}

// Performed reports whether the set carries real data (weight and reps both positive).
func (s Set) Performed() bool {
	return s.Weight > 0 && s.Reps > 0
}

// NewSet returns a fresh pending set.
func NewSet() Set {
	return Set{ID: uuid.NewString()}
}

// ExerciseLog records the sets performed for one exercise of a session.
type ExerciseLog struct {
	ID           string `bson:"id" json:"id"`
	ExerciseID   string `bson:"exerciseId" json:"exerciseId"`
	ExerciseName string `bson:"exerciseName" json:"exerciseName"`
	Sets         []Set  `bson:"sets" json:"sets"`
	Date         string `bson:"date" json:"date"`
}

// NewExerciseLog builds an empty log for the exercise with DefaultSets blank sets.
func NewExerciseLog(ex Exercise, date string) ExerciseLog {
	n := ex.DefaultSets
	if n < 0 {
		n = 0
	}
	sets := make([]Set, n)
	for i := range sets {
		sets[i] = NewSet()
	}
	return ExerciseLog{
		ID:           uuid.NewString(),
		ExerciseID:   ex.ID,
		ExerciseName: ex.Name,
		Sets:         sets,
		Date:         date,
	}
}

// Clone deep-copies the log.
func (l ExerciseLog) Clone() ExerciseLog {
	l.Sets = append([]Set(nil), l.Sets...)
	return l
}

// WorkoutLog is the persisted record of a finished session.
type WorkoutLog struct {
	ID           string        `bson:"_id" json:"id"`
	WorkoutID    string        `bson:"workoutId" json:"workoutId"`
	WorkoutName  string        `bson:"workoutName" json:"workoutName"`
	Date         string        `bson:"date" json:"date"`
	Duration     int           `bson:"duration" json:"duration"` // minutes
	ExerciseLogs []ExerciseLog `bson:"exerciseLogs" json:"exerciseLogs"`
	Notes        string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
}
