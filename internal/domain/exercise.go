// internal/domain/exercise.go
package domain

// ExerciseType describes the role an exercise plays in a template.
type ExerciseType string

const (
	ExerciseCompound   ExerciseType = "compound"
	ExerciseAccessory  ExerciseType = "accessory"
	ExerciseFinishing  ExerciseType = "finishing"
	ExerciseUnilateral ExerciseType = "unilateral"
	ExerciseSuperset   ExerciseType = "superset"
)

// DefaultRestPeriod is used when an exercise carries no rest period of its own (seconds).
const DefaultRestPeriod = 60

// Exercise is one entry of a workout template.
type Exercise struct {
	ID                string       `bson:"id" json:"id" yaml:"id"`
	Name              string       `bson:"name" json:"name" yaml:"name"`
	Type              ExerciseType `bson:"type" json:"type" yaml:"type"`
	TargetMuscleGroup string       `bson:"targetMuscleGroup" json:"targetMuscleGroup" yaml:"targetMuscleGroup"`
	DefaultSets       int          `bson:"defaultSets" json:"defaultSets" yaml:"defaultSets"`
	DefaultReps       string       `bson:"defaultReps" json:"defaultReps" yaml:"defaultReps"`             // e.g. "8-12"
	DefaultRestPeriod int          `bson:"defaultRestPeriod" json:"defaultRestPeriod" yaml:"defaultRestPeriod"` // seconds
	FormCues          []string     `bson:"formCues,omitempty" json:"formCues,omitempty" yaml:"formCues,omitempty"`
	Notes             string       `bson:"notes,omitempty" json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Clone copies the exercise including its form cues.
func (e Exercise) Clone() Exercise {
	if e.FormCues != nil {
		e.FormCues = append([]string(nil), e.FormCues...)
	}
	return e
}

// RestPeriod returns the rest period in seconds, falling back to DefaultRestPeriod.
func (e Exercise) RestPeriod() int {
	if e.DefaultRestPeriod > 0 {
		return e.DefaultRestPeriod
	}
	return DefaultRestPeriod
}
