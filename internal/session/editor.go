package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/notify"

	"github.com/google/uuid"
)

// Sets used for an added exercise when the request leaves the count out.
const defaultNewExerciseSets = 3

// NewExercise describes an exercise added during a session.
type NewExercise struct {
	Name              string
	TargetMuscleGroup string
	Sets              int
	Reps              string
	Rest              int // seconds
	Notes             string
}

// The editor keeps workout.Exercises and exerciseLogs the same length with
// matching exercise ids at every index. Each edit is applied locally first
// and then the template is saved; a failed save leaves the local edit in
// place, raises an error notification and returns an error wrapping
// ErrPersistence.

// AddExercise appends an accessory exercise and a matching blank log.
func (s *Session) AddExercise(ctx context.Context, req NewExercise) (domain.Exercise, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Exercise{}, ErrInvalidExercise
	}
	ex := domain.Exercise{
		ID:                uuid.NewString(),
		Name:              name,
		Type:              domain.ExerciseAccessory,
		TargetMuscleGroup: req.TargetMuscleGroup,
		DefaultSets:       req.Sets,
		DefaultReps:       req.Reps,
		DefaultRestPeriod: req.Rest,
		FormCues:          []string{},
		Notes:             req.Notes,
	}
	if ex.DefaultSets <= 0 {
		ex.DefaultSets = defaultNewExerciseSets
	}
	if ex.DefaultRestPeriod <= 0 {
		ex.DefaultRestPeriod = domain.DefaultRestPeriod
	}

	err := s.edit(ctx, msgExerciseAdded, func() error {
		s.workout.Exercises = append(s.workout.Exercises, ex)
		s.exerciseLogs = append(s.exerciseLogs, domain.NewExerciseLog(ex, s.today()))
		return nil
	})
	return ex.Clone(), err
}

// RemoveExercise drops the exercise at index together with its log. Rest
// timers of its sets are cancelled and will not fire.
func (s *Session) RemoveExercise(ctx context.Context, index int) error {
	return s.edit(ctx, msgExerciseRemoved, func() error {
		if index < 0 || index >= len(s.workout.Exercises) {
			return fmt.Errorf("%w: exercise %d", ErrIndexOutOfRange, index)
		}
		for _, set := range s.exerciseLogs[index].Sets {
			s.timers.Disarm(set.ID)
			delete(s.restTokens, set.ID)
		}
		s.workout.Exercises = append(s.workout.Exercises[:index:index], s.workout.Exercises[index+1:]...)
		s.exerciseLogs = append(s.exerciseLogs[:index:index], s.exerciseLogs[index+1:]...)
		return nil
	})
}

// ReorderExercises permutes exercises and logs identically: order[i] is the
// current index of the exercise that moves to position i.
func (s *Session) ReorderExercises(ctx context.Context, order []int) error {
	return s.edit(ctx, msgExercisesOrdered, func() error {
		return s.reorder(order)
	})
}

// ReorderByIDs puts the exercises in the order of ids. The ids are resolved
// against the list as it is when the edit runs, so a concurrent add or
// remove cannot shift what they point at.
func (s *Session) ReorderByIDs(ctx context.Context, ids []string) error {
	return s.edit(ctx, msgExercisesOrdered, func() error {
		pos := make(map[string]int, len(s.workout.Exercises))
		for i, ex := range s.workout.Exercises {
			pos[ex.ID] = i
		}
		order := make([]int, len(ids))
		for i, id := range ids {
			idx, ok := pos[id]
			if !ok {
				return fmt.Errorf("%w: unknown exercise %q", ErrInvalidOrder, id)
			}
			order[i] = idx
		}
		return s.reorder(order)
	})
}

// reorder applies an index permutation. Callers hold mu.
func (s *Session) reorder(order []int) error {
	n := len(s.workout.Exercises)
	if len(order) != n {
		return fmt.Errorf("%w: got %d indexes for %d exercises", ErrInvalidOrder, len(order), n)
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return fmt.Errorf("%w: %v", ErrInvalidOrder, order)
		}
		seen[idx] = true
	}

	exercises := make([]domain.Exercise, n)
	logs := make([]domain.ExerciseLog, n)
	for i, idx := range order {
		exercises[i] = s.workout.Exercises[idx]
		logs[i] = s.exerciseLogs[idx]
	}
	s.workout.Exercises = exercises
	s.exerciseLogs = logs
	return nil
}

// RestoreDefaults discards every edit and all logged set data, rebuilding
// the session from the template as it was fetched.
func (s *Session) RestoreDefaults(ctx context.Context) error {
	return s.edit(ctx, msgRestored, func() error {
		s.timers.DisarmAll()
		s.restTokens = make(map[string]uint64)
		s.workout = s.original.Clone()
		s.exerciseLogs = blankLogs(s.workout.Exercises, s.today())
		return nil
	})
}

// edit applies mutate under the state lock and then saves the resulting
// template. saveMu keeps saves in edit order.
func (s *Session) edit(ctx context.Context, successMsg string, mutate func() error) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if err := s.writable(); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := mutate(); err != nil {
		s.mu.Unlock()
		return err
	}
	snapshot := s.workout.Clone()
	s.mu.Unlock()

	if err := s.workouts.Save(ctx, snapshot); err != nil {
		s.log.WithError(err).Warn("failed to save workout template")
		s.notifier.Notify(msgTemplateFailed, notify.KindError)
		return fmt.Errorf("%w: save template: %v", ErrPersistence, err)
	}
	s.notifier.Notify(successMsg, notify.KindSuccess)
	return nil
}
