package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/repository"

	"github.com/google/uuid"
)

type WorkoutService interface {
	ListWorkouts(ctx context.Context) ([]domain.Workout, error)
	GetWorkout(ctx context.Context, id string) (*domain.Workout, error)
	// SaveCustomWorkout stores a user-defined template; an empty id creates one.
	SaveCustomWorkout(ctx context.Context, workout *domain.Workout) (*domain.Workout, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

func (s *workoutService) ListWorkouts(ctx context.Context) ([]domain.Workout, error) {
	return s.workoutRepo.List(ctx)
}

func (s *workoutService) GetWorkout(ctx context.Context, id string) (*domain.Workout, error) {
	w, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *workoutService) SaveCustomWorkout(ctx context.Context, workout *domain.Workout) (*domain.Workout, error) {
	if workout == nil || strings.TrimSpace(workout.Name) == "" {
		return nil, fmt.Errorf("%w: workout name is required", ErrValidationFailed)
	}
	w := workout.Clone()
	w.Name = strings.TrimSpace(w.Name)
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.Category == "" {
		w.Category = domain.CategoryCustom
	}
	for i := range w.Exercises {
		ex := &w.Exercises[i]
		if strings.TrimSpace(ex.Name) == "" {
			return nil, fmt.Errorf("%w: exercise %d has no name", ErrValidationFailed, i)
		}
		if ex.ID == "" {
			ex.ID = uuid.NewString()
		}
		if ex.Type == "" {
			ex.Type = domain.ExerciseAccessory
		}
		if ex.DefaultSets < 0 {
			ex.DefaultSets = 0
		}
	}

	if err := s.workoutRepo.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}
