package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/repository"

	"github.com/google/uuid"
)

type GoalService interface {
	ListGoals(ctx context.Context) ([]domain.WorkoutGoal, error)
	GetActiveGoal(ctx context.Context) (*domain.WorkoutGoal, error)
	// SaveGoal creates or updates a goal. Saving an active goal deactivates all others.
	SaveGoal(ctx context.Context, goal domain.WorkoutGoal) (*domain.WorkoutGoal, error)
	DeleteGoal(ctx context.Context, id string) error
}

// goalService implements the GoalService interface.
type goalService struct {
	goalRepo repository.GoalRepository
	now      func() time.Time
}

// NewGoalService creates a new instance of goalService. now defaults to time.Now.
func NewGoalService(goalRepo repository.GoalRepository, now func() time.Time) GoalService {
	if now == nil {
		now = time.Now
	}
	return &goalService{goalRepo: goalRepo, now: now}
}

func (s *goalService) ListGoals(ctx context.Context) ([]domain.WorkoutGoal, error) {
	return s.goalRepo.List(ctx)
}

func (s *goalService) GetActiveGoal(ctx context.Context) (*domain.WorkoutGoal, error) {
	g, err := s.goalRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *goalService) SaveGoal(ctx context.Context, goal domain.WorkoutGoal) (*domain.WorkoutGoal, error) {
	if goal.Frequency <= 0 || goal.Frequency > 7 {
		return nil, fmt.Errorf("%w: frequency must be between 1 and 7", ErrValidationFailed)
	}
	if goal.TargetStreak < 0 {
		return nil, fmt.Errorf("%w: target streak cannot be negative", ErrValidationFailed)
	}
	if goal.StartDate == "" {
		goal.StartDate = s.now().UTC().Format(domain.DateLayout)
	}
	for _, d := range []string{goal.StartDate, goal.EndDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(domain.DateLayout, d); err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrValidationFailed, d)
		}
	}
	if goal.EndDate != "" && goal.EndDate < goal.StartDate {
		return nil, fmt.Errorf("%w: end date before start date", ErrValidationFailed)
	}
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}

	if err := s.goalRepo.Save(ctx, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, id string) error {
	if err := s.goalRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGoalNotFound
		}
		return err
	}
	return nil
}
