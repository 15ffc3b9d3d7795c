package repository

import (
	"context"

	"github.com/fitjourney/chronicle/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate id")
	ErrInvalid      = RepositoryError("invalid document")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

//go:generate mockgen -source=$GOFILE -destination=mocks/repository_mock.go -package=mocks

// WorkoutRepository stores workout templates. Templates come in two layers:
// the default catalogue and custom overrides written by in-session edits.
// Reads prefer the custom copy.
type WorkoutRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	List(ctx context.Context) ([]domain.Workout, error)
	Save(ctx context.Context, workout *domain.Workout) error        // upsert custom override
	SaveDefault(ctx context.Context, workout *domain.Workout) error // upsert catalogue entry
	CountDefaults(ctx context.Context) (int64, error)
}

// WorkoutLogRepository stores finished sessions.
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) error
	GetByID(ctx context.Context, id string) (*domain.WorkoutLog, error)
	List(ctx context.Context) ([]domain.WorkoutLog, error) // newest first
	Delete(ctx context.Context, id string) error
}

// GoalRepository stores weekly workout goals. At most one goal is active.
type GoalRepository interface {
	List(ctx context.Context) ([]domain.WorkoutGoal, error)
	GetActive(ctx context.Context) (*domain.WorkoutGoal, error)
	Save(ctx context.Context, goal *domain.WorkoutGoal) error
	Delete(ctx context.Context, id string) error
}
