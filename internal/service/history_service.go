package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/repository"
	"github.com/fitjourney/chronicle/internal/stats"
)

// Dashboard bundles every number shown on the history dashboard.
type Dashboard struct {
	stats.Summary
	Goal          *domain.WorkoutGoal `json:"goal,omitempty"`
	GoalProgress  *stats.GoalProgress `json:"goalProgress,omitempty"`
	CurrentStreak int                 `json:"currentStreak"`
}

// MonthLayout is the calendar month format accepted by LogFilter.
const MonthLayout = "2006-01"

// LogFilter narrows a log listing to one day (Date, "2006-01-02") or one
// month (Month, "2006-01"). Empty fields match everything.
type LogFilter struct {
	Date  string
	Month string
}

func (f LogFilter) validate() error {
	if f.Date != "" {
		if _, err := time.Parse(domain.DateLayout, f.Date); err != nil {
			return fmt.Errorf("%w: bad date %q", ErrValidationFailed, f.Date)
		}
	}
	if f.Month != "" {
		if _, err := time.Parse(MonthLayout, f.Month); err != nil {
			return fmt.Errorf("%w: bad month %q", ErrValidationFailed, f.Month)
		}
	}
	return nil
}

func (f LogFilter) match(wl domain.WorkoutLog) bool {
	if f.Date != "" && wl.Date != f.Date {
		return false
	}
	return f.Month == "" || strings.HasPrefix(wl.Date, f.Month+"-")
}

type HistoryService interface {
	ListLogs(ctx context.Context, filter LogFilter) ([]domain.WorkoutLog, error)
	GetLog(ctx context.Context, id string) (*domain.WorkoutLog, error)
	DeleteLog(ctx context.Context, id string) error
	Dashboard(ctx context.Context) (*Dashboard, error)
}

// historyService implements the HistoryService interface.
type historyService struct {
	logRepo  repository.WorkoutLogRepository
	goalRepo repository.GoalRepository
	now      func() time.Time
}

// NewHistoryService creates a new instance of historyService. now defaults to time.Now.
func NewHistoryService(logRepo repository.WorkoutLogRepository, goalRepo repository.GoalRepository, now func() time.Time) HistoryService {
	if now == nil {
		now = time.Now
	}
	return &historyService{logRepo: logRepo, goalRepo: goalRepo, now: now}
}

func (s *historyService) ListLogs(ctx context.Context, filter LogFilter) ([]domain.WorkoutLog, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}
	logs, err := s.logRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if filter == (LogFilter{}) {
		return logs, nil
	}
	kept := make([]domain.WorkoutLog, 0, len(logs))
	for _, wl := range logs {
		if filter.match(wl) {
			kept = append(kept, wl)
		}
	}
	return kept, nil
}

func (s *historyService) GetLog(ctx context.Context, id string) (*domain.WorkoutLog, error) {
	wl, err := s.logRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return wl, nil
}

func (s *historyService) DeleteLog(ctx context.Context, id string) error {
	if err := s.logRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLogNotFound
		}
		return err
	}
	return nil
}

func (s *historyService) Dashboard(ctx context.Context) (*Dashboard, error) {
	logs, err := s.logRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	d := &Dashboard{
		Summary:       stats.Summarize(logs, now),
		CurrentStreak: stats.Streak(logs, now),
	}

	goal, err := s.goalRepo.GetActive(ctx)
	switch {
	case err == nil:
		progress := stats.WeeklyGoal(logs, goal.Frequency, now)
		d.Goal = goal
		d.GoalProgress = &progress
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	return d, nil
}
