package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/notify"
	"github.com/fitjourney/chronicle/internal/repository"
)

// Finish converts the session into a WorkoutLog and saves it. Only sets with
// positive weight and reps are kept. On success the session is closed; on a
// save failure it stays open so the user can retry, and the retry reuses the
// same log id. While the save is in flight every mutation fails with
// ErrSessionFinishing, so nothing accepted can miss the stored log.
func (s *Session) Finish(ctx context.Context) (*domain.WorkoutLog, error) {
	s.finishMu.Lock()
	defer s.finishMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	s.finishing = true
	wl := s.buildLog()
	s.mu.Unlock()

	err := s.logs.Create(ctx, wl)
	if errors.Is(err, repository.ErrDuplicate) {
		// an earlier attempt reached the store before failing on our side
		s.log.Info("workout log already stored")
		err = nil
	}
	if err != nil {
		s.mu.Lock()
		s.finishing = false
		s.mu.Unlock()

		s.log.WithError(err).Error("failed to save workout log")
		s.notifier.Notify(msgWorkoutFailed, notify.KindError)
		return nil, fmt.Errorf("%w: save log: %v", ErrPersistence, err)
	}

	s.Close()
	s.notifier.Notify(msgWorkoutSaved, notify.KindSuccess)
	s.log.WithField("duration", wl.Duration).Info("workout finished")
	return wl, nil
}

// buildLog materializes the log from current state. Callers hold mu.
func (s *Session) buildLog() *domain.WorkoutLog {
	now := s.now()
	elapsed := now.Sub(s.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	logs := make([]domain.ExerciseLog, len(s.exerciseLogs))
	for i, el := range s.exerciseLogs {
		kept := make([]domain.Set, 0, len(el.Sets))
		for _, set := range el.Sets {
			if set.Performed() {
				// rest timers do not outlive the session
				set.TimerActive = false
				kept = append(kept, set)
			}
		}
		el.Sets = kept
		logs[i] = el
	}

	return &domain.WorkoutLog{
		ID:           s.logID,
		WorkoutID:    s.workout.ID,
		WorkoutName:  s.workout.Name,
		Date:         now.UTC().Format(domain.DateLayout),
		Duration:     int(elapsed / time.Minute),
		ExerciseLogs: logs,
		Notes:        s.notes,
		CreatedAt:    now.UTC(),
	}
}
