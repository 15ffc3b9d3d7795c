// Package session turns a workout template into a live logging session:
// per-set state, rest timers, in-session exercise list edits and the final
// conversion into a persisted workout log.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/notify"
	"github.com/fitjourney/chronicle/internal/repository"
	"github.com/fitjourney/chronicle/internal/timer"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrTemplateNotFound  = errors.New("workout template not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionClosed     = errors.New("session is closed")
	ErrSessionFinishing  = errors.New("session is being finished")
	ErrIndexOutOfRange   = errors.New("exercise or set index out of range")
	ErrInvalidTransition = errors.New("invalid set transition")
	ErrInvalidOrder      = errors.New("order is not a permutation of the exercise list")
	ErrInvalidExercise   = errors.New("exercise name is required")
	ErrUnknownField      = errors.New("unknown set field")
	ErrPersistence       = errors.New("persistence failure")
)

// User-facing notification texts.
const (
	msgRestComplete     = "Rest period complete! Start your next set."
	msgExerciseAdded    = "New exercise added to workout"
	msgExerciseRemoved  = "Exercise removed from workout"
	msgExercisesOrdered = "Exercise order saved"
	msgRestored         = "Workout restored to default exercises"
	msgTemplateFailed   = "Could not save workout changes"
	msgWorkoutSaved     = "Workout completed and saved!"
	msgWorkoutFailed    = "Could not save workout log"
)

// Session is one user's pass through a workout template. All state lives
// behind mu and is reached only through the methods of this package.
type Session struct {
	id       string
	logID    string
	workouts repository.WorkoutRepository
	logs     repository.WorkoutLogRepository
	feed     *notify.Feed
	notifier notify.Notifier
	now      func() time.Time
	log      *log.Entry

	// saveMu orders template saves, finishMu makes finishing single-flight.
	saveMu   sync.Mutex
	finishMu sync.Mutex

	mu           sync.Mutex
	workout      *domain.Workout
	original     *domain.Workout
	exerciseLogs []domain.ExerciseLog
	notes        string
	startedAt    time.Time
	closed       bool
	// finishing is set while a log built from the current state is being
	// saved; mutations are refused until the save settles.
	finishing bool

	// Rest timers are owned per set id so that positional shifts never
	// retarget a running timer. restTokens identifies the arming that a
	// completion belongs to.
	timers     *timer.Slots[string]
	restTokens map[string]uint64
	nextToken  uint64
}

type sessionDeps struct {
	workouts repository.WorkoutRepository
	logs     repository.WorkoutLogRepository
	notifier notify.Notifier
	now      func() time.Time
	restTick time.Duration
}

func newSession(template *domain.Workout, deps sessionDeps) *Session {
	id := uuid.NewString()
	feed := notify.NewFeed(0)
	s := &Session{
		id:         id,
		logID:      uuid.NewString(),
		workouts:   deps.workouts,
		logs:       deps.logs,
		feed:       feed,
		notifier:   notify.Multi{feed, deps.notifier},
		now:        deps.now,
		log:        log.WithFields(log.Fields{"session": id, "workout": template.ID}),
		workout:    template.Clone(),
		original:   template.Clone(),
		startedAt:  deps.now(),
		timers:     timer.NewSlots[string](timer.WithResolution(deps.restTick)),
		restTokens: make(map[string]uint64),
	}
	s.exerciseLogs = blankLogs(s.workout.Exercises, s.today())
	return s
}

func blankLogs(exercises []domain.Exercise, date string) []domain.ExerciseLog {
	logs := make([]domain.ExerciseLog, len(exercises))
	for i, ex := range exercises {
		logs[i] = domain.NewExerciseLog(ex, date)
	}
	return logs
}

func (s *Session) today() string {
	return s.now().UTC().Format(domain.DateLayout)
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// StartedAt returns the moment the session was initialized.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// SetNotes replaces the free-text notes.
func (s *Session) SetNotes(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	s.notes = text
	return nil
}

// Exercise looks an exercise of the live template up by id.
func (s *Session) Exercise(exerciseID string) (domain.Exercise, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ex, ok := s.workout.ExerciseByID(exerciseID)
	return ex.Clone(), ok
}

// Notifications drains the notifications raised since the last call.
func (s *Session) Notifications() []notify.Notification {
	return s.feed.Drain()
}

// Closed reports whether the session has been finished or discarded.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close tears the session down: every rest timer is cancelled without
// firing and further mutations fail with ErrSessionClosed.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.restTokens = make(map[string]uint64)
	s.mu.Unlock()

	s.timers.DisarmAll()
}

// writable reports why the state may not change. Callers hold mu.
func (s *Session) writable() error {
	switch {
	case s.closed:
		return ErrSessionClosed
	case s.finishing:
		return ErrSessionFinishing
	}
	return nil
}

// setAt resolves a position. Callers hold mu.
func (s *Session) setAt(exerciseIndex, setIndex int) (*domain.Set, domain.Exercise, error) {
	if exerciseIndex < 0 || exerciseIndex >= len(s.exerciseLogs) {
		return nil, domain.Exercise{}, fmt.Errorf("%w: exercise %d", ErrIndexOutOfRange, exerciseIndex)
	}
	sets := s.exerciseLogs[exerciseIndex].Sets
	if setIndex < 0 || setIndex >= len(sets) {
		return nil, domain.Exercise{}, fmt.Errorf("%w: set %d of exercise %d", ErrIndexOutOfRange, setIndex, exerciseIndex)
	}
	return &sets[setIndex], s.workout.Exercises[exerciseIndex], nil
}

// findSet locates a set by id. Callers hold mu.
func (s *Session) findSet(setID string) *domain.Set {
	for i := range s.exerciseLogs {
		sets := s.exerciseLogs[i].Sets
		for j := range sets {
			if sets[j].ID == setID {
				return &sets[j]
			}
		}
	}
	return nil
}

// RestTimerKey formats the positional key of a rest timer.
func RestTimerKey(exerciseIndex, setIndex int) string {
	return fmt.Sprintf("%d-%d", exerciseIndex, setIndex)
}

// ActiveRestTimers returns the running rest timers keyed by position. A key is
// present exactly while its set is timing.
func (s *Session) ActiveRestTimers() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := make(map[string]bool)
	for i, el := range s.exerciseLogs {
		for j, set := range el.Sets {
			if set.TimerActive {
				active[RestTimerKey(i, j)] = true
			}
		}
	}
	return active
}

// RestTimerView describes one running rest timer.
type RestTimerView struct {
	ExerciseIndex int    `json:"exerciseIndex"`
	SetIndex      int    `json:"setIndex"`
	Duration      int    `json:"duration"`
	Elapsed       int    `json:"elapsed"`
	Remaining     int    `json:"remaining"`
	Paused        bool   `json:"paused"`
	Display       string `json:"display"`
}

// View is a detached copy of the session state.
type View struct {
	ID           string                   `json:"id"`
	Workout      domain.Workout           `json:"workout"`
	ExerciseLogs []domain.ExerciseLog     `json:"exerciseLogs"`
	Notes        string                   `json:"notes"`
	StartedAt    time.Time                `json:"startedAt"`
	Elapsed      string                   `json:"elapsed"`
	RestTimers   map[string]RestTimerView `json:"restTimers"`
	Closed       bool                     `json:"closed"`
}

// Snapshot copies the current state out of the session.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := make([]domain.ExerciseLog, len(s.exerciseLogs))
	timers := make(map[string]RestTimerView)
	for i, el := range s.exerciseLogs {
		logs[i] = el.Clone()
		for j, set := range el.Sets {
			if !set.TimerActive {
				continue
			}
			v := RestTimerView{ExerciseIndex: i, SetIndex: j}
			if t, ok := s.timers.Get(set.ID); ok {
				v.Duration = t.Duration()
				v.Elapsed = t.Elapsed()
				v.Remaining = t.Remaining()
				v.Paused = t.State() == timer.StatePaused
			}
			v.Display = timer.Format(v.Remaining)
			timers[RestTimerKey(i, j)] = v
		}
	}

	elapsed := s.now().Sub(s.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return View{
		ID:           s.id,
		Workout:      *s.workout.Clone(),
		ExerciseLogs: logs,
		Notes:        s.notes,
		StartedAt:    s.startedAt,
		Elapsed:      timer.Format(int(elapsed / time.Second)),
		RestTimers:   timers,
		Closed:       s.closed,
	}
}
