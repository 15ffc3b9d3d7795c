package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/notify"
	"github.com/fitjourney/chronicle/internal/repository/memory"
	"github.com/fitjourney/chronicle/internal/timer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func pushDay() *domain.Workout {
	return &domain.Workout{
		ID:       "default-push-workout",
		Name:     "Push Day",
		Category: domain.CategoryPush,
		Exercises: []domain.Exercise{
			{ID: "bench", Name: "Bench Press", Type: domain.ExerciseCompound, DefaultSets: 3, DefaultReps: "6-8", DefaultRestPeriod: 90},
			{ID: "fly", Name: "Cable Fly", Type: domain.ExerciseAccessory, DefaultSets: 2, DefaultReps: "12-15"},
			{ID: "dips", Name: "Dips", Type: domain.ExerciseFinishing, DefaultSets: 3, DefaultReps: "AMRAP", DefaultRestPeriod: 45},
		},
	}
}

type fixture struct {
	store   *memory.Store
	clock   *fakeClock
	manager *Manager
}

// newFixture builds a manager whose rest timers only advance through
// explicit ticks.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Workouts().SaveDefault(context.Background(), pushDay()))

	clock := newFakeClock()
	m := NewManager(store.Workouts(), store.Logs(),
		WithClock(clock.Now),
		WithRestResolution(time.Hour),
	)
	t.Cleanup(m.Shutdown)
	return &fixture{store: store, clock: clock, manager: m}
}

func (f *fixture) start(t *testing.T) *Session {
	t.Helper()
	s, err := f.manager.Start(context.Background(), "default-push-workout")
	require.NoError(t, err)
	return s
}

// restTimer returns the timer currently armed for a set.
func restTimer(t *testing.T, s *Session, exerciseIndex, setIndex int) *timer.Timer {
	t.Helper()
	s.mu.Lock()
	set, _, err := s.setAt(exerciseIndex, setIndex)
	var id string
	if err == nil {
		id = set.ID
	}
	s.mu.Unlock()
	require.NoError(t, err)

	tm, ok := s.timers.Get(id)
	require.True(t, ok, "no rest timer for %d-%d", exerciseIndex, setIndex)
	return tm
}

func tickN(tm *timer.Timer, n int) {
	for i := 0; i < n; i++ {
		tm.Tick()
	}
}

func messages(ns []notify.Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Message
	}
	return out
}

func setAt(s *Session, exerciseIndex, setIndex int) domain.Set {
	return s.Snapshot().ExerciseLogs[exerciseIndex].Sets[setIndex]
}

func TestStart_BuildsBlankLogs(t *testing.T) {
	f := newFixture(t)
	s := f.start(t)

	v := s.Snapshot()
	require.Len(t, v.ExerciseLogs, len(v.Workout.Exercises))
	for i, ex := range v.Workout.Exercises {
		el := v.ExerciseLogs[i]
		assert.Equal(t, ex.ID, el.ExerciseID)
		assert.Equal(t, ex.Name, el.ExerciseName)
		assert.Equal(t, "2024-03-09", el.Date)
		require.Len(t, el.Sets, ex.DefaultSets)
		for _, set := range el.Sets {
			assert.NotEmpty(t, set.ID)
			assert.Equal(t, domain.SetPending, set.State())
			assert.Zero(t, set.Weight)
			assert.Zero(t, set.Reps)
		}
	}
	assert.Empty(t, v.Notes)
	assert.Empty(t, v.RestTimers)
	assert.Equal(t, f.clock.Now(), s.StartedAt())
	assert.Equal(t, 1, f.manager.Len())
}

func TestStart_UnknownTemplate(t *testing.T) {
	f := newFixture(t)
	s, err := f.manager.Start(context.Background(), "nope")
	require.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Nil(t, s)
	assert.Zero(t, f.manager.Len())
}

func TestStart_SessionsAreIndependent(t *testing.T) {
	f := newFixture(t)
	a := f.start(t)
	b := f.start(t)
	require.NotEqual(t, a.ID(), b.ID())

	require.NoError(t, a.Apply(SetWeight{Exercise: 0, Set: 0, Weight: 100}))
	require.NoError(t, a.SetNotes("heavy day"))

	assert.Zero(t, setAt(b, 0, 0).Weight)
	assert.Empty(t, b.Snapshot().Notes)
}

func TestSetField_CoercesInput(t *testing.T) {
	f := newFixture(t)
	s := f.start(t)

	require.NoError(t, s.SetField(0, 0, "weight", "102.5"))
	require.NoError(t, s.SetField(0, 0, "reps", "8"))
	assert.Equal(t, 102.5, setAt(s, 0, 0).Weight)
	assert.Equal(t, 8, setAt(s, 0, 0).Reps)

	require.NoError(t, s.SetField(0, 1, "weight", "heavy"))
	require.NoError(t, s.SetField(0, 1, "reps", ""))
	assert.Zero(t, setAt(s, 0, 1).Weight)
	assert.Zero(t, setAt(s, 0, 1).Reps)

	// negative input is stored as given
	require.NoError(t, s.SetField(0, 2, "weight", -5))
	assert.Equal(t, -5.0, setAt(s, 0, 2).Weight)

	require.NoError(t, s.SetField(1, 0, "completed", "true"))
	assert.Equal(t, domain.SetCompleted, setAt(s, 1, 0).State())

	require.ErrorIs(t, s.SetField(0, 0, "tempo", 3), ErrUnknownField)
	require.ErrorIs(t, s.SetField(9, 0, "weight", 1), ErrIndexOutOfRange)
	require.ErrorIs(t, s.SetField(0, 9, "weight", 1), ErrIndexOutOfRange)
}

func TestRest_NaturalCompletion(t *testing.T) {
	f := newFixture(t)
	s := f.start(t)

	require.NoError(t, s.Apply(SetWeight{Exercise: 0, Set: 1, Weight: 80}))
	require.NoError(t, s.Apply(SetTimerActive{Exercise: 0, Set: 1, Active: true}))
	assert.Equal(t, domain.SetTiming, setAt(s, 0, 1).State())
	assert.Equal(t, map[string]bool{"0-1": true}, s.ActiveRestTimers())

	tm := restTimer(t, s, 0, 1)
	assert.Equal(t, 90, tm.Duration())

	tickN(tm, 89)
	assert.Equal(t, domain.SetTiming, setAt(s, 0, 1).State())
	view := s.Snapshot().RestTimers["0-1"]
	assert.Equal(t, 1, view.Remaining)
	assert.Equal(t, "00:01", view.Display)
	assert.Empty(t, s.Notifications())

	tm.Tick()
	set := setAt(s, 0, 1)
	assert.Equal(t, domain.SetCompleted, set.State())
	assert.False(t, set.TimerActive)
	assert.Equal(t, 80.0, set.Weight)
	assert.Empty(t, s.ActiveRestTimers())
	assert.Equal(t, []string{msgRestComplete}, messages(s.Notifications()))

	tickN(tm, 5)
	assert.Empty(t, s.Notifications())
}

func TestRest_DefaultPeriodWhenExerciseHasNone(t *testing.T) {
	f := newFixture(t)
	s := f.start(t)

	require.NoError(t, s.Apply(SetTimerActive{Exercise: 1, Set: 0, Active: true}))
	assert.Equal(t, domain.DefaultRestPeriod, restTimer(t, s, 1, 0).Duration())
}

func TestRest_FastForward(t *testing.T) {
	f := newFixture(t)
	s := f.start(t)

	require.NoError(t, s.Apply(SetTimerActive{Exercise: 0, Set: 0, Active: true}))
	tm := restTimer(t, s, 0, 0)

	require.NoError(t, s.Apply(MarkCompleted{Exercise: 0, Set: 0, Completed: true}))
	assert.Equal(t, domain.SetCompleted, setAt(s, 0, 0).State())
	assert.Equal(t, timer.StateCancelled, tm.State())
	assert.Empty(t, s.ActiveRestTimers())
	assert.Equal(t, []string{msgRestComplete}, messages(s.Notifications()))

	tickN(tm, 100)
	assert.Empty(t, s.Notifications())
}

func TestRest_Skip(t *testing.T) {
	f := newFixture(t)
	s := f.start(t)

	require.ErrorIs(t, s.SkipRest(0, 0), ErrInvalidTransition)

	require.NoError(t, s.Apply(SetTimerActive{Exercise: 0, Set: 0, Active: true}))
	require.NoError(t, s.SkipRest(0, 0))
	assert.Equal(t, domain.SetCompleted, setAt(s, 0, 0).State())
	assert.Equal(t, []string{msgRestComplete}, messages(s.Notifications()))
}

func TestRest_PauseResume(t *testing.T) {
	f := newFixture(t)
	s := f.start(t)

	require.NoError(t, s.Apply(SetTimerActive{Exercise: 2, Set: 0, Active: true}))
	tm := restTimer(t, s, 2, 0)
	tickN(tm, 10)

	require.NoError(t, s.PauseRest(2, 0))
	tickN(tm, 100)
	view := s.Snapshot().RestTimers["2-0"]
	assert.True(t, view.Paused)
	assert.Equal(t, 35, view.Remaining)

	require.NoError(t, s.ResumeRest(2, 0))
	tickN(tm, 35)
	assert.Equal(t, domain.SetCompleted, setAt(s, 2, 0).State())
}

func TestRest_Abandon(t *testing.T) {
	f := newFixture(t)
	s := f.start(t)

	require.NoError(t, s.Apply(SetTimerActive{Exercise: 0, Set: 0, Active: true}))
	tm := restTimer(t, s, 0, 0)

	require.NoError(t, s.Apply(SetTimerActive{Exercise: 0, Set: 0, Active: false}))
	assert.Equal(t, domain.SetPending, setAt(s, 0, 0).State())
	assert.Empty(t, s.ActiveRestTimers())

	tickN(tm, 90)
	assert.Equal(t, domain.SetPending, setAt(s, 0, 0).State())
	assert.Empty(t, s.Notifications())
}

func TestRest_RearmFiresOnce(t *testing.T) {
	f := newFixture(t)
	s := f.start(t)

	require.NoError(t, s.Apply(SetTimerActive{Exercise: 0, Set: 0, Active: true}))
	first := restTimer(t, s, 0, 0)
	tickN(first, 50)

	require.NoError(t, s.Apply(SetTimerActive{Exercise: 0, Set: 0, Active: true}))
	second := restTimer(t, s, 0, 0)
	require.NotSame(t, first, second)
	assert.Equal(t, timer.StateCancelled, first.State())
	assert.Equal(t, 90, second.Remaining())

	tickN(first, 90)
	tickN(second, 90)
	assert.Equal(t, []string{msgRestComplete}, messages(s.Notifications()))
}

func TestRest_WallClock(t *testing.T) {
	store := memory.NewStore()
	w := pushDay()
	w.Exercises[0].DefaultRestPeriod = 3
	require.NoError(t, store.Workouts().SaveDefault(context.Background(), w))

	m := NewManager(store.Workouts(), store.Logs(), WithRestResolution(time.Millisecond))
	defer m.Shutdown()

	s, err := m.Start(context.Background(), w.ID)
	require.NoError(t, err)
	require.NoError(t, s.Apply(SetTimerActive{Exercise: 0, Set: 0, Active: true}))

	assert.Eventually(t, func() bool {
		return setAt(s, 0, 0).State() == domain.SetCompleted
	}, time.Second, time.Millisecond)
}

func TestTransitions(t *testing.T) {
	f := newFixture(t)
	s := f.start(t)

	// pending -> completed directly, without a notification
	require.NoError(t, s.Apply(SetWeight{Exercise: 0, Set: 0, Weight: 60}))
	require.NoError(t, s.Apply(SetReps{Exercise: 0, Set: 0, Reps: 10}))
	require.NoError(t, s.Apply(MarkCompleted{Exercise: 0, Set: 0, Completed: true}))
	assert.Equal(t, domain.SetCompleted, setAt(s, 0, 0).State())
	assert.Empty(t, s.Notifications())

	// completed -> timing is not allowed
	require.ErrorIs(t, s.Apply(SetTimerActive{Exercise: 0, Set: 0, Active: true}), ErrInvalidTransition)
	assert.Equal(t, domain.SetCompleted, setAt(s, 0, 0).State())

	// reopening keeps the data
	require.NoError(t, s.Apply(MarkCompleted{Exercise: 0, Set: 0, Completed: false}))
	set := setAt(s, 0, 0)
	assert.Equal(t, domain.SetPending, set.State())
	assert.Equal(t, 60.0, set.Weight)
	assert.Equal(t, 10, set.Reps)

	// timing -> pending through an uncomplete
	require.NoError(t, s.Apply(SetTimerActive{Exercise: 0, Set: 0, Active: true}))
	require.NoError(t, s.Apply(MarkCompleted{Exercise: 0, Set: 0, Completed: false}))
	assert.Equal(t, domain.SetPending, setAt(s, 0, 0).State())
	assert.Empty(t, s.ActiveRestTimers())
}

func TestFlagsNeverBothSet(t *testing.T) {
	f := newFixture(t)
	s := f.start(t)

	cmds := []Command{
		SetTimerActive{Exercise: 0, Set: 0, Active: true},
		MarkCompleted{Exercise: 0, Set: 0, Completed: true},
		SetTimerActive{Exercise: 0, Set: 0, Active: true},
		MarkCompleted{Exercise: 0, Set: 0, Completed: false},
		SetTimerActive{Exercise: 0, Set: 0, Active: true},
		SetTimerActive{Exercise: 0, Set: 0, Active: true},
		MarkCompleted{Exercise: 0, Set: 0, Completed: true},
		MarkCompleted{Exercise: 0, Set: 0, Completed: true},
		SetTimerActive{Exercise: 0, Set: 0, Active: false},
	}
	for i, cmd := range cmds {
		_ = s.Apply(cmd)
		v := s.Snapshot()
		for ei, el := range v.ExerciseLogs {
			for si, set := range el.Sets {
				assert.False(t, set.Completed && set.TimerActive, "step %d set %d-%d", i, ei, si)
				_, keyed := v.RestTimers[RestTimerKey(ei, si)]
				assert.Equal(t, set.TimerActive, keyed, "step %d set %d-%d", i, ei, si)
			}
		}
	}
}

func TestApplyAll_AllOrNothing(t *testing.T) {
	f := newFixture(t)
	s := f.start(t)

	require.NoError(t, s.Apply(MarkCompleted{Exercise: 0, Set: 1, Completed: true}))

	err := s.ApplyAll(
		SetWeight{Exercise: 0, Set: 1, Weight: 999},
		SetTimerActive{Exercise: 0, Set: 1, Active: true},
	)
	require.ErrorIs(t, err, ErrInvalidTransition)
	set := setAt(s, 0, 1)
	assert.Zero(t, set.Weight)
	assert.Equal(t, domain.SetCompleted, set.State())

	err = s.ApplyAll(
		SetReps{Exercise: 0, Set: 0, Reps: 8},
		SetWeight{Exercise: 0, Set: 7, Weight: 60},
	)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Zero(t, setAt(s, 0, 0).Reps)

	// later commands see the state left by earlier ones
	require.NoError(t, s.ApplyAll(
		SetWeight{Exercise: 0, Set: 1, Weight: 80},
		MarkCompleted{Exercise: 0, Set: 1, Completed: false},
		SetTimerActive{Exercise: 0, Set: 1, Active: true},
	))
	set = setAt(s, 0, 1)
	assert.Equal(t, 80.0, set.Weight)
	assert.Equal(t, domain.SetTiming, set.State())
	assert.Equal(t, map[string]bool{"0-1": true}, s.ActiveRestTimers())
}

func TestAddSet_CopiesLastSet(t *testing.T) {
	f := newFixture(t)
	s := f.start(t)

	require.NoError(t, s.Apply(SetWeight{Exercise: 1, Set: 1, Weight: 22.5}))
	require.NoError(t, s.Apply(SetReps{Exercise: 1, Set: 1, Reps: 12}))
	require.NoError(t, s.Apply(SetTimerActive{Exercise: 1, Set: 1, Active: true}))
	tm := restTimer(t, s, 1, 1)

	set, err := s.AddSet(1)
	require.NoError(t, err)
	assert.Equal(t, 22.5, set.Weight)
	assert.Equal(t, 12, set.Reps)
	assert.Equal(t, domain.SetPending, set.State())

	sets := s.Snapshot().ExerciseLogs[1].Sets
	require.Len(t, sets, 3)
	assert.Equal(t, domain.SetPending, sets[1].State())
	assert.Equal(t, timer.StateCancelled, tm.State())
	assert.Empty(t, s.ActiveRestTimers())

	_, err = s.AddSet(7)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSessionElapsed(t *testing.T) {
	f := newFixture(t)
	s := f.start(t)

	f.clock.Advance(12*time.Minute + 7*time.Second)
	assert.Equal(t, "12:07", s.Snapshot().Elapsed)
}

func TestDiscard_CancelsTimers(t *testing.T) {
	f := newFixture(t)
	s := f.start(t)

	require.NoError(t, s.Apply(SetTimerActive{Exercise: 0, Set: 0, Active: true}))
	tm := restTimer(t, s, 0, 0)

	require.NoError(t, f.manager.Discard(s.ID()))
	assert.Equal(t, timer.StateCancelled, tm.State())
	assert.True(t, s.Closed())
	assert.Empty(t, s.Notifications())

	_, err := f.manager.Get(s.ID())
	require.ErrorIs(t, err, ErrSessionNotFound)
	require.ErrorIs(t, f.manager.Discard(s.ID()), ErrSessionNotFound)
	require.ErrorIs(t, s.Apply(SetWeight{}), ErrSessionClosed)
}

func TestShutdown_ClosesEverySession(t *testing.T) {
	f := newFixture(t)
	a := f.start(t)
	b := f.start(t)
	require.NoError(t, a.Apply(SetTimerActive{Exercise: 0, Set: 0, Active: true}))
	require.NoError(t, b.Apply(SetTimerActive{Exercise: 2, Set: 1, Active: true}))

	f.manager.Shutdown()
	assert.Zero(t, f.manager.Len())
	assert.True(t, a.Closed())
	assert.True(t, b.Closed())
	assert.Zero(t, a.timers.Len())
	assert.Zero(t, b.timers.Len())
}
