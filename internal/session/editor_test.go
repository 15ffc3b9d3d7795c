package session

import (
	"context"
	"errors"
	"testing"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/notify"
	"github.com/fitjourney/chronicle/internal/repository/mocks"
	"github.com/fitjourney/chronicle/internal/timer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func exerciseIDs(v View) (template, logs []string) {
	for _, ex := range v.Workout.Exercises {
		template = append(template, ex.ID)
	}
	for _, el := range v.ExerciseLogs {
		logs = append(logs, el.ExerciseID)
	}
	return template, logs
}

func assertAligned(t *testing.T, s *Session) {
	t.Helper()
	template, logs := exerciseIDs(s.Snapshot())
	assert.Equal(t, template, logs)
}

func TestAddExercise(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.start(t)

	ex, err := s.AddExercise(ctx, NewExercise{Name: "  Lateral Raise ", Reps: "15"})
	require.NoError(t, err)
	assert.NotEmpty(t, ex.ID)
	assert.Equal(t, "Lateral Raise", ex.Name)
	assert.Equal(t, domain.ExerciseAccessory, ex.Type)
	assert.Equal(t, 3, ex.DefaultSets)
	assert.Equal(t, domain.DefaultRestPeriod, ex.DefaultRestPeriod)

	v := s.Snapshot()
	require.Len(t, v.Workout.Exercises, 4)
	assert.Len(t, v.ExerciseLogs[3].Sets, 3)
	assertAligned(t, s)
	assert.Equal(t, []string{msgExerciseAdded}, messages(s.Notifications()))

	saved, err := f.store.Workouts().GetByID(ctx, "default-push-workout")
	require.NoError(t, err)
	assert.Len(t, saved.Exercises, 4)

	_, err = s.AddExercise(ctx, NewExercise{Name: "   "})
	require.ErrorIs(t, err, ErrInvalidExercise)
	assert.Len(t, s.Snapshot().Workout.Exercises, 4)
}

func TestRemoveExercise_CancelsItsTimers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.start(t)

	require.NoError(t, s.Apply(SetTimerActive{Exercise: 0, Set: 2, Active: true}))
	require.NoError(t, s.Apply(SetTimerActive{Exercise: 2, Set: 1, Active: true}))
	removed := restTimer(t, s, 0, 2)
	kept := restTimer(t, s, 2, 1)

	require.NoError(t, s.RemoveExercise(ctx, 0))
	assert.Equal(t, timer.StateCancelled, removed.State())
	assertAligned(t, s)

	// the dips set moved from 2-1 to 1-1 and its timer moved with it
	assert.Equal(t, map[string]bool{"1-1": true}, s.ActiveRestTimers())
	tickN(removed, 90)
	tickN(kept, 45)
	assert.Equal(t, domain.SetCompleted, setAt(s, 1, 1).State())
	assert.Equal(t, []string{msgExerciseRemoved, msgRestComplete}, messages(s.Notifications()))

	require.ErrorIs(t, s.RemoveExercise(ctx, 5), ErrIndexOutOfRange)
	require.ErrorIs(t, s.RemoveExercise(ctx, -1), ErrIndexOutOfRange)
}

func TestRemoveExercise_All(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.start(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.RemoveExercise(ctx, 0))
	}
	v := s.Snapshot()
	assert.Empty(t, v.Workout.Exercises)
	assert.Empty(t, v.ExerciseLogs)
}

func TestReorderExercises(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.start(t)

	require.NoError(t, s.Apply(SetWeight{Exercise: 0, Set: 0, Weight: 100}))
	require.NoError(t, s.Apply(SetTimerActive{Exercise: 2, Set: 0, Active: true}))

	require.NoError(t, s.ReorderExercises(ctx, []int{2, 0, 1}))
	template, logs := exerciseIDs(s.Snapshot())
	assert.Equal(t, []string{"dips", "bench", "fly"}, template)
	assert.Equal(t, template, logs)
	assert.Equal(t, 100.0, setAt(s, 1, 0).Weight)
	assert.Equal(t, map[string]bool{"0-0": true}, s.ActiveRestTimers())

	tickN(restTimer(t, s, 0, 0), 45)
	assert.Equal(t, domain.SetCompleted, setAt(s, 0, 0).State())

	for _, bad := range [][]int{{0, 1}, {0, 0, 1}, {0, 1, 3}, {-1, 0, 1}} {
		require.ErrorIs(t, s.ReorderExercises(ctx, bad), ErrInvalidOrder, "%v", bad)
	}
	template, _ = exerciseIDs(s.Snapshot())
	assert.Equal(t, []string{"dips", "bench", "fly"}, template)

	require.NoError(t, s.ReorderByIDs(ctx, []string{"bench", "fly", "dips"}))
	template, logs = exerciseIDs(s.Snapshot())
	assert.Equal(t, []string{"bench", "fly", "dips"}, template)
	assert.Equal(t, template, logs)
	require.ErrorIs(t, s.ReorderByIDs(ctx, []string{"squat", "fly", "dips"}), ErrInvalidOrder)
}

func TestReorderByIDs_ResolvesAgainstCurrentList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.start(t)

	// ids read before a remove no longer describe the list
	require.NoError(t, s.RemoveExercise(ctx, 1))
	require.ErrorIs(t, s.ReorderByIDs(ctx, []string{"bench", "fly", "dips"}), ErrInvalidOrder)

	added, err := s.AddExercise(ctx, NewExercise{Name: "Cable Crossover"})
	require.NoError(t, err)
	require.ErrorIs(t, s.ReorderByIDs(ctx, []string{"dips", "fly", "bench"}), ErrInvalidOrder)

	require.NoError(t, s.ReorderByIDs(ctx, []string{added.ID, "dips", "bench"}))
	template, logs := exerciseIDs(s.Snapshot())
	assert.Equal(t, []string{added.ID, "dips", "bench"}, template)
	assert.Equal(t, template, logs)
}

func TestRestoreDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.start(t)
	original := s.Snapshot().Workout

	require.NoError(t, s.Apply(SetWeight{Exercise: 1, Set: 0, Weight: 20}))
	require.NoError(t, s.Apply(SetTimerActive{Exercise: 0, Set: 0, Active: true}))
	tm := restTimer(t, s, 0, 0)
	_, err := s.AddExercise(ctx, NewExercise{Name: "Pushups"})
	require.NoError(t, err)
	require.NoError(t, s.RemoveExercise(ctx, 1))
	require.NoError(t, s.ReorderExercises(ctx, []int{2, 1, 0}))

	require.NoError(t, s.RestoreDefaults(ctx))
	v := s.Snapshot()
	assert.Equal(t, original.Exercises, v.Workout.Exercises)
	assertAligned(t, s)
	assert.Empty(t, v.RestTimers)
	assert.Equal(t, timer.StateCancelled, tm.State())
	for _, el := range v.ExerciseLogs {
		for _, set := range el.Sets {
			assert.Equal(t, domain.Set{ID: set.ID}, set)
		}
	}

	saved, err := f.store.Workouts().GetByID(ctx, "default-push-workout")
	require.NoError(t, err)
	assert.Equal(t, original.Exercises, saved.Exercises)

	require.NoError(t, s.RestoreDefaults(ctx))
	again := s.Snapshot()
	assert.Equal(t, v.Workout.Exercises, again.Workout.Exercises)
	require.Len(t, again.ExerciseLogs, len(v.ExerciseLogs))
	for i := range again.ExerciseLogs {
		assert.Len(t, again.ExerciseLogs[i].Sets, len(v.ExerciseLogs[i].Sets))
	}
}

func TestEdit_SaveFailureKeepsLocalChange(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	workouts := mocks.NewMockWorkoutRepository(ctrl)
	logs := mocks.NewMockWorkoutLogRepository(ctrl)

	workouts.EXPECT().GetByID(gomock.Any(), "default-push-workout").Return(pushDay(), nil)
	workouts.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("connection reset")).Times(2)

	var seen []string
	m := NewManager(workouts, logs, WithNotifier(notify.NotifierFunc(func(msg string, _ notify.Kind) {
		seen = append(seen, msg)
	})))
	defer m.Shutdown()

	s, err := m.Start(ctx, "default-push-workout")
	require.NoError(t, err)

	_, err = s.AddExercise(ctx, NewExercise{Name: "Pushups"})
	require.ErrorIs(t, err, ErrPersistence)
	assert.Len(t, s.Snapshot().Workout.Exercises, 4)
	assertAligned(t, s)

	err = s.RemoveExercise(ctx, 0)
	require.ErrorIs(t, err, ErrPersistence)
	assert.Len(t, s.Snapshot().Workout.Exercises, 3)

	ns := s.Notifications()
	require.Len(t, ns, 2)
	for _, n := range ns {
		assert.Equal(t, notify.KindError, n.Kind)
		assert.Equal(t, msgTemplateFailed, n.Message)
	}
	assert.Equal(t, []string{msgTemplateFailed, msgTemplateFailed}, seen)
}

func TestEdit_SavesInEditOrder(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	workouts := mocks.NewMockWorkoutRepository(ctrl)
	logs := mocks.NewMockWorkoutLogRepository(ctrl)

	workouts.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(pushDay(), nil)
	var counts []int
	workouts.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, w *domain.Workout) error {
		counts = append(counts, len(w.Exercises))
		return nil
	}).Times(3)

	m := NewManager(workouts, logs)
	defer m.Shutdown()
	s, err := m.Start(ctx, "default-push-workout")
	require.NoError(t, err)

	_, err = s.AddExercise(ctx, NewExercise{Name: "A"})
	require.NoError(t, err)
	_, err = s.AddExercise(ctx, NewExercise{Name: "B"})
	require.NoError(t, err)
	require.NoError(t, s.RemoveExercise(ctx, 0))

	assert.Equal(t, []int{4, 5, 4}, counts)
}

func TestEdit_ClosedSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.start(t)
	s.Close()

	_, err := s.AddExercise(ctx, NewExercise{Name: "A"})
	require.ErrorIs(t, err, ErrSessionClosed)
	require.ErrorIs(t, s.RestoreDefaults(ctx), ErrSessionClosed)
	require.ErrorIs(t, s.RemoveExercise(ctx, 0), ErrSessionClosed)
	assert.Len(t, s.Snapshot().Workout.Exercises, 3)
}
