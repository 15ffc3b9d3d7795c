package timer_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/fitjourney/chronicle/internal/timer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew_InvalidDuration(t *testing.T) {
	for _, d := range []int{0, -1, -90} {
		tm, err := timer.New(d, func() {})
		require.ErrorIs(t, err, timer.ErrInvalidDuration)
		assert.Nil(t, tm)
	}
}

func TestTimer_CompletesAfterExactlyNTicks(t *testing.T) {
	for _, n := range []int{1, 2, 5, 90} {
		var fired atomic.Int32
		tm, err := timer.New(n, func() { fired.Add(1) })
		require.NoError(t, err)

		for i := 1; i < n; i++ {
			assert.False(t, tm.Tick())
			assert.Equal(t, int32(0), fired.Load(), "fired early at tick %d of %d", i, n)
			assert.Equal(t, n-i, tm.Remaining())
			assert.Equal(t, i, tm.Elapsed())
		}

		assert.True(t, tm.Tick())
		assert.Equal(t, int32(1), fired.Load())
		assert.Equal(t, 0, tm.Remaining())
		assert.Equal(t, n, tm.Elapsed())
		assert.Equal(t, timer.StateDone, tm.State())

		// extra ticks never fire again
		for i := 0; i < 3; i++ {
			assert.True(t, tm.Tick())
		}
		assert.Equal(t, int32(1), fired.Load())
		assert.Equal(t, n, tm.Elapsed())
	}
}

func TestTimer_PauseResume(t *testing.T) {
	var fired atomic.Int32
	tm, err := timer.New(3, func() { fired.Add(1) })
	require.NoError(t, err)

	tm.Tick()
	tm.Pause()
	assert.Equal(t, timer.StatePaused, tm.State())
	for i := 0; i < 10; i++ {
		assert.False(t, tm.Tick())
	}
	assert.Equal(t, 1, tm.Elapsed())
	assert.Equal(t, 2, tm.Remaining())

	tm.Resume()
	tm.Pause()
	tm.Resume()
	assert.Equal(t, timer.StateRunning, tm.State())
	tm.Tick()
	assert.Equal(t, int32(0), fired.Load())
	tm.Tick()
	assert.Equal(t, int32(1), fired.Load())

	// resume on a finished timer changes nothing
	tm.Resume()
	assert.Equal(t, timer.StateDone, tm.State())
}

func TestTimer_SkipFiresSynchronouslyOnce(t *testing.T) {
	var fired atomic.Int32
	tm, err := timer.New(60, func() { fired.Add(1) })
	require.NoError(t, err)
	tm.Tick()

	tm.Skip()
	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, 0, tm.Remaining())
	assert.Equal(t, timer.StateDone, tm.State())

	tm.Skip()
	tm.Tick()
	assert.Equal(t, int32(1), fired.Load())

	select {
	case <-tm.Done():
	default:
		t.Fatal("done channel not closed after skip")
	}
}

func TestTimer_SkipWhilePaused(t *testing.T) {
	var fired atomic.Int32
	tm, err := timer.New(10, func() { fired.Add(1) })
	require.NoError(t, err)
	tm.Pause()
	tm.Skip()
	assert.Equal(t, int32(1), fired.Load())
}

func TestTimer_CancelNeverFires(t *testing.T) {
	var fired atomic.Int32
	tm, err := timer.New(2, func() { fired.Add(1) })
	require.NoError(t, err)

	tm.Tick()
	tm.Cancel()
	assert.Equal(t, timer.StateCancelled, tm.State())
	assert.True(t, tm.Tick())
	tm.Skip()
	tm.Resume()
	assert.True(t, tm.Tick())
	assert.Equal(t, int32(0), fired.Load())
	assert.Equal(t, 1, tm.Elapsed())
}

func TestTimer_WallClock(t *testing.T) {
	var fired atomic.Int32
	tm, err := timer.New(3, func() { fired.Add(1) }, timer.WithResolution(5*time.Millisecond))
	require.NoError(t, err)

	tm.Start()
	tm.Start() // second driver is never attached

	select {
	case <-tm.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not complete")
	}
	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, 3, tm.Elapsed())
}

func TestTimer_WallClockCancel(t *testing.T) {
	var fired atomic.Int32
	tm, err := timer.New(1000, func() { fired.Add(1) }, timer.WithResolution(time.Millisecond))
	require.NoError(t, err)

	tm.Start()
	time.Sleep(10 * time.Millisecond)
	tm.Cancel()

	<-tm.Done()
	elapsed := tm.Elapsed()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, elapsed, tm.Elapsed())
	assert.Equal(t, int32(0), fired.Load())
}

func TestTimer_WallClockPause(t *testing.T) {
	tm, err := timer.New(1000, nil, timer.WithResolution(time.Millisecond))
	require.NoError(t, err)
	defer tm.Cancel()

	tm.Pause()
	tm.Start()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, tm.Elapsed())

	tm.Resume()
	require.Eventually(t, func() bool { return tm.Elapsed() > 0 }, time.Second, time.Millisecond)
}

func TestFormat(t *testing.T) {
	cases := map[int]string{
		0:    "00:00",
		5:    "00:05",
		59:   "00:59",
		60:   "01:00",
		90:   "01:30",
		3599: "59:59",
		-4:   "00:00",
	}
	for in, want := range cases {
		assert.Equal(t, want, timer.Format(in), "Format(%d)", in)
	}
}
