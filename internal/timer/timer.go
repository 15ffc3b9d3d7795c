// Package timer implements the rest-timer countdown used by workout sessions.
//
// A Timer counts whole seconds up to a fixed duration and calls its completion
// callback exactly once when the duration is reached. It can be driven by
// hand through Tick or by the wall clock through Start.
package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultResolution is the wall-clock length of one tick.
const DefaultResolution = time.Second

var ErrInvalidDuration = errors.New("timer duration must be positive")

// State is the lifecycle position of a Timer.
type State string

const (
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateDone      State = "done"
	StateCancelled State = "cancelled"
)

// Finished reports whether the timer can no longer tick.
func (s State) Finished() bool {
	return s == StateDone || s == StateCancelled
}

// Timer is a one-shot countdown of durationSeconds ticks.
type Timer struct {
	mu         sync.Mutex
	duration   int
	elapsed    int
	state      State
	onComplete func()
	resolution time.Duration
	driving    bool

	stop     chan struct{}
	stopOnce sync.Once
}

// Option configures a Timer.
type Option func(*Timer)

// WithResolution changes the wall-clock interval between ticks used by Start.
func WithResolution(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.resolution = d
		}
	}
}

// New creates a running timer. It does not tick on its own until Start is called.
func New(durationSeconds int, onComplete func(), opts ...Option) (*Timer, error) {
	if durationSeconds <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, durationSeconds)
	}
	t := &Timer{
		duration:   durationSeconds,
		state:      StateRunning,
		onComplete: onComplete,
		resolution: DefaultResolution,
		stop:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Start attaches the wall-clock driver. Calling it more than once is a no-op.
func (t *Timer) Start() {
	t.mu.Lock()
	if t.driving || t.state.Finished() {
		t.mu.Unlock()
		return
	}
	t.driving = true
	t.mu.Unlock()

	go t.run()
}

func (t *Timer) run() {
	ticker := time.NewTicker(t.resolution)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			if t.Tick() {
				return
			}
		}
	}
}

// Tick advances the timer by one second if it is running and reports whether
// the timer has finished. The tick that reaches the duration fires the
// completion callback.
func (t *Timer) Tick() bool {
	t.mu.Lock()
	if t.state != StateRunning {
		finished := t.state.Finished()
		t.mu.Unlock()
		return finished
	}
	t.elapsed++
	if t.elapsed < t.duration {
		t.mu.Unlock()
		return false
	}
	cb := t.finishLocked(StateDone)
	t.mu.Unlock()

	t.halt()
	if cb != nil {
		cb()
	}
	return true
}

// Pause stops ticking without resetting elapsed time.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateRunning {
		t.state = StatePaused
	}
}

// Resume restarts ticking after Pause.
func (t *Timer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StatePaused {
		t.state = StateRunning
	}
}

// Skip jumps to zero remaining and runs the completion callback on the
// caller's goroutine. It does nothing on a finished timer.
func (t *Timer) Skip() {
	t.mu.Lock()
	if t.state.Finished() {
		t.mu.Unlock()
		return
	}
	t.elapsed = t.duration
	cb := t.finishLocked(StateDone)
	t.mu.Unlock()

	t.halt()
	if cb != nil {
		cb()
	}
}

// Cancel stops the timer. Once Cancel returns the completion callback will
// never run.
func (t *Timer) Cancel() {
	t.mu.Lock()
	if t.state.Finished() {
		t.mu.Unlock()
		return
	}
	t.finishLocked(StateCancelled)
	t.mu.Unlock()

	t.halt()
}

// finishLocked moves to a terminal state and hands out the callback at most once.
func (t *Timer) finishLocked(s State) func() {
	t.state = s
	cb := t.onComplete
	t.onComplete = nil
	return cb
}

func (t *Timer) halt() {
	t.stopOnce.Do(func() { close(t.stop) })
}

// Done is closed once the timer has completed or been cancelled.
func (t *Timer) Done() <-chan struct{} {
	return t.stop
}

// State returns the current state.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Duration returns the configured duration in seconds.
func (t *Timer) Duration() int {
	return t.duration
}

// Elapsed returns the whole seconds counted so far.
func (t *Timer) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

// Remaining returns the whole seconds left, never negative.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if r := t.duration - t.elapsed; r > 0 {
		return r
	}
	return 0
}

// Format renders seconds as mm:ss.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
