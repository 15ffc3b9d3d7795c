package session

import (
	"fmt"
	"math"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/notify"

	"github.com/spf13/cast"
)

// Command is a typed mutation of one set. Commands are the only way set
// fields change, which keeps Completed and TimerActive mutually exclusive.
type Command interface {
	// position names the set the command targets.
	position() (exercise, set int)
	// check plays the command on a scratch copy of the set and reports
	// whether the real apply would be refused.
	check(set *domain.Set) error
	apply(s *Session) error
}

// SetWeight stores a weight. Any value is accepted.
type SetWeight struct {
	Exercise, Set int
	Weight        float64
}

// SetReps stores a rep count. Any value is accepted.
type SetReps struct {
	Exercise, Set int
	Reps          int
}

// MarkCompleted moves a set to Completed, or back to Pending when Completed
// is false. Weight and reps are kept when a set is reopened.
type MarkCompleted struct {
	Exercise, Set int
	Completed     bool
}

// SetTimerActive starts (Pending -> Timing) or abandons (Timing -> Pending)
// the rest timer of a set.
type SetTimerActive struct {
	Exercise, Set int
	Active        bool
}

// Apply runs a command against the session.
func (s *Session) Apply(cmd Command) error {
	return s.ApplyAll(cmd)
}

// ApplyAll runs the commands in order as one unit: every command is checked
// against the state the earlier ones would leave behind, and nothing changes
// unless all of them are accepted.
func (s *Session) ApplyAll(cmds ...Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}

	scratch := make(map[[2]int]*domain.Set)
	for _, cmd := range cmds {
		ei, si := cmd.position()
		set, ok := scratch[[2]int{ei, si}]
		if !ok {
			live, _, err := s.setAt(ei, si)
			if err != nil {
				return err
			}
			cp := *live
			set = &cp
			scratch[[2]int{ei, si}] = set
		}
		if err := cmd.check(set); err != nil {
			return err
		}
	}

	for _, cmd := range cmds {
		if err := cmd.apply(s); err != nil {
			return err
		}
	}
	return nil
}

// SetField applies a loosely typed field update, as it arrives from a form:
// weight and reps are coerced to numbers (anything unparsable becomes 0),
// completed and timerActive to booleans.
func (s *Session) SetField(exerciseIndex, setIndex int, field string, value any) error {
	cmd, err := FieldCommand(exerciseIndex, setIndex, field, value)
	if err != nil {
		return err
	}
	return s.Apply(cmd)
}

// FieldCommand maps a field name and raw value onto a typed command.
func FieldCommand(exerciseIndex, setIndex int, field string, value any) (Command, error) {
	switch field {
	case "weight":
		return SetWeight{Exercise: exerciseIndex, Set: setIndex, Weight: CoerceNumber(value)}, nil
	case "reps":
		return SetReps{Exercise: exerciseIndex, Set: setIndex, Reps: int(CoerceNumber(value))}, nil
	case "completed":
		return MarkCompleted{Exercise: exerciseIndex, Set: setIndex, Completed: cast.ToBool(value)}, nil
	case "timerActive":
		return SetTimerActive{Exercise: exerciseIndex, Set: setIndex, Active: cast.ToBool(value)}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// CoerceNumber converts user input to a number. Non-numeric input yields 0.
func CoerceNumber(value any) float64 {
	f := cast.ToFloat64(value)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func (c SetWeight) position() (int, int) { return c.Exercise, c.Set }
func (c SetReps) position() (int, int) { return c.Exercise, c.Set }
func (c MarkCompleted) position() (int, int) { return c.Exercise, c.Set }
func (c SetTimerActive) position() (int, int) { return c.Exercise, c.Set }

func (c SetWeight) check(set *domain.Set) error {
	set.Weight = c.Weight
	return nil
}

func (c SetReps) check(set *domain.Set) error {
	set.Reps = c.Reps
	return nil
}

func (c MarkCompleted) check(set *domain.Set) error {
	set.Completed = c.Completed
	set.TimerActive = false
	return nil
}

func (c SetTimerActive) check(set *domain.Set) error {
	if !c.Active {
		set.TimerActive = false
		return nil
	}
	if set.Completed {
		return c.refused()
	}
	set.TimerActive = true
	return nil
}

func (c SetTimerActive) refused() error {
	return fmt.Errorf("%w: set %d of exercise %d is completed", ErrInvalidTransition, c.Set, c.Exercise)
}

func (c SetWeight) apply(s *Session) error {
	set, _, err := s.setAt(c.Exercise, c.Set)
	if err != nil {
		return err
	}
	set.Weight = c.Weight
	return nil
}

func (c SetReps) apply(s *Session) error {
	set, _, err := s.setAt(c.Exercise, c.Set)
	if err != nil {
		return err
	}
	set.Reps = c.Reps
	return nil
}

func (c MarkCompleted) apply(s *Session) error {
	set, _, err := s.setAt(c.Exercise, c.Set)
	if err != nil {
		return err
	}

	if !c.Completed {
		if set.TimerActive {
			s.stopRest(set)
		}
		set.Completed = false
		return nil
	}

	switch set.State() {
	case domain.SetCompleted:
		return nil
	case domain.SetTiming:
		// fast-forward: same outcome as the timer running out
		s.stopRest(set)
		s.complete(set)
	default:
		set.Completed = true
	}
	return nil
}

func (c SetTimerActive) apply(s *Session) error {
	set, ex, err := s.setAt(c.Exercise, c.Set)
	if err != nil {
		return err
	}

	if !c.Active {
		if set.TimerActive {
			s.stopRest(set)
		}
		return nil
	}
	if set.Completed {
		return c.refused()
	}
	return s.startRest(set, ex)
}

// startRest arms the set's rest timer, replacing any timer already running
// for it. Callers hold mu.
func (s *Session) startRest(set *domain.Set, ex domain.Exercise) error {
	s.nextToken++
	token := s.nextToken
	setID := set.ID

	if _, err := s.timers.Arm(setID, ex.RestPeriod(), func() { s.restElapsed(setID, token) }); err != nil {
		return err
	}
	s.restTokens[setID] = token
	set.Completed = false
	set.TimerActive = true
	return nil
}

// stopRest cancels the set's rest timer without completing it. Callers hold mu.
func (s *Session) stopRest(set *domain.Set) {
	s.timers.Disarm(set.ID)
	delete(s.restTokens, set.ID)
	set.TimerActive = false
}

// complete is the common end of both Timing -> Completed paths. Callers hold mu.
func (s *Session) complete(set *domain.Set) {
	set.TimerActive = false
	set.Completed = true
	s.notifier.Notify(msgRestComplete, notify.KindInfo)
}

// restElapsed is the timer completion callback. It runs on the timer's
// goroutine, or on the caller's for SkipRest.
func (s *Session) restElapsed(setID string, token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.restTokens[setID] != token {
		return
	}
	delete(s.restTokens, setID)

	set := s.findSet(setID)
	if set == nil || !set.TimerActive {
		return
	}
	s.complete(set)
}

// PauseRest pauses the running rest timer of a set.
func (s *Session) PauseRest(exerciseIndex, setIndex int) error {
	return s.withRestTimer(exerciseIndex, setIndex, func(setID string) {
		if t, ok := s.timers.Get(setID); ok {
			t.Pause()
		}
	})
}

// ResumeRest resumes a paused rest timer.
func (s *Session) ResumeRest(exerciseIndex, setIndex int) error {
	return s.withRestTimer(exerciseIndex, setIndex, func(setID string) {
		if t, ok := s.timers.Get(setID); ok {
			t.Resume()
		}
	})
}

// SkipRest ends the rest period now; the set completes through the timer's
// own completion path.
func (s *Session) SkipRest(exerciseIndex, setIndex int) error {
	s.mu.Lock()
	if err := s.writable(); err != nil {
		s.mu.Unlock()
		return err
	}
	set, _, err := s.setAt(exerciseIndex, setIndex)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !set.TimerActive {
		s.mu.Unlock()
		return fmt.Errorf("%w: no rest timer running", ErrInvalidTransition)
	}
	t, ok := s.timers.Get(set.ID)
	s.mu.Unlock()

	// Skip runs the completion callback synchronously, which takes mu.
	if ok {
		t.Skip()
	}
	return nil
}

func (s *Session) withRestTimer(exerciseIndex, setIndex int, fn func(setID string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	set, _, err := s.setAt(exerciseIndex, setIndex)
	if err != nil {
		return err
	}
	if !set.TimerActive {
		return fmt.Errorf("%w: no rest timer running", ErrInvalidTransition)
	}
	fn(set.ID)
	return nil
}

// AddSet appends a set to an exercise, copying the weight and reps of the
// last set. A rest timer still running on the previous last set is
// cancelled and that set goes back to pending.
func (s *Session) AddSet(exerciseIndex int) (domain.Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return domain.Set{}, err
	}
	if exerciseIndex < 0 || exerciseIndex >= len(s.exerciseLogs) {
		return domain.Set{}, fmt.Errorf("%w: exercise %d", ErrIndexOutOfRange, exerciseIndex)
	}

	el := &s.exerciseLogs[exerciseIndex]
	set := domain.NewSet()
	if n := len(el.Sets); n > 0 {
		last := &el.Sets[n-1]
		set.Weight = last.Weight
		set.Reps = last.Reps
		if last.TimerActive {
			s.stopRest(last)
		}
	}
	el.Sets = append(el.Sets, set)
	return set, nil
}
