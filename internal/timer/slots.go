package timer

import (
	"sync"
)

// Slots owns at most one timer per key. Arming a slot always tears down the
// timer it held before, so a slot can never produce two completions.
type Slots[K comparable] struct {
	mu     sync.Mutex
	timers map[K]*Timer
	opts   []Option
}

// NewSlots creates an empty registry. opts are applied to every armed timer.
func NewSlots[K comparable](opts ...Option) *Slots[K] {
	return &Slots[K]{
		timers: make(map[K]*Timer),
		opts:   opts,
	}
}

// Arm cancels whatever timer holds key, then starts a new one. The slot is
// released when the new timer completes.
func (s *Slots[K]) Arm(key K, durationSeconds int, onComplete func()) (*Timer, error) {
	var t *Timer
	t, err := New(durationSeconds, func() {
		s.release(key, t)
		if onComplete != nil {
			onComplete()
		}
	}, s.opts...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	prev := s.timers[key]
	s.timers[key] = t
	s.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
	t.Start()
	return t, nil
}

// Get returns the timer currently held by key.
func (s *Slots[K]) Get(key K) (*Timer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[key]
	return t, ok
}

// Disarm cancels and removes the timer held by key.
func (s *Slots[K]) Disarm(key K) {
	s.mu.Lock()
	t := s.timers[key]
	delete(s.timers, key)
	s.mu.Unlock()

	if t != nil {
		t.Cancel()
	}
}

// DisarmAll cancels every timer.
func (s *Slots[K]) DisarmAll() {
	s.mu.Lock()
	timers := s.timers
	s.timers = make(map[K]*Timer)
	s.mu.Unlock()

	for _, t := range timers {
		t.Cancel()
	}
}

// Len returns the number of armed slots.
func (s *Slots[K]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Slots[K]) release(key K, t *Timer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timers[key] == t {
		delete(s.timers, key)
	}
}
