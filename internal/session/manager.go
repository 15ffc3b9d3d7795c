package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/notify"
	"github.com/fitjourney/chronicle/internal/repository"
	"github.com/fitjourney/chronicle/internal/timer"

	log "github.com/sirupsen/logrus"
)

// Manager owns the live sessions of the process. Sessions share nothing
// except the repositories they were built with.
type Manager struct {
	workouts repository.WorkoutRepository
	logs     repository.WorkoutLogRepository
	notifier notify.Notifier
	now      func() time.Time
	restTick time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithClock replaces time.Now for session start times, dates and durations.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithRestResolution sets the wall-clock length of one rest-timer second.
func WithRestResolution(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.restTick = d
		}
	}
}

// WithNotifier adds a notifier that sees every session's notifications next
// to the session's own feed.
func WithNotifier(n notify.Notifier) ManagerOption {
	return func(m *Manager) { m.notifier = n }
}

// NewManager creates a manager backed by the given repositories.
func NewManager(workouts repository.WorkoutRepository, logs repository.WorkoutLogRepository, opts ...ManagerOption) *Manager {
	m := &Manager{
		workouts: workouts,
		logs:     logs,
		notifier: notify.Discard,
		now:      time.Now,
		restTick: timer.DefaultResolution,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start loads a template and opens a session on it.
func (m *Manager) Start(ctx context.Context, templateID string) (*Session, error) {
	template, err := m.workouts.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
		}
		return nil, fmt.Errorf("load template %s: %w", templateID, err)
	}
	if template == nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
	}

	s := newSession(template, sessionDeps{
		workouts: m.workouts,
		logs:     m.logs,
		notifier: m.notifier,
		now:      m.now,
		restTick: m.restTick,
	})

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	s.log.WithField("exercises", len(template.Exercises)).Info("session started")
	return s, nil
}

// Get returns an open session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Finish finalizes a session and forgets it once the log is stored.
func (m *Manager) Finish(ctx context.Context, id string) (*domain.WorkoutLog, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	wl, err := s.Finish(ctx)
	if err != nil {
		return nil, err
	}
	m.remove(id)
	return wl, nil
}

// Discard closes a session without saving anything.
func (m *Manager) Discard(id string) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}
	s.Close()
	m.remove(id)
	s.log.Info("session discarded")
	return nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Shutdown closes every session; no rest timer fires afterwards.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	if len(sessions) > 0 {
		log.WithField("sessions", len(sessions)).Info("closed open sessions")
	}
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
