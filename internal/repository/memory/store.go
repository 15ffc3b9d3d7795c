// Package memory is the in-process fallback store, used when no document
// database is reachable and in tests. Contents are lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/repository"
)

// Store holds templates, logs and goals in maps. Values are copied on the way
// in and out so callers never share memory with the store.
type Store struct {
	mu           sync.RWMutex
	defaults     map[string]domain.Workout
	defaultOrder []string
	customs      map[string]domain.Workout
	customOrder  []string
	logs         map[string]domain.WorkoutLog
	goals        map[string]domain.WorkoutGoal
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		defaults: make(map[string]domain.Workout),
		customs:  make(map[string]domain.Workout),
		logs:     make(map[string]domain.WorkoutLog),
		goals:    make(map[string]domain.WorkoutGoal),
	}
}

// Workouts returns the store as a repository.WorkoutRepository.
func (s *Store) Workouts() repository.WorkoutRepository { return workoutRepo{s} }

// Logs returns the store as a repository.WorkoutLogRepository.
func (s *Store) Logs() repository.WorkoutLogRepository { return logRepo{s} }

// Goals returns the store as a repository.GoalRepository.
func (s *Store) Goals() repository.GoalRepository { return goalRepo{s} }

type workoutRepo struct{ s *Store }

func (r workoutRepo) GetByID(_ context.Context, id string) (*domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if w, ok := r.s.customs[id]; ok {
		return w.Clone(), nil
	}
	if w, ok := r.s.defaults[id]; ok {
		return w.Clone(), nil
	}
	return nil, repository.ErrNotFound
}

func (r workoutRepo) List(_ context.Context) ([]domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Workout, 0, len(r.s.defaults)+len(r.s.customs))
	for _, id := range r.s.defaultOrder {
		w, ok := r.s.customs[id]
		if !ok {
			w = r.s.defaults[id]
		}
		out = append(out, *w.Clone())
	}
	for _, id := range r.s.customOrder {
		if _, isDefault := r.s.defaults[id]; isDefault {
			continue
		}
		w := r.s.customs[id]
		out = append(out, *w.Clone())
	}
	return out, nil
}

func (r workoutRepo) Save(_ context.Context, w *domain.Workout) error {
	if w == nil || w.ID == "" || w.Name == "" {
		return repository.ErrInvalid
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w.UpdatedAt = time.Now().UTC()
	if _, ok := r.s.customs[w.ID]; !ok {
		r.s.customOrder = append(r.s.customOrder, w.ID)
	}
	r.s.customs[w.ID] = *w.Clone()
	return nil
}

func (r workoutRepo) SaveDefault(_ context.Context, w *domain.Workout) error {
	if w == nil || w.ID == "" || w.Name == "" {
		return repository.ErrInvalid
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w.UpdatedAt = time.Now().UTC()
	if _, ok := r.s.defaults[w.ID]; !ok {
		r.s.defaultOrder = append(r.s.defaultOrder, w.ID)
	}
	r.s.defaults[w.ID] = *w.Clone()
	return nil
}

func (r workoutRepo) CountDefaults(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.defaults)), nil
}

type logRepo struct{ s *Store }

func cloneLog(l domain.WorkoutLog) domain.WorkoutLog {
	logs := make([]domain.ExerciseLog, len(l.ExerciseLogs))
	for i, el := range l.ExerciseLogs {
		logs[i] = el.Clone()
	}
	l.ExerciseLogs = logs
	return l
}

func (r logRepo) Create(_ context.Context, l *domain.WorkoutLog) error {
	if l == nil || l.ID == "" || l.WorkoutID == "" {
		return repository.ErrInvalid
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.logs[l.ID]; exists {
		return repository.ErrDuplicate
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	r.s.logs[l.ID] = cloneLog(*l)
	return nil
}

func (r logRepo) GetByID(_ context.Context, id string) (*domain.WorkoutLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	l = cloneLog(l)
	return &l, nil
}

func (r logRepo) List(_ context.Context) ([]domain.WorkoutLog, error) {
	r.s.mu.RLock()
	out := make([]domain.WorkoutLog, 0, len(r.s.logs))
	for _, l := range r.s.logs {
		out = append(out, cloneLog(l))
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r logRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.logs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.logs, id)
	return nil
}

type goalRepo struct{ s *Store }

func (r goalRepo) List(_ context.Context) ([]domain.WorkoutGoal, error) {
	r.s.mu.RLock()
	out := make([]domain.WorkoutGoal, 0, len(r.s.goals))
	for _, g := range r.s.goals {
		out = append(out, g)
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].StartDate > out[j].StartDate })
	return out, nil
}

func (r goalRepo) GetActive(_ context.Context) (*domain.WorkoutGoal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, g := range r.s.goals {
		if g.IsActive {
			return &g, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r goalRepo) Save(_ context.Context, g *domain.WorkoutGoal) error {
	if g == nil || g.ID == "" {
		return repository.ErrInvalid
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if g.IsActive {
		for id, other := range r.s.goals {
			if id != g.ID && other.IsActive {
				other.IsActive = false
				r.s.goals[id] = other
			}
		}
	}
	r.s.goals[g.ID] = *g
	return nil
}

func (r goalRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.goals[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.goals, id)
	return nil
}
