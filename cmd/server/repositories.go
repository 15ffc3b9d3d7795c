package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fitjourney/chronicle/internal/config"
	"github.com/fitjourney/chronicle/internal/repository"
	"github.com/fitjourney/chronicle/internal/repository/memory"
	"github.com/fitjourney/chronicle/internal/repository/mongo"

	log "github.com/sirupsen/logrus"
)

type repositories struct {
	workouts repository.WorkoutRepository
	logs     repository.WorkoutLogRepository
	goals    repository.GoalRepository

	ensureIndexes func(context.Context) error // nil for the memory backend
	close         func()
}

func (r *repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// openRepositories connects the configured backend. With fallback enabled an
// unreachable MongoDB degrades to the in-memory store.
func openRepositories(ctx context.Context, cfg config.DatabaseConfig) (*repositories, error) {
	if cfg.Backend == config.BackendMemory {
		log.Warn("using in-memory store, data is lost on restart")
		return memoryRepositories(), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.ConnectDB(connectCtx, cfg.URI)
	if err != nil {
		if !cfg.Fallback {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		log.WithError(err).Warn("mongodb unreachable, falling back to in-memory store")
		return memoryRepositories(), nil
	}

	db := client.Database(cfg.Name)
	log.WithField("database", cfg.Name).Info("database connection established")
	return &repositories{
		workouts:      mongo.NewMongoWorkoutRepository(db),
		logs:          mongo.NewMongoWorkoutLogRepository(db),
		goals:         mongo.NewMongoGoalRepository(db),
		ensureIndexes: func(ctx context.Context) error { return mongo.EnsureIndexes(ctx, db) },
		close: func() {
			log.Info("disconnecting mongodb")
			if err := mongo.DisconnectDB(client); err != nil {
				log.WithError(err).Error("failed to disconnect mongodb")
			}
		},
	}, nil
}

func memoryRepositories() *repositories {
	store := memory.NewStore()
	return &repositories{
		workouts: store.Workouts(),
		logs:     store.Logs(),
		goals:    store.Goals(),
	}
}
