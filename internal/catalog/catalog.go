// Package catalog ships the built-in workout templates.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/repository"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var ErrEmptyCatalog = errors.New("catalog has no workouts")

// Defaults returns the built-in templates.
func Defaults() ([]domain.Workout, error) {
	return Parse(bytes.NewReader(defaultsYAML))
}

// Parse decodes a YAML list of templates and checks that ids are unique.
func Parse(r io.Reader) ([]domain.Workout, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var workouts []domain.Workout
	if err := dec.Decode(&workouts); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(workouts) == 0 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[string]bool)
	for _, w := range workouts {
		if w.ID == "" || w.Name == "" {
			return nil, fmt.Errorf("catalog entry %q: id and name are required", w.ID)
		}
		if seen[w.ID] {
			return nil, fmt.Errorf("catalog entry %q: duplicate id", w.ID)
		}
		seen[w.ID] = true
		if len(w.Exercises) == 0 {
			return nil, fmt.Errorf("catalog entry %q: no exercises", w.ID)
		}
	}
	return workouts, nil
}

// Seed writes workouts as defaults when the repository holds none yet.
// It reports how many templates were written.
func Seed(ctx context.Context, repo repository.WorkoutRepository, workouts []domain.Workout) (int, error) {
	n, err := repo.CountDefaults(ctx)
	if err != nil {
		return 0, fmt.Errorf("count default workouts: %w", err)
	}
	if n > 0 {
		log.Debugf("catalog: %d default workouts present, skipping seed", n)
		return 0, nil
	}

	for i := range workouts {
		if err := repo.SaveDefault(ctx, &workouts[i]); err != nil {
			return i, fmt.Errorf("seed workout %s: %w", workouts[i].ID, err)
		}
	}
	log.Infof("catalog: seeded %d default workouts", len(workouts))
	return len(workouts), nil
}
