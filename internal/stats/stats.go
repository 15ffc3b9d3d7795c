// Package stats derives dashboard numbers from stored workout logs.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/fitjourney/chronicle/internal/domain"
)

// DefaultWeeks is how many weeks Summary counts back.
const DefaultWeeks = 10

// TrackedExercises are the lifts whose max weight is charted over time.
var TrackedExercises = []string{
	"Bench Press",
	"Deadlift",
	"Barbell Back Squats",
	"Overhead Press",
}

// Summary is the all-time overview of a log history.
type Summary struct {
	TotalWorkouts    int                `json:"totalWorkouts"`
	TotalSets        int                `json:"totalSets"`
	TotalWeight      float64            `json:"totalWeight"`
	WeeklyWorkouts   []int              `json:"weeklyWorkouts"`
	ExerciseProgress []ExerciseProgress `json:"exerciseProgress"`
}

// ProgressPoint is the heaviest set of an exercise on one date.
type ProgressPoint struct {
	Date      string  `json:"date"`
	MaxWeight float64 `json:"maxWeight"`
}

// ExerciseProgress is the max-weight history of one exercise, oldest first.
type ExerciseProgress struct {
	ExerciseID   string          `json:"exerciseId"`
	ExerciseName string          `json:"exerciseName"`
	Data         []ProgressPoint `json:"data"`
}

// GoalProgress reports workouts done this week against a weekly target.
type GoalProgress struct {
	Current    int `json:"current"`
	Target     int `json:"target"`
	Percentage int `json:"percentage"`
}

// Summarize computes the overview at now.
func Summarize(logs []domain.WorkoutLog, now time.Time) Summary {
	s := Summary{
		TotalWorkouts:    len(logs),
		WeeklyWorkouts:   WeeklyCounts(logs, DefaultWeeks, now),
		ExerciseProgress: Progress(logs, TrackedExercises),
	}
	for _, wl := range logs {
		for _, el := range wl.ExerciseLogs {
			s.TotalSets += len(el.Sets)
			for _, set := range el.Sets {
				s.TotalWeight += set.Weight * float64(set.Reps)
			}
		}
	}
	return s
}

// WeeklyCounts counts workouts per 7-day bucket for the last weeks buckets,
// oldest first. Bucket 0 (last element) holds the 7 days ending at now.
func WeeklyCounts(logs []domain.WorkoutLog, weeks int, now time.Time) []int {
	if weeks <= 0 {
		return []int{}
	}
	counts := make([]int, weeks)
	const week = 7 * 24 * time.Hour
	for _, wl := range logs {
		d, ok := parseDate(wl.Date)
		if !ok {
			continue
		}
		diff := now.Sub(d)
		if diff < 0 {
			continue
		}
		if idx := int(diff / week); idx < weeks {
			counts[weeks-1-idx]++
		}
	}
	return counts
}

// Progress collects the per-log max weight of every exercise whose name is
// in names. Series are keyed by exercise id, points sorted by date.
func Progress(logs []domain.WorkoutLog, names []string) []ExerciseProgress {
	tracked := make(map[string]bool, len(names))
	for _, n := range names {
		tracked[n] = true
	}

	var order []string
	series := make(map[string]*ExerciseProgress)
	for _, wl := range logs {
		for _, el := range wl.ExerciseLogs {
			if !tracked[el.ExerciseName] || len(el.Sets) == 0 {
				continue
			}
			heaviest := math.Inf(-1)
			for _, set := range el.Sets {
				heaviest = math.Max(heaviest, set.Weight)
			}
			p, ok := series[el.ExerciseID]
			if !ok {
				p = &ExerciseProgress{ExerciseID: el.ExerciseID, ExerciseName: el.ExerciseName}
				series[el.ExerciseID] = p
				order = append(order, el.ExerciseID)
			}
			p.Data = append(p.Data, ProgressPoint{Date: wl.Date, MaxWeight: heaviest})
		}
	}

	out := make([]ExerciseProgress, 0, len(order))
	for _, id := range order {
		p := series[id]
		sort.SliceStable(p.Data, func(i, j int) bool { return p.Data[i].Date < p.Data[j].Date })
		out = append(out, *p)
	}
	return out
}

// WeeklyGoal counts the workouts logged since the most recent Sunday. The
// percentage is capped at 100.
func WeeklyGoal(logs []domain.WorkoutLog, target int, now time.Time) GoalProgress {
	today := midnight(now)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))

	current := 0
	for _, wl := range logs {
		if d, ok := parseDate(wl.Date); ok && !d.Before(weekStart) {
			current++
		}
	}

	gp := GoalProgress{Current: current, Target: target}
	if target > 0 {
		gp.Percentage = int(math.Min(100, math.Round(float64(current)/float64(target)*100)))
	}
	return gp
}

// Streak counts consecutive training days ending today or yesterday.
// Several workouts on one day count once.
func Streak(logs []domain.WorkoutLog, now time.Time) int {
	days := make([]time.Time, 0, len(logs))
	for _, wl := range logs {
		if d, ok := parseDate(wl.Date); ok {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := midnight(now)
	if today.Sub(days[0]) > 24*time.Hour {
		return 0
	}

	streak := 1
	current := days[0]
	for _, d := range days[1:] {
		switch daysBetween(d, current) {
		case 0:
		case 1:
			streak++
			current = d
		default:
			return streak
		}
	}
	return streak
}

func parseDate(s string) (time.Time, bool) {
	d, err := time.Parse(domain.DateLayout, s)
	return d, err == nil
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(earlier, later time.Time) int {
	return int(math.Round(later.Sub(earlier).Hours() / 24))
}
