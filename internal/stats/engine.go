package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/claude/fitlog/internal/models"
)

// WorkoutSource is the record store the engine reads from. Implementations
// must return a user's completed workouts ordered by date descending.
type WorkoutSource interface {
	ListCompletedWorkouts(ctx context.Context, userID int) ([]models.CompletedWorkoutRow, error)
}

// Engine computes all derived statistics for one user from a single record
// fetch. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	src WorkoutSource
}

// NewEngine creates an Engine backed by the given record store.
func NewEngine(src WorkoutSource) *Engine {
	return &Engine{src: src}
}

// Snapshot is the full statistics payload for one user at one instant.
type Snapshot struct {
	CurrentStreak int              `json:"current_streak"`
	BestStreak    int              `json:"best_streak"`
	Monthly       MonthlyStats     `json:"monthly"`
	TotalHours    float64          `json:"total_hours"`
	Weekly        WeeklyActivity   `json:"weekly_activity"`
	Distribution  TypeDistribution `json:"workout_types"`
	TopExercises  []ExerciseUsage  `json:"most_used_exercises"`
}

// Snapshot fetches the user's full workout history once and computes every
// statistic from that immutable snapshot.
func (e *Engine) Snapshot(ctx context.Context, userID int, now time.Time) (*Snapshot, error) {
	records, err := e.src.ListCompletedWorkouts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing completed workouts: %w", err)
	}

	current, best := Streaks(records, now)
	monthly := Monthly(records, now)

	return &Snapshot{
		CurrentStreak: current,
		BestStreak:    best,
		Monthly:       monthly,
		TotalHours:    math.Round(float64(monthly.TotalDuration)/60*10) / 10,
		Weekly:        Weekly(records, now),
		Distribution:  Distribution(records),
		TopExercises:  TopExercises(records),
	}, nil
}
