package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/fitlog/internal/models"
	"github.com/google/uuid"
)

const workoutColumns = `id, user_id, program_id, date, notes, rating, duration_min,
	calories_burn, category, exercises`

// InsertCompletedWorkout inserts a logged session. A zero Date defaults to
// the insertion time and a zero ID gets a fresh UUID, so API-logged sessions
// never collide on the primary key. Callers that supply an ID (the legacy
// importer's deterministic keys) keep it, and re-inserting it is a no-op.
func (db *DB) InsertCompletedWorkout(ctx context.Context, w models.CompletedWorkoutRow) error {
	normalizeWorkout(&w)
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO completed_workouts (id, user_id, program_id, date, notes, rating,
		 duration_min, calories_burn, category, exercises)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT DO NOTHING`,
		w.ID, w.UserID, w.ProgramID, w.Date, w.Notes, w.Rating,
		w.DurationMin, w.Calories, w.Category, w.Exercises)
	if err != nil {
		return fmt.Errorf("inserting completed workout: %w", err)
	}
	return nil
}

// normalizeWorkout fills a row's generated fields before insert.
func normalizeWorkout(w *models.CompletedWorkoutRow) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.Date.IsZero() {
		w.Date = time.Now()
	}
}

// ListCompletedWorkouts returns a user's full workout history ordered by
// date descending, the order the statistics engine expects.
func (db *DB) ListCompletedWorkouts(ctx context.Context, userID int) ([]models.CompletedWorkoutRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+workoutColumns+`
		 FROM completed_workouts
		 WHERE user_id = $1
		 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying completed workouts: %w", err)
	}
	defer rows.Close()

	var result []models.CompletedWorkoutRow
	for rows.Next() {
		var w models.CompletedWorkoutRow
		if err := rows.Scan(&w.ID, &w.UserID, &w.ProgramID, &w.Date, &w.Notes, &w.Rating,
			&w.DurationMin, &w.Calories, &w.Category, &w.Exercises); err != nil {
			return nil, fmt.Errorf("scanning completed workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// QueryCompletedWorkouts retrieves a user's workouts in a time range,
// date descending.
func (db *DB) QueryCompletedWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.CompletedWorkoutRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+workoutColumns+`
		 FROM completed_workouts
		 WHERE user_id = $1 AND date >= $2 AND date < $3
		 ORDER BY date DESC`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying completed workouts: %w", err)
	}
	defer rows.Close()

	var result []models.CompletedWorkoutRow
	for rows.Next() {
		var w models.CompletedWorkoutRow
		if err := rows.Scan(&w.ID, &w.UserID, &w.ProgramID, &w.Date, &w.Notes, &w.Rating,
			&w.DurationMin, &w.Calories, &w.Category, &w.Exercises); err != nil {
			return nil, fmt.Errorf("scanning completed workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// CountCompletedWorkouts returns the total number of sessions a user has
// logged.
func (db *DB) CountCompletedWorkouts(ctx context.Context, userID int) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM completed_workouts WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting completed workouts: %w", err)
	}
	return count, nil
}

// CalendarEntry maps one workout date to the title of the program trained.
type CalendarEntry struct {
	Date  string `json:"date"`
	Title string `json:"title"`
}

// GetWorkoutCalendar returns one entry per logged workout with its calendar
// date and program title (empty for ad-hoc sessions).
func (db *DB) GetWorkoutCalendar(ctx context.Context, userID int) ([]CalendarEntry, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT w.date::date, COALESCE(p.title, '')
		 FROM completed_workouts w
		 LEFT JOIN workout_programs p ON p.id = w.program_id
		 WHERE w.user_id = $1
		 ORDER BY w.date`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workout calendar: %w", err)
	}
	defer rows.Close()

	var result []CalendarEntry
	for rows.Next() {
		var date time.Time
		var e CalendarEntry
		if err := rows.Scan(&date, &e.Title); err != nil {
			return nil, fmt.Errorf("scanning calendar entry: %w", err)
		}
		e.Date = date.Format("2006-01-02")
		result = append(result, e)
	}
	return result, rows.Err()
}
