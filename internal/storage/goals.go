package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/fitlog/internal/models"
	"github.com/jackc/pgx/v5"
)

const goalColumns = `id, user_id, title, description, category, target_date, progress,
	is_completed, target_value, current_value, unit, frequency, priority`

// InsertGoal inserts a goal. Returns the assigned ID.
func (db *DB) InsertGoal(ctx context.Context, g models.GoalRow) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO goals (user_id, title, description, category, target_date, progress,
		 is_completed, target_value, current_value, unit, frequency, priority)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		 RETURNING id`,
		g.UserID, g.Title, g.Description, g.Category, g.TargetDate, g.Progress,
		g.IsCompleted, g.TargetValue, g.CurrentValue, g.Unit, g.Frequency, g.Priority).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting goal: %w", err)
	}
	return id, nil
}

// GetGoal retrieves a single goal by ID.
func (db *DB) GetGoal(ctx context.Context, goalID int) (*models.GoalRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = $1`, goalID)

	var g models.GoalRow
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category,
		&g.TargetDate, &g.Progress, &g.IsCompleted, &g.TargetValue,
		&g.CurrentValue, &g.Unit, &g.Frequency, &g.Priority)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying goal: %w", err)
	}
	return &g, nil
}

// ListGoals returns a user's goals, optionally filtered by completion state.
func (db *DB) ListGoals(ctx context.Context, userID int, completed bool) ([]models.GoalRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+goalColumns+`
		 FROM goals
		 WHERE user_id = $1 AND is_completed = $2
		 ORDER BY priority DESC, id`, userID, completed)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	var result []models.GoalRow
	for rows.Next() {
		var g models.GoalRow
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category,
			&g.TargetDate, &g.Progress, &g.IsCompleted, &g.TargetValue,
			&g.CurrentValue, &g.Unit, &g.Frequency, &g.Priority); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

// UpdateGoalProgress sets a goal's progress; 100 marks it completed. The
// current value for numeric goals tracks the progress fraction.
func (db *DB) UpdateGoalProgress(ctx context.Context, goalID, progress int) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE goals
		 SET progress = $1,
		     is_completed = ($1 = 100),
		     current_value = CASE WHEN target_value IS NOT NULL
		                          THEN target_value * $1 / 100.0
		                          ELSE current_value END
		 WHERE id = $2`,
		progress, goalID)
	if err != nil {
		return fmt.Errorf("updating goal progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
