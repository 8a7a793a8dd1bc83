package storage

import (
	"context"
	"fmt"

	"github.com/claude/fitlog/internal/models"
)

// ListAchievements returns the achievements a user has earned, oldest first.
func (db *DB) ListAchievements(ctx context.Context, userID int) ([]models.AchievementRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, description, icon, date_earned
		 FROM achievements
		 WHERE user_id = $1
		 ORDER BY date_earned`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying achievements: %w", err)
	}
	defer rows.Close()

	var result []models.AchievementRow
	for rows.Next() {
		var a models.AchievementRow
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Description, &a.Icon, &a.DateEarned); err != nil {
			return nil, fmt.Errorf("scanning achievement: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// AwardAchievement records an achievement for the user if not already
// earned. Returns true if newly awarded.
func (db *DB) AwardAchievement(ctx context.Context, userID int, name, description, icon string) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO achievements (user_id, name, description, icon)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, name) DO NOTHING`,
		userID, name, description, icon)
	if err != nil {
		return false, fmt.Errorf("awarding achievement: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
