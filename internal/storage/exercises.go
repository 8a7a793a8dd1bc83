package storage

import (
	"context"
	"fmt"

	"github.com/claude/fitlog/internal/models"
)

// ExerciseFilter narrows ListExercises results. Zero values mean no filter.
type ExerciseFilter struct {
	MuscleGroup string
	Difficulty  string
	Equipment   string
}

// InsertExercise inserts a catalog exercise. Duplicate names are skipped.
// Returns true if inserted.
func (db *DB) InsertExercise(ctx context.Context, e models.ExerciseRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO exercises (name, description, muscle_group, secondary_muscles,
		 equipment, difficulty, instructions, video_url, image_filename, is_public, user_id)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 ON CONFLICT (name) DO NOTHING`,
		e.Name, e.Description, e.MuscleGroup, e.SecondaryMuscles,
		e.Equipment, e.Difficulty, e.Instructions, e.VideoURL,
		e.ImageFilename, e.IsPublic, e.UserID)
	if err != nil {
		return false, fmt.Errorf("inserting exercise: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListExercises returns public catalog exercises matching the filter.
func (db *DB) ListExercises(ctx context.Context, f ExerciseFilter) ([]models.ExerciseRow, error) {
	query := `SELECT id, name, description, muscle_group, secondary_muscles, equipment,
		difficulty, instructions, video_url, image_filename, is_public, user_id
		FROM exercises WHERE is_public`
	var args []any

	if f.MuscleGroup != "" {
		args = append(args, f.MuscleGroup)
		query += fmt.Sprintf(" AND muscle_group = $%d", len(args))
	}
	if f.Difficulty != "" {
		args = append(args, f.Difficulty)
		query += fmt.Sprintf(" AND difficulty = $%d", len(args))
	}
	if f.Equipment != "" {
		args = append(args, "%"+f.Equipment+"%")
		query += fmt.Sprintf(" AND equipment ILIKE $%d", len(args))
	}
	query += " ORDER BY name"

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseRow
	for rows.Next() {
		var e models.ExerciseRow
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.MuscleGroup,
			&e.SecondaryMuscles, &e.Equipment, &e.Difficulty, &e.Instructions,
			&e.VideoURL, &e.ImageFilename, &e.IsPublic, &e.UserID); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
