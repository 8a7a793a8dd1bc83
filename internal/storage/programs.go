package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/claude/fitlog/internal/models"
	"github.com/jackc/pgx/v5"
)

const programColumns = `id, user_id, title, description, exercises, program_type, difficulty,
	duration_weeks, workout_frequency, fitness_level, target_muscle_groups,
	equipment_needed, calories_burn, image_filename, is_public`

// ProgramFilter narrows ListPrograms results. Zero values mean no filter.
type ProgramFilter struct {
	ProgramType   string
	Level         string
	DurationWeeks int
}

// InsertProgram inserts a workout program. Returns the assigned ID.
func (db *DB) InsertProgram(ctx context.Context, p models.ProgramRow) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO workout_programs (user_id, title, description, exercises, program_type,
		 difficulty, duration_weeks, workout_frequency, fitness_level, target_muscle_groups,
		 equipment_needed, calories_burn, image_filename, is_public)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		 RETURNING id`,
		p.UserID, p.Title, p.Description, p.Exercises, p.ProgramType,
		p.Difficulty, p.DurationWeeks, p.WorkoutFrequency, p.FitnessLevel, p.TargetMuscles,
		p.EquipmentNeeded, p.CaloriesBurn, p.ImageFilename, p.IsPublic).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting program: %w", err)
	}
	return id, nil
}

// UpdateProgram updates the mutable fields of a program.
func (db *DB) UpdateProgram(ctx context.Context, p models.ProgramRow) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE workout_programs
		 SET title = $1, description = $2, exercises = $3, program_type = $4,
		     difficulty = $5, duration_weeks = $6, workout_frequency = $7,
		     image_filename = $8, is_public = $9
		 WHERE id = $10`,
		p.Title, p.Description, p.Exercises, p.ProgramType,
		p.Difficulty, p.DurationWeeks, p.WorkoutFrequency,
		p.ImageFilename, p.IsPublic, p.ID)
	if err != nil {
		return fmt.Errorf("updating program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProgram removes a program. Completed workouts that referenced it
// keep their data with program_id set to NULL (schema ON DELETE SET NULL).
func (db *DB) DeleteProgram(ctx context.Context, programID int) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM workout_programs WHERE id = $1`, programID)
	if err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetProgram retrieves a single program by ID.
func (db *DB) GetProgram(ctx context.Context, programID int) (*models.ProgramRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+programColumns+` FROM workout_programs WHERE id = $1`, programID)

	p, err := scanProgram(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying program: %w", err)
	}
	return p, nil
}

// ListPrograms returns programs visible to the user: public ones plus the
// user's own, with optional type/level/duration filters.
func (db *DB) ListPrograms(ctx context.Context, userID int, f ProgramFilter) ([]models.ProgramRow, error) {
	query := `SELECT ` + programColumns + ` FROM workout_programs WHERE (is_public OR user_id = $1)`
	args := []any{userID}

	if f.ProgramType != "" {
		args = append(args, f.ProgramType)
		query += fmt.Sprintf(" AND program_type = $%d", len(args))
	}
	if f.Level != "" {
		args = append(args, f.Level)
		query += fmt.Sprintf(" AND difficulty = $%d", len(args))
	}
	if f.DurationWeeks > 0 {
		args = append(args, f.DurationWeeks)
		query += fmt.Sprintf(" AND duration_weeks = $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	defer rows.Close()

	var result []models.ProgramRow
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning program: %w", err)
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

// ShareProgram grants another user access to a program. Sharing twice is a
// no-op.
func (db *DB) ShareProgram(ctx context.Context, programID, userID int) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO program_shares (program_id, user_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		programID, userID)
	if err != nil {
		return false, fmt.Errorf("sharing program: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SaveProgram bookmarks a program for the user. Saving twice is a no-op.
func (db *DB) SaveProgram(ctx context.Context, programID, userID int) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO saved_programs (program_id, user_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		programID, userID)
	if err != nil {
		return false, fmt.Errorf("saving program: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListSharedPrograms returns programs other users shared with this user.
func (db *DB) ListSharedPrograms(ctx context.Context, userID int) ([]models.ProgramRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+qualify(programColumns, "p")+`
		 FROM workout_programs p
		 JOIN program_shares s ON s.program_id = p.id
		 WHERE s.user_id = $1
		 ORDER BY p.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying shared programs: %w", err)
	}
	defer rows.Close()

	var result []models.ProgramRow
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning shared program: %w", err)
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

// qualify prefixes each comma-separated column with a table alias.
func qualify(columns, alias string) string {
	parts := strings.Split(columns, ",")
	for i, c := range parts {
		parts[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(parts, ", ")
}

func scanProgram(row pgx.Row) (*models.ProgramRow, error) {
	var p models.ProgramRow
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Exercises,
		&p.ProgramType, &p.Difficulty, &p.DurationWeeks, &p.WorkoutFrequency,
		&p.FitnessLevel, &p.TargetMuscles, &p.EquipmentNeeded, &p.CaloriesBurn,
		&p.ImageFilename, &p.IsPublic)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
