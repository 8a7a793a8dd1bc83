package importer

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/claude/fitlog/internal/models"
	"github.com/google/uuid"
)

// Legacy row shapes as stored by the original SQLite app. Nullable columns
// use sql.Null* so partially filled rows still import.

type legacyUser struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
}

type legacyProgram struct {
	ID               int
	UserID           int
	Title            string
	Description      sql.NullString
	Exercises        sql.NullString
	Category         sql.NullString
	ProgramType      sql.NullString
	Difficulty       sql.NullString
	Duration         sql.NullInt64
	WorkoutFrequency sql.NullString
	FitnessLevel     sql.NullString
	TargetMuscles    sql.NullString
	EquipmentNeeded  sql.NullString
	CaloriesBurn     sql.NullInt64
	ImageFilename    sql.NullString
	IsPublic         bool
}

type legacyWorkout struct {
	ID        int
	UserID    int
	ProgramID int
	Date      time.Time
	Notes     sql.NullString
	Rating    sql.NullInt64
}

type legacyGoal struct {
	ID           int
	UserID       int
	Title        string
	Description  sql.NullString
	Category     sql.NullString
	TargetDate   sql.NullTime
	Progress     int
	IsCompleted  bool
	TargetValue  sql.NullFloat64
	CurrentValue sql.NullFloat64
	Unit         sql.NullString
	Frequency    sql.NullString
	Priority     int
}

func readLegacyUsers(db *sql.DB) ([]legacyUser, error) {
	rows, err := db.Query(`SELECT id, username, email, password_hash FROM user ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying legacy users: %w", err)
	}
	defer rows.Close()

	var result []legacyUser
	for rows.Next() {
		var u legacyUser
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("scanning legacy user: %w", err)
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

func readLegacyPrograms(db *sql.DB) ([]legacyProgram, error) {
	rows, err := db.Query(
		`SELECT id, user_id, title, description, exercises, category, program_type,
		        difficulty, duration, workout_frequency, fitness_level,
		        target_muscle_groups, equipment_needed, calories_burn,
		        image_filename, is_public
		 FROM workout_program ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying legacy programs: %w", err)
	}
	defer rows.Close()

	var result []legacyProgram
	for rows.Next() {
		var p legacyProgram
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Exercises,
			&p.Category, &p.ProgramType, &p.Difficulty, &p.Duration, &p.WorkoutFrequency,
			&p.FitnessLevel, &p.TargetMuscles, &p.EquipmentNeeded, &p.CaloriesBurn,
			&p.ImageFilename, &p.IsPublic); err != nil {
			return nil, fmt.Errorf("scanning legacy program: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func readLegacyWorkouts(db *sql.DB) ([]legacyWorkout, error) {
	rows, err := db.Query(
		`SELECT id, user_id, program_id, date, notes, rating FROM completed_workout ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying legacy workouts: %w", err)
	}
	defer rows.Close()

	var result []legacyWorkout
	for rows.Next() {
		var w legacyWorkout
		if err := rows.Scan(&w.ID, &w.UserID, &w.ProgramID, &w.Date, &w.Notes, &w.Rating); err != nil {
			return nil, fmt.Errorf("scanning legacy workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

func readLegacyGoals(db *sql.DB) ([]legacyGoal, error) {
	rows, err := db.Query(
		`SELECT id, user_id, title, description, category, target_date, progress,
		        is_completed, target_value, current_value, unit, frequency, priority
		 FROM goal ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying legacy goals: %w", err)
	}
	defer rows.Close()

	var result []legacyGoal
	for rows.Next() {
		var g legacyGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Category,
			&g.TargetDate, &g.Progress, &g.IsCompleted, &g.TargetValue, &g.CurrentValue,
			&g.Unit, &g.Frequency, &g.Priority); err != nil {
			return nil, fmt.Errorf("scanning legacy goal: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

// WorkoutUUID derives a stable UUID from a legacy workout's integer key, so
// re-running the import hits the ON CONFLICT guard instead of duplicating.
func WorkoutUUID(legacyID int) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("completed_workout/%d", legacyID)))
}

func (p legacyProgram) toRow(userID int) models.ProgramRow {
	row := models.ProgramRow{
		UserID:           userID,
		Title:            p.Title,
		Description:      p.Description.String,
		Exercises:        p.Exercises.String,
		ProgramType:      p.ProgramType.String,
		Difficulty:       p.Difficulty.String,
		WorkoutFrequency: p.WorkoutFrequency.String,
		FitnessLevel:     p.FitnessLevel.String,
		TargetMuscles:    p.TargetMuscles.String,
		EquipmentNeeded:  p.EquipmentNeeded.String,
		ImageFilename:    p.ImageFilename.String,
		IsPublic:         p.IsPublic,
	}
	// Older rows only carry the free-text category
	if row.ProgramType == "" {
		row.ProgramType = p.Category.String
	}
	if p.Duration.Valid {
		weeks := int(p.Duration.Int64)
		row.DurationWeeks = &weeks
	}
	if p.CaloriesBurn.Valid {
		cal := int(p.CaloriesBurn.Int64)
		row.CaloriesBurn = &cal
	}
	return row
}

func (w legacyWorkout) toRow(userID int, programID *int, category string) models.CompletedWorkoutRow {
	row := models.CompletedWorkoutRow{
		ID:        WorkoutUUID(w.ID),
		UserID:    userID,
		ProgramID: programID,
		Date:      w.Date,
		Notes:     w.Notes.String,
		Category:  category,
	}
	if w.Rating.Valid {
		rating := int(w.Rating.Int64)
		row.Rating = &rating
	}
	return row
}

func (g legacyGoal) toRow(userID int) models.GoalRow {
	row := models.GoalRow{
		UserID:      userID,
		Title:       g.Title,
		Description: g.Description.String,
		Category:    g.Category.String,
		Progress:    g.Progress,
		IsCompleted: g.IsCompleted,
		Unit:        g.Unit.String,
		Frequency:   g.Frequency.String,
		Priority:    g.Priority,
	}
	if g.TargetDate.Valid {
		target := g.TargetDate.Time
		row.TargetDate = &target
	}
	if g.TargetValue.Valid {
		v := g.TargetValue.Float64
		row.TargetValue = &v
	}
	if g.CurrentValue.Valid {
		v := g.CurrentValue.Float64
		row.CurrentValue = &v
	}
	return row
}
