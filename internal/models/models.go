package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRow is a row in the users table.
type UserRow struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionRow is a row in the sessions table. Token is the opaque value
// clients send in the Authorization header.
type SessionRow struct {
	Token     uuid.UUID
	UserID    int
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ProgramRow is a row in the workout_programs table.
// Exercises holds the per-day exercise breakdown as JSON text, keyed by day
// label; it is parsed lazily and a parse failure falls back to an empty plan.
type ProgramRow struct {
	ID               int     `json:"id"`
	UserID           int     `json:"user_id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Exercises        string  `json:"-"`
	ProgramType      string  `json:"program_type"`
	Difficulty       string  `json:"difficulty"`
	DurationWeeks    *int    `json:"duration_weeks"`
	WorkoutFrequency string  `json:"workout_frequency"`
	FitnessLevel     string  `json:"fitness_level"`
	TargetMuscles    string  `json:"target_muscle_groups"`
	EquipmentNeeded  string  `json:"equipment_needed"`
	CaloriesBurn     *int    `json:"calories_burn"`
	ImageFilename    string  `json:"image_filename"`
	IsPublic         bool    `json:"is_public"`
}

// CompletedWorkoutRow is a row in the completed_workouts table: one logged
// session. ProgramID is nil for ad-hoc workouts. Date is never null at rest;
// the storage layer defaults it to the insertion time.
type CompletedWorkoutRow struct {
	ID          uuid.UUID `json:"id"`
	UserID      int       `json:"user_id"`
	ProgramID   *int      `json:"program_id"`
	Date        time.Time `json:"date"`
	Notes       string    `json:"notes"`
	Rating      *int      `json:"rating"`
	DurationMin *int      `json:"duration_min"`
	Calories    *int      `json:"calories_burn"`
	Category    string    `json:"category"`
	Exercises   []string  `json:"exercises"`
}

// GoalRow is a row in the goals table.
type GoalRow struct {
	ID           int        `json:"id"`
	UserID       int        `json:"user_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	TargetDate   *time.Time `json:"target_date"`
	Progress     int        `json:"progress"`
	IsCompleted  bool       `json:"is_completed"`
	TargetValue  *float64   `json:"target_value"`
	CurrentValue *float64   `json:"current_value"`
	Unit         string     `json:"unit"`
	Frequency    string     `json:"frequency"`
	Priority     int        `json:"priority"`
}

// AchievementRow is a row in the achievements table.
type AchievementRow struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	DateEarned  time.Time `json:"date_earned"`
}

// ExerciseRow is a row in the exercises catalog table.
type ExerciseRow struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	MuscleGroup      string `json:"muscle_group"`
	SecondaryMuscles string `json:"secondary_muscles"`
	Equipment        string `json:"equipment"`
	Difficulty       string `json:"difficulty"`
	Instructions     string `json:"instructions"`
	VideoURL         string `json:"video_url"`
	ImageFilename    string `json:"image_filename"`
	IsPublic         bool   `json:"is_public"`
	UserID           *int   `json:"user_id"`
}
