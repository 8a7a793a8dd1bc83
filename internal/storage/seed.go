package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/claude/fitlog/internal/models"
)

func intp(v int) *int { return &v }

// Seed populates the catalog with a system user, sample public programs,
// and the exercise library. Safe to run repeatedly: existing rows are left
// untouched.
func (db *DB) Seed(ctx context.Context, log *slog.Logger) error {
	systemID, err := db.ensureSystemUser(ctx)
	if err != nil {
		return fmt.Errorf("ensuring system user: %w", err)
	}

	programs, err := db.seedPrograms(ctx, systemID)
	if err != nil {
		return fmt.Errorf("seeding programs: %w", err)
	}
	exercises, err := db.seedExercises(ctx)
	if err != nil {
		return fmt.Errorf("seeding exercises: %w", err)
	}

	log.Info("seed complete", "programs_added", programs, "exercises_added", exercises)
	return nil
}

func (db *DB) ensureSystemUser(ctx context.Context) (int, error) {
	existing, err := db.GetUserByUsername(ctx, "system")
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, err
	}
	// Password hash is intentionally unusable; the system user cannot log in.
	return db.CreateUser(ctx, "system", "system@fitlog.local", "!")
}

func (db *DB) seedPrograms(ctx context.Context, systemID int) (int, error) {
	existing, err := db.ListPrograms(ctx, systemID, ProgramFilter{})
	if err != nil {
		return 0, err
	}

	var added int
	for _, p := range samplePrograms {
		if hasProgramTitle(existing, p.Title) {
			continue
		}
		p.UserID = systemID
		if _, err := db.InsertProgram(ctx, p); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func hasProgramTitle(programs []models.ProgramRow, title string) bool {
	for _, p := range programs {
		if p.Title == title {
			return true
		}
	}
	return false
}

func (db *DB) seedExercises(ctx context.Context) (int, error) {
	var added int
	for _, e := range sampleExercises {
		inserted, err := db.InsertExercise(ctx, e)
		if err != nil {
			return added, err
		}
		if inserted {
			added++
		}
	}
	return added, nil
}

var samplePrograms = []models.ProgramRow{
	{
		Title:            "6-Month Bodybuilding Program",
		Description:      "Full body transformation program for muscle growth and strength development.",
		ProgramType:      "Bodybuilding",
		FitnessLevel:     "Intermediate",
		Difficulty:       "Intermediate",
		DurationWeeks:    intp(24),
		WorkoutFrequency: "5 days per week",
		EquipmentNeeded:  "Fully equipped gym",
		CaloriesBurn:     intp(500),
		IsPublic:         true,
		TargetMuscles:    "Chest, Back, Shoulders, Arms, Legs",
		ImageFilename:    "bodybuilding-program.jpg",
		Exercises: `{
			"Day 1 - Chest and Triceps": [
				{"name": "Bench Press", "sets": "4", "reps": "8-12", "rest": "90 sec"},
				{"name": "Incline Dumbbell Press", "sets": "4", "reps": "10-12", "rest": "60 sec"},
				{"name": "Cable Flies", "sets": "3", "reps": "12-15", "rest": "60 sec"},
				{"name": "Tricep Pushdowns", "sets": "4", "reps": "12-15", "rest": "60 sec"}
			],
			"Day 2 - Back and Biceps": [
				{"name": "Deadlift", "sets": "4", "reps": "6-8", "rest": "120 sec"},
				{"name": "Pull-ups", "sets": "4", "reps": "8-12", "rest": "90 sec"},
				{"name": "Barbell Rows", "sets": "3", "reps": "10-12", "rest": "60 sec"},
				{"name": "Bicep Curls", "sets": "4", "reps": "12-15", "rest": "60 sec"}
			]
		}`,
	},
	{
		Title:            "3x5 Full Body Strength",
		Description:      "Classic strength program built around the core compound movements.",
		ProgramType:      "Strength",
		FitnessLevel:     "Beginner",
		Difficulty:       "Beginner",
		DurationWeeks:    intp(12),
		WorkoutFrequency: "3 days per week",
		EquipmentNeeded:  "Barbell, Power Rack",
		CaloriesBurn:     intp(400),
		IsPublic:         true,
		TargetMuscles:    "Full Body, Core",
		ImageFilename:    "strength-program.jpg",
		Exercises: `{
			"Workout A": [
				{"name": "Squats", "sets": "5", "reps": "5", "rest": "180 sec"},
				{"name": "Bench Press", "sets": "5", "reps": "5", "rest": "180 sec"},
				{"name": "Barbell Rows", "sets": "5", "reps": "5", "rest": "180 sec"}
			],
			"Workout B": [
				{"name": "Deadlift", "sets": "5", "reps": "5", "rest": "180 sec"},
				{"name": "Military Press", "sets": "5", "reps": "5", "rest": "180 sec"},
				{"name": "Pull-ups", "sets": "3", "reps": "Max", "rest": "180 sec"}
			]
		}`,
	},
	{
		Title:            "HIIT Cardio Program",
		Description:      "High intensity interval training for fat loss.",
		ProgramType:      "Cardio",
		FitnessLevel:     "Intermediate",
		Difficulty:       "Intermediate",
		DurationWeeks:    intp(4),
		WorkoutFrequency: "3 days per week",
		EquipmentNeeded:  "Minimal equipment",
		CaloriesBurn:     intp(400),
		IsPublic:         true,
		TargetMuscles:    "Full Body, Cardio",
		ImageFilename:    "hiit-cardio.jpg",
		Exercises: `{
			"Circuit 1": [
				{"name": "Burpees", "sets": "3", "reps": "30 sec", "rest": "15 sec"},
				{"name": "Mountain Climbers", "sets": "3", "reps": "30 sec", "rest": "15 sec"},
				{"name": "Jump Rope", "sets": "3", "reps": "1 min", "rest": "30 sec"}
			]
		}`,
	},
	{
		Title:            "Push-Pull-Legs Split",
		Description:      "Classic bodybuilding split for muscle growth.",
		ProgramType:      "Bodybuilding",
		FitnessLevel:     "Intermediate",
		Difficulty:       "Intermediate",
		DurationWeeks:    intp(12),
		WorkoutFrequency: "6 days per week",
		EquipmentNeeded:  "Fully equipped gym",
		CaloriesBurn:     intp(500),
		IsPublic:         true,
		TargetMuscles:    "Full body split",
		ImageFilename:    "push-pull-legs.jpg",
		Exercises: `{
			"Push Day": [
				{"name": "Bench Press", "sets": "4", "reps": "8-12", "rest": "90 sec"},
				{"name": "Military Press", "sets": "4", "reps": "8-12", "rest": "90 sec"},
				{"name": "Tricep Extensions", "sets": "3", "reps": "12-15", "rest": "60 sec"}
			],
			"Pull Day": [
				{"name": "Pull-ups", "sets": "4", "reps": "8-12", "rest": "90 sec"},
				{"name": "Barbell Rows", "sets": "4", "reps": "8-12", "rest": "90 sec"},
				{"name": "Bicep Curls", "sets": "3", "reps": "12-15", "rest": "60 sec"}
			],
			"Leg Day": [
				{"name": "Squats", "sets": "4", "reps": "8-12", "rest": "120 sec"},
				{"name": "Romanian Deadlift", "sets": "4", "reps": "8-12", "rest": "90 sec"},
				{"name": "Calf Raises", "sets": "3", "reps": "15-20", "rest": "60 sec"}
			]
		}`,
	},
}

var sampleExercises = []models.ExerciseRow{
	{
		Name:             "Bench Press",
		Description:      "Classic compound exercise for chest development",
		MuscleGroup:      "Chest",
		SecondaryMuscles: "Triceps, Shoulders",
		Equipment:        "Barbell, Bench",
		Difficulty:       "Intermediate",
		IsPublic:         true,
	},
	{
		Name:             "Dumbbell Flies",
		Description:      "Isolation exercise for chest",
		MuscleGroup:      "Chest",
		SecondaryMuscles: "Shoulders",
		Equipment:        "Dumbbells, Bench",
		Difficulty:       "Beginner",
		IsPublic:         true,
	},
	{
		Name:             "Pull-ups",
		Description:      "Compound exercise for back width",
		MuscleGroup:      "Back",
		SecondaryMuscles: "Biceps, Shoulders",
		Equipment:        "Pull-up Bar",
		Difficulty:       "Advanced",
		IsPublic:         true,
	},
	{
		Name:             "Barbell Rows",
		Description:      "Compound exercise for back thickness",
		MuscleGroup:      "Back",
		SecondaryMuscles: "Biceps, Rear Delts",
		Equipment:        "Barbell",
		Difficulty:       "Intermediate",
		IsPublic:         true,
	},
	{
		Name:             "Military Press",
		Description:      "Compound exercise for shoulder development",
		MuscleGroup:      "Shoulders",
		SecondaryMuscles: "Triceps",
		Equipment:        "Barbell",
		Difficulty:       "Intermediate",
		IsPublic:         true,
	},
	{
		Name:             "Squats",
		Description:      "King of leg exercises",
		MuscleGroup:      "Legs",
		SecondaryMuscles: "Core, Lower Back",
		Equipment:        "Barbell",
		Difficulty:       "Intermediate",
		IsPublic:         true,
	},
	{
		Name:             "Bicep Curls",
		Description:      "Classic bicep builder",
		MuscleGroup:      "Biceps",
		SecondaryMuscles: "Forearms",
		Equipment:        "Dumbbells",
		Difficulty:       "Beginner",
		IsPublic:         true,
	},
	{
		Name:        "Tricep Pushdowns",
		Description: "Isolation exercise for triceps",
		MuscleGroup: "Triceps",
		Equipment:   "Cable Machine",
		Difficulty:  "Beginner",
		IsPublic:    true,
	},
}
