package importer

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

const legacySchema = `
CREATE TABLE user (
	id INTEGER PRIMARY KEY,
	username TEXT NOT NULL,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL
);
CREATE TABLE workout_program (
	id INTEGER PRIMARY KEY,
	user_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	exercises TEXT,
	category TEXT,
	program_type TEXT,
	difficulty TEXT,
	duration INTEGER,
	workout_frequency TEXT,
	fitness_level TEXT,
	target_muscle_groups TEXT,
	equipment_needed TEXT,
	calories_burn INTEGER,
	image_filename TEXT,
	is_public BOOLEAN NOT NULL DEFAULT 0
);
CREATE TABLE completed_workout (
	id INTEGER PRIMARY KEY,
	user_id INTEGER NOT NULL,
	program_id INTEGER NOT NULL,
	date TIMESTAMP NOT NULL,
	notes TEXT,
	rating INTEGER
);
CREATE TABLE goal (
	id INTEGER PRIMARY KEY,
	user_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	category TEXT,
	target_date TIMESTAMP,
	progress INTEGER NOT NULL DEFAULT 0,
	is_completed BOOLEAN NOT NULL DEFAULT 0,
	target_value REAL,
	current_value REAL,
	unit TEXT,
	frequency TEXT,
	priority INTEGER NOT NULL DEFAULT 1
);
`

func legacyDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec(legacySchema); err != nil {
		t.Fatalf("creating legacy schema: %v", err)
	}
	return db
}

// TestReadLegacyUsers verifies that user rows round-trip from the legacy schema.
func TestReadLegacyUsers(t *testing.T) {
	db := legacyDB(t)
	if _, err := db.Exec(
		`INSERT INTO user (id, username, email, password_hash) VALUES
		 (1, 'alice', 'alice@example.com', 'pbkdf2:sha256:xyz'),
		 (3, 'bob', 'bob@example.com', 'pbkdf2:sha256:abc')`); err != nil {
		t.Fatal(err)
	}

	users, err := readLegacyUsers(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len(users) = %d, want 2", len(users))
	}
	if users[0].Username != "alice" || users[0].ID != 1 {
		t.Errorf("users[0] = %+v, want alice/1", users[0])
	}
	if users[1].Username != "bob" || users[1].ID != 3 {
		t.Errorf("users[1] = %+v, want bob/3", users[1])
	}
}

// TestProgramConversion verifies legacy program rows convert with nullable
// columns handled, and that the old free-text category backfills a missing
// program_type.
func TestProgramConversion(t *testing.T) {
	db := legacyDB(t)
	if _, err := db.Exec(
		`INSERT INTO workout_program
		 (id, user_id, title, description, category, program_type, difficulty, duration, calories_burn, is_public)
		 VALUES
		 (1, 1, 'Strength Basics', 'desc', 'General', 'Strength', 'Medium', 12, 400, 1),
		 (2, 1, 'Old Program', NULL, 'Cardio', NULL, NULL, NULL, NULL, 0)`); err != nil {
		t.Fatal(err)
	}

	programs, err := readLegacyPrograms(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(programs) != 2 {
		t.Fatalf("len(programs) = %d, want 2", len(programs))
	}

	row := programs[0].toRow(42)
	if row.UserID != 42 {
		t.Errorf("UserID = %d, want 42", row.UserID)
	}
	if row.ProgramType != "Strength" {
		t.Errorf("ProgramType = %q, want Strength", row.ProgramType)
	}
	if row.DurationWeeks == nil || *row.DurationWeeks != 12 {
		t.Errorf("DurationWeeks = %v, want 12", row.DurationWeeks)
	}
	if row.CaloriesBurn == nil || *row.CaloriesBurn != 400 {
		t.Errorf("CaloriesBurn = %v, want 400", row.CaloriesBurn)
	}

	old := programs[1].toRow(42)
	if old.ProgramType != "Cardio" {
		t.Errorf("ProgramType = %q, want category fallback Cardio", old.ProgramType)
	}
	if old.DurationWeeks != nil {
		t.Errorf("DurationWeeks = %v, want nil", old.DurationWeeks)
	}
}

// TestWorkoutConversion verifies legacy workout rows convert with rating and
// program linkage preserved.
func TestWorkoutConversion(t *testing.T) {
	db := legacyDB(t)
	date := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	if _, err := db.Exec(
		`INSERT INTO completed_workout (id, user_id, program_id, date, notes, rating)
		 VALUES (7, 1, 2, ?, 'felt strong', 4), (8, 1, 2, ?, NULL, NULL)`,
		date, date.AddDate(0, 0, 1)); err != nil {
		t.Fatal(err)
	}

	workouts, err := readLegacyWorkouts(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(workouts) != 2 {
		t.Fatalf("len(workouts) = %d, want 2", len(workouts))
	}

	programID := 99
	row := workouts[0].toRow(42, &programID, "Strength")
	if row.UserID != 42 {
		t.Errorf("UserID = %d, want 42", row.UserID)
	}
	if row.ProgramID == nil || *row.ProgramID != 99 {
		t.Errorf("ProgramID = %v, want 99", row.ProgramID)
	}
	if row.Rating == nil || *row.Rating != 4 {
		t.Errorf("Rating = %v, want 4", row.Rating)
	}
	if row.Category != "Strength" {
		t.Errorf("Category = %q, want Strength", row.Category)
	}
	if !row.Date.Equal(date) {
		t.Errorf("Date = %v, want %v", row.Date, date)
	}

	bare := workouts[1].toRow(42, nil, "")
	if bare.Rating != nil {
		t.Errorf("Rating = %v, want nil", bare.Rating)
	}
	if bare.ProgramID != nil {
		t.Errorf("ProgramID = %v, want nil", bare.ProgramID)
	}
}

// TestGoalConversion verifies legacy goal rows convert with numeric targets
// and nullable dates preserved.
func TestGoalConversion(t *testing.T) {
	db := legacyDB(t)
	target := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	if _, err := db.Exec(
		`INSERT INTO goal (id, user_id, title, category, target_date, progress,
		                   is_completed, target_value, current_value, unit, priority)
		 VALUES (1, 1, 'Run 100km', 'Cardio', ?, 40, 0, 100.0, 40.0, 'km', 2)`,
		target); err != nil {
		t.Fatal(err)
	}

	goals, err := readLegacyGoals(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("len(goals) = %d, want 1", len(goals))
	}

	row := goals[0].toRow(42)
	if row.Title != "Run 100km" || row.Progress != 40 || row.Priority != 2 {
		t.Errorf("row = %+v, want Run 100km/40/2", row)
	}
	if row.TargetDate == nil || !row.TargetDate.Equal(target) {
		t.Errorf("TargetDate = %v, want %v", row.TargetDate, target)
	}
	if row.TargetValue == nil || *row.TargetValue != 100.0 {
		t.Errorf("TargetValue = %v, want 100", row.TargetValue)
	}
}

// TestLogRow verifies the import_logs row carries the run's counts and, on
// failure, the error message.
func TestLogRow(t *testing.T) {
	imp := &Importer{stats: Stats{
		UsersInserted:    2,
		ProgramsInserted: 3,
		WorkoutsInserted: 5,
		GoalsInserted:    1,
	}}

	l := imp.logRow(nil)
	if l.Users != 2 || l.Programs != 3 || l.Workouts != 5 || l.Goals != 1 {
		t.Errorf("counts = %+v, want 2/3/5/1", l)
	}
	if l.Error != nil {
		t.Errorf("Error = %v, want nil on success", *l.Error)
	}

	l = imp.logRow(errors.New("importing users: boom"))
	if l.Error == nil || *l.Error != "importing users: boom" {
		t.Errorf("Error = %v, want the run error's message", l.Error)
	}
}

// TestWorkoutUUIDStable verifies that the derived workout UUID is a pure
// function of the legacy key, making re-imports idempotent.
func TestWorkoutUUIDStable(t *testing.T) {
	if WorkoutUUID(7) != WorkoutUUID(7) {
		t.Error("same legacy ID should derive the same UUID")
	}
	if WorkoutUUID(7) == WorkoutUUID(8) {
		t.Error("different legacy IDs should derive different UUIDs")
	}
}
