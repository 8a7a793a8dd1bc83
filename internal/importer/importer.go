// Package importer migrates data from the original app's SQLite database
// into Postgres.
package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/claude/fitlog/internal/storage"

	_ "modernc.org/sqlite"
)

// Stats tracks import progress per entity.
type Stats struct {
	UsersInserted    int
	UsersSkipped     int
	ProgramsInserted int
	WorkoutsInserted int
	WorkoutsOrphaned int
	GoalsInserted    int
}

// Importer reads a legacy fitness.db SQLite file and inserts its rows
// into the Postgres store.
type Importer struct {
	db     *storage.DB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer. In dry-run mode rows are read and counted but
// nothing is written.
func New(db *storage.DB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, log: log, dryRun: dryRun}
}

// Import migrates users, programs, completed workouts and goals from the
// SQLite file at path. Legacy integer workout IDs become deterministic UUIDs,
// so a re-run inserts nothing new.
func (imp *Importer) Import(ctx context.Context, path string) (*Stats, error) {
	legacy, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return &imp.stats, fmt.Errorf("opening legacy database: %w", err)
	}
	defer legacy.Close()

	var logID int64
	if !imp.dryRun {
		logID, err = imp.db.InsertImportLog(ctx, path)
		if err != nil {
			return &imp.stats, fmt.Errorf("recording import start: %w", err)
		}
	}

	importErr := imp.run(ctx, legacy)

	if !imp.dryRun {
		if err := imp.db.FinishImportLog(ctx, logID, imp.logRow(importErr)); err != nil {
			imp.log.Error("recording import result", "error", err)
		}
	}

	return &imp.stats, importErr
}

// logRow builds the import_logs row for this run's outcome.
func (imp *Importer) logRow(importErr error) storage.ImportLog {
	l := storage.ImportLog{
		Users:    imp.stats.UsersInserted,
		Programs: imp.stats.ProgramsInserted,
		Workouts: imp.stats.WorkoutsInserted,
		Goals:    imp.stats.GoalsInserted,
	}
	if importErr != nil {
		msg := importErr.Error()
		l.Error = &msg
	}
	return l
}

func (imp *Importer) run(ctx context.Context, legacy *sql.DB) error {
	userMap, err := imp.importUsers(ctx, legacy)
	if err != nil {
		return fmt.Errorf("importing users: %w", err)
	}

	programMap, programTypes, err := imp.importPrograms(ctx, legacy, userMap)
	if err != nil {
		return fmt.Errorf("importing programs: %w", err)
	}

	if err := imp.importWorkouts(ctx, legacy, userMap, programMap, programTypes); err != nil {
		return fmt.Errorf("importing workouts: %w", err)
	}

	if err := imp.importGoals(ctx, legacy, userMap); err != nil {
		return fmt.Errorf("importing goals: %w", err)
	}

	return nil
}

// importUsers inserts legacy users and returns a legacy-ID to new-ID map.
// Existing usernames are reused rather than duplicated. Legacy password
// hashes use a different scheme, so imported users must reset their password
// before logging in.
func (imp *Importer) importUsers(ctx context.Context, legacy *sql.DB) (map[int]int, error) {
	users, err := readLegacyUsers(legacy)
	if err != nil {
		return nil, err
	}

	userMap := make(map[int]int, len(users))
	for _, u := range users {
		existing, err := imp.db.GetUserByUsername(ctx, u.Username)
		if err == nil {
			userMap[u.ID] = existing.ID
			imp.stats.UsersSkipped++
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}

		if imp.dryRun {
			imp.stats.UsersInserted++
			continue
		}
		id, err := imp.db.CreateUser(ctx, u.Username, u.Email, u.PasswordHash)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", u.Username, err)
		}
		userMap[u.ID] = id
		imp.stats.UsersInserted++
	}

	imp.log.Info("imported users", "inserted", imp.stats.UsersInserted, "skipped", imp.stats.UsersSkipped)
	return userMap, nil
}

// importPrograms inserts legacy programs. Returns the legacy-ID to new-ID map
// and each legacy program's type, used to categorize its workouts.
func (imp *Importer) importPrograms(ctx context.Context, legacy *sql.DB, userMap map[int]int) (map[int]int, map[int]string, error) {
	programs, err := readLegacyPrograms(legacy)
	if err != nil {
		return nil, nil, err
	}

	programMap := make(map[int]int, len(programs))
	programTypes := make(map[int]string, len(programs))
	for _, p := range programs {
		row := p.toRow(userMap[p.UserID])
		programTypes[p.ID] = row.ProgramType

		if imp.dryRun {
			imp.stats.ProgramsInserted++
			continue
		}
		id, err := imp.db.InsertProgram(ctx, row)
		if err != nil {
			return nil, nil, fmt.Errorf("program %q: %w", p.Title, err)
		}
		programMap[p.ID] = id
		imp.stats.ProgramsInserted++
	}

	imp.log.Info("imported programs", "inserted", imp.stats.ProgramsInserted)
	return programMap, programTypes, nil
}

func (imp *Importer) importWorkouts(ctx context.Context, legacy *sql.DB, userMap, programMap map[int]int, programTypes map[int]string) error {
	workouts, err := readLegacyWorkouts(legacy)
	if err != nil {
		return err
	}

	for _, w := range workouts {
		var programID *int
		if id, ok := programMap[w.ProgramID]; ok {
			programID = &id
		} else {
			// Program was deleted in the legacy app; keep the session
			imp.stats.WorkoutsOrphaned++
		}

		row := w.toRow(userMap[w.UserID], programID, programTypes[w.ProgramID])
		if imp.dryRun {
			imp.stats.WorkoutsInserted++
			continue
		}
		if err := imp.db.InsertCompletedWorkout(ctx, row); err != nil {
			return fmt.Errorf("workout %d: %w", w.ID, err)
		}
		imp.stats.WorkoutsInserted++
	}

	imp.log.Info("imported workouts", "inserted", imp.stats.WorkoutsInserted, "orphaned", imp.stats.WorkoutsOrphaned)
	return nil
}

func (imp *Importer) importGoals(ctx context.Context, legacy *sql.DB, userMap map[int]int) error {
	goals, err := readLegacyGoals(legacy)
	if err != nil {
		return err
	}

	for _, g := range goals {
		if imp.dryRun {
			imp.stats.GoalsInserted++
			continue
		}
		if _, err := imp.db.InsertGoal(ctx, g.toRow(userMap[g.UserID])); err != nil {
			return fmt.Errorf("goal %q: %w", g.Title, err)
		}
		imp.stats.GoalsInserted++
	}

	imp.log.Info("imported goals", "inserted", imp.stats.GoalsInserted)
	return nil
}
