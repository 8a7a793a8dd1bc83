package storage

import (
	"context"
	"fmt"
	"time"
)

// ImportLog records one legacy-import run and its per-entity counts.
type ImportLog struct {
	ID         int64      `json:"id"`
	Source     string     `json:"source"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
	Users      int        `json:"users"`
	Programs   int        `json:"programs"`
	Workouts   int        `json:"workouts"`
	Goals      int        `json:"goals"`
	Error      *string    `json:"error"`
}

// InsertImportLog creates a new import log entry and returns its ID.
func (db *DB) InsertImportLog(ctx context.Context, source string) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO import_logs (source) VALUES ($1) RETURNING id`, source,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting import log: %w", err)
	}
	return id, nil
}

// FinishImportLog records the outcome of an import run.
func (db *DB) FinishImportLog(ctx context.Context, id int64, l ImportLog) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE import_logs
		 SET finished_at = NOW(), users = $2, programs = $3, workouts = $4, goals = $5, error = $6
		 WHERE id = $1`,
		id, l.Users, l.Programs, l.Workouts, l.Goals, l.Error)
	if err != nil {
		return fmt.Errorf("updating import log %d: %w", id, err)
	}
	return nil
}
