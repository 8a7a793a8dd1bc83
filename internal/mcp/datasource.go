package mcp

import (
	"context"
	"time"

	"github.com/claude/fitlog/internal/models"
	"github.com/claude/fitlog/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListCompletedWorkouts(ctx context.Context, userID int) ([]models.CompletedWorkoutRow, error)
	QueryCompletedWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.CompletedWorkoutRow, error)
	ListPrograms(ctx context.Context, userID int, f storage.ProgramFilter) ([]models.ProgramRow, error)
	ListGoals(ctx context.Context, userID int, completed bool) ([]models.GoalRow, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
