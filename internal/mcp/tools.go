package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/fitlog/internal/stats"
	"github.com/claude/fitlog/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 30 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -30)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// parseMonth parses "YYYY-MM" into the first instant of that month.
func parseMonth(s string) (time.Time, error) {
	return time.Parse("2006-01", s)
}

// --- Tool definitions ---

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Full statistics snapshot: current and best streaks, this month's totals, weekly activity histogram, workout type distribution, and the five most used exercises."),
)

var toolGetStreaks = mcp.NewTool("get_streaks",
	mcp.WithDescription("Current and best consecutive-day workout streaks."),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query completed workouts in a time range. Returns date, program, rating, duration, calories and exercises for each session."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetPrograms = mcp.NewTool("get_programs",
	mcp.WithDescription("List visible workout programs (public plus the user's own), with optional filters."),
	mcp.WithString("program_type", mcp.Description("Filter by program type (e.g. 'Strength', 'Cardio')")),
	mcp.WithString("level", mcp.Description("Filter by difficulty (e.g. 'Beginner', 'Medium', 'Advanced')")),
)

var toolGetGoals = mcp.NewTool("get_goals",
	mcp.WithDescription("List the user's fitness goals, active and completed, with progress."),
)

var toolCompareMonths = mcp.NewTool("compare_months",
	mcp.WithDescription("Compare workout totals (sessions, minutes, calories) between two calendar months."),
	mcp.WithString("month_a", mcp.Required(), mcp.Description("First month (YYYY-MM)")),
	mcp.WithString("month_b", mcp.Required(), mcp.Description("Second month (YYYY-MM)")),
)

// --- Tool handlers ---

func (h *handlers) getStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	snapshot, err := h.engine.Snapshot(ctx, uid, time.Now())
	if err != nil {
		h.log.Error("mcp get_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(snapshot)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStreaks(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	records, err := h.ds.ListCompletedWorkouts(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_streaks", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	current, best := stats.Streaks(records, time.Now())

	result, err := mcp.NewToolResultJSON(map[string]int{
		"current_streak": current,
		"best_streak":    best,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	workouts, err := h.ds.QueryCompletedWorkouts(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPrograms(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	filter := storage.ProgramFilter{
		ProgramType: req.GetString("program_type", ""),
		Level:       req.GetString("level", ""),
	}

	programs, err := h.ds.ListPrograms(ctx, uid, filter)
	if err != nil {
		h.log.Error("mcp get_programs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(programs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getGoals(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	active, err := h.ds.ListGoals(ctx, uid, false)
	if err != nil {
		h.log.Error("mcp get_goals active", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	completed, err := h.ds.ListGoals(ctx, uid, true)
	if err != nil {
		h.log.Error("mcp get_goals completed", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"active":    active,
		"completed": completed,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) compareMonths(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	aStr, err := req.RequireString("month_a")
	if err != nil {
		return mcp.NewToolResultError("month_a is required"), nil
	}
	bStr, err := req.RequireString("month_b")
	if err != nil {
		return mcp.NewToolResultError("month_b is required"), nil
	}

	monthA, err := parseMonth(aStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid month_a %q, want YYYY-MM", aStr)), nil
	}
	monthB, err := parseMonth(bStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid month_b %q, want YYYY-MM", bStr)), nil
	}

	uid := UserIDFromContext(ctx)
	records, err := h.ds.ListCompletedWorkouts(ctx, uid)
	if err != nil {
		h.log.Error("mcp compare_months", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		aStr: stats.Monthly(records, monthA),
		bStr: stats.Monthly(records, monthB),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
