package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/fitlog/internal/models"
	"github.com/claude/fitlog/internal/storage"
)

// HTTPClient implements DataSource by calling the Fitlog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL,
// authenticating with the given session token.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func timeParams(start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("start", start.Format(time.RFC3339))
	v.Set("end", end.Format(time.RFC3339))
	return v
}

func (c *HTTPClient) QueryCompletedWorkouts(ctx context.Context, start, end time.Time, _ int) ([]models.CompletedWorkoutRow, error) {
	body, err := c.get(ctx, "/api/v1/workouts", timeParams(start, end))
	if err != nil {
		return nil, err
	}

	var workouts []models.CompletedWorkoutRow
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return workouts, nil
}

// ListCompletedWorkouts fetches the full history by querying a wide range.
// The server sorts date descending, the order the statistics code expects.
func (c *HTTPClient) ListCompletedWorkouts(ctx context.Context, userID int) ([]models.CompletedWorkoutRow, error) {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return c.QueryCompletedWorkouts(ctx, start, time.Now().AddDate(0, 0, 1), userID)
}

func (c *HTTPClient) ListPrograms(ctx context.Context, _ int, f storage.ProgramFilter) ([]models.ProgramRow, error) {
	params := url.Values{}
	if f.ProgramType != "" {
		params.Set("program_type", f.ProgramType)
	}
	if f.Level != "" {
		params.Set("level", f.Level)
	}
	if f.DurationWeeks > 0 {
		params.Set("duration", fmt.Sprint(f.DurationWeeks))
	}

	body, err := c.get(ctx, "/api/v1/programs", params)
	if err != nil {
		return nil, err
	}

	var programs []models.ProgramRow
	if err := json.Unmarshal(body, &programs); err != nil {
		return nil, fmt.Errorf("httpclient: decode programs: %w", err)
	}
	return programs, nil
}

func (c *HTTPClient) ListGoals(ctx context.Context, _ int, completed bool) ([]models.GoalRow, error) {
	body, err := c.get(ctx, "/api/v1/goals", nil)
	if err != nil {
		return nil, err
	}

	var goals struct {
		Active    []models.GoalRow `json:"active"`
		Completed []models.GoalRow `json:"completed"`
	}
	if err := json.Unmarshal(body, &goals); err != nil {
		return nil, fmt.Errorf("httpclient: decode goals: %w", err)
	}
	if completed {
		return goals.Completed, nil
	}
	return goals.Active, nil
}
