package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/fitlog/internal/models"
	"github.com/go-chi/chi/v5"
)

func testServer() *Server {
	return &Server{log: slog.Default()}
}

// TestRoutes verifies the API surface is wired, in particular that the
// shared-programs listing resolves before the {id} parameter route.
func TestRoutes(t *testing.T) {
	s := New(nil, nil, time.Hour, slog.Default())

	routes := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/v1/programs/shared"},
		{http.MethodGet, "/api/v1/programs/7"},
		{http.MethodGet, "/api/v1/me"},
		{http.MethodGet, "/api/v1/stats"},
	}
	for _, r := range routes {
		if !s.router.Match(chi.NewRouteContext(), r.method, r.path) {
			t.Errorf("%s %s is not routed", r.method, r.path)
		}
	}
}

// TestHandleRegisterMissingFields verifies that registration rejects empty
// username, email or password before touching storage.
func TestHandleRegisterMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"no password", `{"username":"alice","email":"a@example.com"}`},
		{"no email", `{"username":"alice","password":"pw"}`},
		{"whitespace username", `{"username":"   ","email":"a@example.com","password":"pw"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			testServer().handleRegister(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

// TestHandleRegisterInvalidJSON verifies that malformed request bodies get a 400.
func TestHandleRegisterInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	testServer().handleRegister(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleLoginInvalidJSON verifies that malformed login bodies get a 400.
func TestHandleLoginInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	testServer().handleLogin(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleCreateGoalValidation verifies the goal creation validation rules:
// title and target_date required, date format, progress bounds.
func TestHandleCreateGoalValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"target_date":"2026-12-31"}`},
		{"missing target_date", `{"title":"Run 5k"}`},
		{"bad date format", `{"title":"Run 5k","target_date":"31/12/2026"}`},
		{"progress too high", `{"title":"Run 5k","target_date":"2026-12-31","progress":150}`},
		{"progress negative", `{"title":"Run 5k","target_date":"2026-12-31","progress":-1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/goals", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			testServer().handleCreateGoal(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

// TestViewProgramMalformedPlan verifies that a program whose exercise JSON is
// corrupt still renders, with an empty day list and plan_valid=false.
func TestViewProgramMalformedPlan(t *testing.T) {
	s := testServer()
	view := s.viewProgram(models.ProgramRow{
		ID:        7,
		Title:     "Broken Plan",
		Exercises: `{"Day 1": [`,
	})
	if view.PlanValid {
		t.Error("PlanValid = true, want false for malformed JSON")
	}
	if len(view.Days) != 0 {
		t.Errorf("Days = %v, want empty", view.Days)
	}
	if view.Title != "Broken Plan" {
		t.Errorf("Title = %q, want %q", view.Title, "Broken Plan")
	}
}

// TestViewProgramDayOrder verifies that parsed days keep the JSON key order.
func TestViewProgramDayOrder(t *testing.T) {
	s := testServer()
	view := s.viewProgram(models.ProgramRow{
		Exercises: `{"Day 2": [], "Day 1": [{"name":"Squat","sets":"3","reps":"5","rest":"3 min"}]}`,
	})
	if !view.PlanValid {
		t.Fatal("PlanValid = false, want true")
	}
	if len(view.Days) != 2 {
		t.Fatalf("len(Days) = %d, want 2", len(view.Days))
	}
	if view.Days[0].Label != "Day 2" || view.Days[1].Label != "Day 1" {
		t.Errorf("day order = [%q, %q], want source order [Day 2, Day 1]",
			view.Days[0].Label, view.Days[1].Label)
	}
	if got := view.Days[1].Exercises[0].Name; got != "Squat" {
		t.Errorf("exercise name = %q, want Squat", got)
	}
}

// TestParseTimeRangeDefaults verifies the default window when no start is given.
func TestParseTimeRangeDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window := end.Sub(start); window < 29*24*time.Hour || window > 31*24*time.Hour {
		t.Errorf("default window = %v, want ~30 days", window)
	}
}

// TestParseTimeRangeDateOnly verifies that date-only params parse and the end
// date extends to the end of the day.
func TestParseTimeRangeDateOnly(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts?start=2026-01-01&end=2026-01-31", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Day() != 1 || start.Month() != time.January {
		t.Errorf("start = %v, want 2026-01-01", start)
	}
	// End of day: 31 Jan + 24h = 1 Feb 00:00
	if end.Month() != time.February || end.Day() != 1 {
		t.Errorf("end = %v, want 2026-02-01 00:00", end)
	}
}

// TestParseTimeRangeInvalid verifies that garbage time params produce an error.
func TestParseTimeRangeInvalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts?start=yesterday", nil)
	if _, _, err := parseTimeRange(req); err == nil {
		t.Error("expected error for invalid start time")
	}
}

// TestWriteJSON verifies the response helper sets status and content type.
func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusTeapot, map[string]string{"k": "v"})

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["k"] != "v" {
		t.Errorf("body = %v, want k=v", body)
	}
}
