package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/fitlog/internal/models"
	"github.com/claude/fitlog/internal/stats"
	"github.com/claude/fitlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, err := s.db.QueryCompletedWorkouts(r.Context(), start, end, userID(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	entries, err := s.db.GetWorkoutCalendar(r.Context(), userID(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.engine.Snapshot(r.Context(), userID(r), time.Now())
	if err != nil {
		s.log.Error("stats snapshot", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// checkAchievements evaluates the rule set against the user's current totals
// and awards anything newly unlocked. Returns the names awarded this call.
func (s *Server) checkAchievements(r *http.Request, uid int) ([]string, error) {
	records, err := s.db.ListCompletedWorkouts(r.Context(), uid)
	if err != nil {
		return nil, err
	}
	current, _ := stats.Streaks(records, time.Now())

	var awarded []string
	for _, rule := range stats.UnlockedAchievements(len(records), current) {
		inserted, err := s.db.AwardAchievement(r.Context(), uid, rule.Name, rule.Description, rule.Icon)
		if err != nil {
			return awarded, err
		}
		if inserted {
			awarded = append(awarded, rule.Name)
		}
	}
	return awarded, nil
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	earned, err := s.db.ListAchievements(r.Context(), userID(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"achievements": earned,
		"unlocked":     len(earned),
		"total":        len(stats.AchievementRules),
	})
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	active, err := s.db.ListGoals(r.Context(), uid, false)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	completed, err := s.db.ListGoals(r.Context(), uid, true)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"active":    active,
		"completed": completed,
	})
}

type goalRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	TargetDate   string   `json:"target_date"`
	TargetValue  *float64 `json:"target_value"`
	CurrentValue *float64 `json:"current_value"`
	Unit         string   `json:"unit"`
	Frequency    string   `json:"frequency"`
	Priority     int      `json:"priority"`
	Progress     int      `json:"progress"`
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Title == "" || req.TargetDate == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title and target_date are required"})
		return
	}
	target, err := time.Parse("2006-01-02", req.TargetDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid target_date, want YYYY-MM-DD"})
		return
	}
	if req.Priority < 1 || req.Priority > 5 {
		req.Priority = 3
	}
	if req.Progress < 0 || req.Progress > 100 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "progress must be 0-100"})
		return
	}

	g := models.GoalRow{
		UserID:       userID(r),
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		TargetDate:   &target,
		Progress:     req.Progress,
		IsCompleted:  req.Progress == 100,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Unit:         req.Unit,
		Frequency:    req.Frequency,
		Priority:     req.Priority,
	}
	id, err := s.db.InsertGoal(r.Context(), g)
	if err != nil {
		s.log.Error("create goal", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"id": id})
}

type goalProgressRequest struct {
	Progress int `json:"progress"`
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid goal ID"})
		return
	}

	g, err := s.db.GetGoal(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && g.UserID != userID(r)) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "goal not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var req goalProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Progress < 0 || req.Progress > 100 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "progress must be 0-100"})
		return
	}

	if err := s.db.UpdateGoalProgress(r.Context(), id, req.Progress); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"progress":  req.Progress,
		"completed": req.Progress == 100,
	})
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.ExerciseFilter{
		MuscleGroup: q.Get("muscle_group"),
		Difficulty:  q.Get("difficulty"),
		Equipment:   q.Get("equipment"),
	}
	exercises, err := s.db.ListExercises(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		// Default: last 30 days
		end = time.Now()
		start = end.AddDate(0, 0, -30)
		return
	}

	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}
	return
}
