package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/fitlog/internal/models"
	"github.com/claude/fitlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// programView is a program plus its parsed per-day plan. PlanValid is false
// when the stored exercise JSON could not be parsed; the client renders the
// program without a plan.
type programView struct {
	models.ProgramRow
	Days      []models.DayPlan `json:"days"`
	PlanValid bool             `json:"plan_valid"`
}

func (s *Server) viewProgram(p models.ProgramRow) programView {
	days, ok := models.ParseDayPlans(p.Exercises)
	if !ok {
		s.log.Warn("malformed program exercise plan", "program_id", p.ID)
	}
	return programView{ProgramRow: p, Days: days, PlanValid: ok}
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.ProgramFilter{
		ProgramType: q.Get("program_type"),
		Level:       q.Get("level"),
	}
	if d := q.Get("duration"); d != "" {
		weeks, err := strconv.Atoi(d)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid duration filter"})
			return
		}
		filter.DurationWeeks = weeks
	}

	programs, err := s.db.ListPrograms(r.Context(), userID(r), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	views := make([]programView, 0, len(programs))
	for _, p := range programs {
		views = append(views, s.viewProgram(p))
	}
	writeJSON(w, http.StatusOK, views)
}

// handleSharedPrograms lists programs other users shared with the caller.
func (s *Server) handleSharedPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := s.db.ListSharedPrograms(r.Context(), userID(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	views := make([]programView, 0, len(programs))
	for _, p := range programs {
		views = append(views, s.viewProgram(p))
	}
	writeJSON(w, http.StatusOK, views)
}

type programRequest struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Exercises        json.RawMessage `json:"exercises"`
	ProgramType      string          `json:"program_type"`
	Difficulty       string          `json:"difficulty"`
	DurationWeeks    *int            `json:"duration_weeks"`
	WorkoutFrequency string          `json:"workout_frequency"`
	FitnessLevel     string          `json:"fitness_level"`
	TargetMuscles    string          `json:"target_muscle_groups"`
	EquipmentNeeded  string          `json:"equipment_needed"`
	CaloriesBurn     *int            `json:"calories_burn"`
	ImageFilename    string          `json:"image_filename"`
	IsPublic         bool            `json:"is_public"`
}

func (req programRequest) toRow(userID int) models.ProgramRow {
	return models.ProgramRow{
		UserID:           userID,
		Title:            req.Title,
		Description:      req.Description,
		Exercises:        string(req.Exercises),
		ProgramType:      req.ProgramType,
		Difficulty:       req.Difficulty,
		DurationWeeks:    req.DurationWeeks,
		WorkoutFrequency: req.WorkoutFrequency,
		FitnessLevel:     req.FitnessLevel,
		TargetMuscles:    req.TargetMuscles,
		EquipmentNeeded:  req.EquipmentNeeded,
		CaloriesBurn:     req.CaloriesBurn,
		ImageFilename:    req.ImageFilename,
		IsPublic:         req.IsPublic,
	}
}

func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var req programRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}

	id, err := s.db.InsertProgram(r.Context(), req.toRow(userID(r)))
	if err != nil {
		s.log.Error("create program", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"id": id})
}

// programParam resolves {id} and loads the program, enforcing visibility:
// public programs or the caller's own. Writes the error response itself and
// returns nil on failure.
func (s *Server) programParam(w http.ResponseWriter, r *http.Request) *models.ProgramRow {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid program ID"})
		return nil
	}
	p, err := s.db.GetProgram(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "program not found"})
		return nil
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil
	}
	if !p.IsPublic && p.UserID != userID(r) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "program not found"})
		return nil
	}
	return p
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	p := s.programParam(w, r)
	if p == nil {
		return
	}
	writeJSON(w, http.StatusOK, s.viewProgram(*p))
}

func (s *Server) handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	p := s.programParam(w, r)
	if p == nil {
		return
	}
	if p.UserID != userID(r) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "not your program"})
		return
	}

	var req programRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	row := req.toRow(p.UserID)
	row.ID = p.ID

	if err := s.db.UpdateProgram(r.Context(), row); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	p := s.programParam(w, r)
	if p == nil {
		return
	}
	if p.UserID != userID(r) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "not your program"})
		return
	}
	if err := s.db.DeleteProgram(r.Context(), p.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type completeRequest struct {
	Notes       string   `json:"notes"`
	Rating      *int     `json:"rating"`
	DurationMin *int     `json:"duration_min"`
	Calories    *int     `json:"calories_burn"`
	Exercises   []string `json:"exercises"`
	Date        string   `json:"date"`
}

func (s *Server) handleCompleteProgram(w http.ResponseWriter, r *http.Request) {
	p := s.programParam(w, r)
	if p == nil {
		return
	}

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "rating must be 1-5"})
		return
	}

	var date time.Time
	if req.Date != "" {
		var err error
		date, err = time.Parse(time.RFC3339, req.Date)
		if err != nil {
			date, err = time.Parse("2006-01-02", req.Date)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date"})
				return
			}
		}
	}

	uid := userID(r)
	row := models.CompletedWorkoutRow{
		UserID:      uid,
		ProgramID:   &p.ID,
		Date:        date,
		Notes:       req.Notes,
		Rating:      req.Rating,
		DurationMin: req.DurationMin,
		Calories:    req.Calories,
		Category:    p.ProgramType,
		Exercises:   req.Exercises,
	}
	if err := s.db.InsertCompletedWorkout(r.Context(), row); err != nil {
		s.log.Error("log workout", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	awarded, err := s.checkAchievements(r, uid)
	if err != nil {
		s.log.Error("achievement check", "error", err)
		awarded = nil
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":           "logged",
		"new_achievements": awarded,
	})
}

type shareRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleShareProgram(w http.ResponseWriter, r *http.Request) {
	p := s.programParam(w, r)
	if p == nil {
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	target, err := s.db.GetUserByUsername(r.Context(), req.Username)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	inserted, err := s.db.ShareProgram(r.Context(), p.ID, target.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"shared": inserted})
}

func (s *Server) handleSaveProgram(w http.ResponseWriter, r *http.Request) {
	p := s.programParam(w, r)
	if p == nil {
		return
	}
	inserted, err := s.db.SaveProgram(r.Context(), p.ID, userID(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": inserted})
}
