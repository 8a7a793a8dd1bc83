package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/fitlog/internal/stats"
	"github.com/claude/fitlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db         *storage.DB
	engine     *stats.Engine
	log        *slog.Logger
	sessionTTL time.Duration
	router     chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, engine *stats.Engine, sessionTTL time.Duration, log *slog.Logger) *Server {
	s := &Server{
		db:         db,
		engine:     engine,
		log:        log,
		sessionTTL: sessionTTL,
		router:     chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Auth endpoints (no session required)
	s.router.Post("/api/v1/auth/register", s.handleRegister)
	s.router.Post("/api/v1/auth/login", s.handleLogin)

	// Everything else requires a session token
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(SessionAuth(s.db))

		r.Post("/auth/logout", s.handleLogout)
		r.Get("/me", s.handleMe)

		r.Get("/programs", s.handleListPrograms)
		r.Post("/programs", s.handleCreateProgram)
		r.Get("/programs/shared", s.handleSharedPrograms)
		r.Get("/programs/{id}", s.handleGetProgram)
		r.Put("/programs/{id}", s.handleUpdateProgram)
		r.Delete("/programs/{id}", s.handleDeleteProgram)
		r.Post("/programs/{id}/complete", s.handleCompleteProgram)
		r.Post("/programs/{id}/share", s.handleShareProgram)
		r.Post("/programs/{id}/save", s.handleSaveProgram)

		r.Get("/workouts", s.handleQueryWorkouts)
		r.Get("/calendar", s.handleCalendar)
		r.Get("/stats", s.handleStats)
		r.Get("/achievements", s.handleAchievements)

		r.Get("/goals", s.handleListGoals)
		r.Post("/goals", s.handleCreateGoal)
		r.Post("/goals/{id}/progress", s.handleGoalProgress)

		r.Get("/exercises", s.handleListExercises)
	})
}
