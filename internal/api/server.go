// Package api provides the local HTTP API for Tempo.
// Clients (desktop widgets, scripts) log sessions, manage goals, and
// read achievement state over it.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tempo-track/tempo/internal/app/achievement"
	"github.com/tempo-track/tempo/internal/app/notify"
	"github.com/tempo-track/tempo/internal/app/tracker"
)

// Server is the Tempo HTTP API server.
type Server struct {
	tracker        *tracker.Service
	engine         *achievement.Engine
	notifications  *notify.Service
	log            *zap.Logger
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(trk *tracker.Service, engine *achievement.Engine, notifications *notify.Service, log *zap.Logger) *Server {
	return &Server{tracker: trk, engine: engine, notifications: notifications, log: log}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/sessions", s.handleLogSession)
		r.Get("/sessions", s.handleListSessions)

		r.Post("/goals", s.handleCreateGoal)
		r.Get("/goals", s.handleListGoals)
		r.Post("/goals/{id}/complete", s.handleCompleteGoal)
		r.Post("/goals/{id}/abandon", s.handleAbandonGoal)

		r.Get("/stats", s.handleStats)

		r.Get("/achievements", s.handleListAchievements)
		r.Post("/achievements/check", s.handleCheck)

		r.Get("/notifications", s.handleNotifications)
		r.Post("/notifications/{id}/shown", s.handleNotificationShown)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}
