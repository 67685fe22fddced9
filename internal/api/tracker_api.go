package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tempo-track/tempo/internal/domain"
)

// --- POST /api/sessions ---

type logSessionRequest struct {
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
	Category   string    `json:"category"`
	Note       string    `json:"note,omitempty"`
}

type logSessionResponse struct {
	Session       domain.Session       `json:"session"`
	NewlyUnlocked []domain.Achievement `json:"newly_unlocked,omitempty"`
}

func (s *Server) handleLogSession(w http.ResponseWriter, r *http.Request) {
	var req logSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DurationMs < 0 {
		writeError(w, http.StatusBadRequest, "duration_ms must be non-negative")
		return
	}
	startedAt := req.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now().Add(-time.Duration(req.DurationMs) * time.Millisecond)
	}

	session, newly, err := s.tracker.LogSession(r.Context(), startedAt,
		time.Duration(req.DurationMs)*time.Millisecond, req.Category, req.Note)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, logSessionResponse{Session: session, NewlyUnlocked: newly})
}

// --- GET /api/sessions ---

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.tracker.Sessions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

// --- POST /api/goals ---

type createGoalRequest struct {
	Title       string  `json:"title"`
	TargetHours float64 `json:"target_hours"`
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	goal, err := s.tracker.AddGoal(r.Context(), req.Title, req.TargetHours)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

// --- GET /api/goals ---

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.tracker.Goals(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"goals": goals})
}

// --- POST /api/goals/{id}/complete ---

func (s *Server) handleCompleteGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	newly, err := s.tracker.CompleteGoal(r.Context(), id)
	if err != nil {
		writeGoalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"newly_unlocked": newly})
}

// --- POST /api/goals/{id}/abandon ---

func (s *Server) handleAbandonGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.tracker.AbandonGoal(r.Context(), id); err != nil {
		writeGoalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "failed"})
}

func writeGoalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrGoalNotActive):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// --- GET /api/stats ---

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, err := s.tracker.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// --- GET /api/achievements ---

func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	all, err := s.engine.Achievements(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	unlocked := 0
	for _, a := range all {
		if a.State.Unlocked {
			unlocked++
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": all,
		"unlocked":     unlocked,
		"total":        len(all),
	})
}

// --- POST /api/achievements/check ---

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	newly, err := s.tracker.Check(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"newly_unlocked": newly})
}

// --- GET /api/notifications ---

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			limit = n
		}
	}
	pending, err := s.notifications.Pending(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"notifications": pending})
}

// --- POST /api/notifications/{id}/shown ---

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.notifications.MarkShown(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "shown"})
}
