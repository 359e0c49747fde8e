package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"reconnect-backend/internal/catalog"
	"reconnect-backend/internal/middleware"
	"reconnect-backend/internal/models"
	"reconnect-backend/internal/repository"
	"reconnect-backend/internal/services"
)

type SessionHandler struct {
	sessionRepo  *repository.SessionRepo
	statsService *services.StatsService
}

func NewSessionHandler(sessionRepo *repository.SessionRepo, statsService *services.StatsService) *SessionHandler {
	return &SessionHandler{sessionRepo: sessionRepo, statsService: statsService}
}

// validateRatings checks each named rating is on the 1-10 scale.
func validateRatings(ratings map[string]int) map[string]string {
	fields := make(map[string]string)
	for name, value := range ratings {
		if value < 1 || value > 10 {
			fields[name] = fmt.Sprintf("must be between 1 and 10, got %d", value)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if catalog.ProtocolByID(req.ProtocolID) == nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"protocol_id": "unknown protocol"}, r))
		return
	}

	if fields := validateRatings(map[string]int{
		"pre_calm":    req.PreCalm,
		"pre_clarity": req.PreClarity,
		"pre_energy":  req.PreEnergy,
	}); fields != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	session, err := h.sessionRepo.Create(r.Context(), userID, req.ProtocolID, req.PreCalm, req.PreClarity, req.PreEnergy)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create session", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session": session,
	})
}

func (h *SessionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}

	var req models.CompleteSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if fields := validateRatings(map[string]int{
		"post_calm":    req.PostCalm,
		"post_clarity": req.PostClarity,
		"post_energy":  req.PostEnergy,
	}); fields != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	session, err := h.sessionRepo.Complete(r.Context(), sessionID, userID, req.PostCalm, req.PostClarity, req.PostEnergy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Session not found or already completed", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to complete session", r))
		return
	}

	// Cached stats are stale the moment a session completes.
	h.statsService.InvalidateStats(r.Context(), userID)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
	})
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "limit must be a positive integer", r))
			return
		}
		limit = parsed
	}

	sessions, err := h.sessionRepo.ListByUser(r.Context(), userID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list sessions", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": sessions,
	})
}
