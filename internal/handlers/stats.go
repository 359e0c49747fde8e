package handlers

import (
	"net/http"
	"time"

	"reconnect-backend/internal/middleware"
	"reconnect-backend/internal/services"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	stats := h.statsService.GetStats(r.Context(), userID, time.Now())
	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	protocols := h.statsService.Recommendations(r.Context(), userID, time.Now())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": protocols,
	})
}

func (h *StatsHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	achievements := h.statsService.Achievements(r.Context(), userID, time.Now())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": achievements,
	})
}
