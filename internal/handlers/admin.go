package handlers

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"reconnect-backend/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Overview returns the full company analytics report. Repository
// failures other than policy recursion degrade to an empty report
// inside the service, so most calls succeed even on a cold database.
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	report, err := h.adminService.Overview(r.Context(), time.Now())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *AdminHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Emails        []string `json:"emails"`
		CompanyDomain string   `json:"company_domain"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	queued, err := h.adminService.EnqueueInvites(r.Context(), req.Emails, req.CompanyDomain)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": "Invites queued",
		"queued":  queued,
	})
}

func (h *AdminHandler) ExportUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsersForExport(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="users.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{"id", "email", "full_name", "role", "verified", "active", "created_at", "last_login_at"})
	for _, u := range users {
		lastLogin := ""
		if u.LastLoginAt != nil {
			lastLogin = u.LastLoginAt.Format(time.RFC3339)
		}
		cw.Write([]string{
			u.ID.String(),
			u.Email,
			u.FullName,
			u.Role,
			strconv.FormatBool(u.IsVerified),
			strconv.FormatBool(u.IsActive),
			u.CreatedAt.Format(time.RFC3339),
			lastLogin,
		})
	}
	cw.Flush()
}
