package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"reconnect-backend/internal/catalog"
)

// ProtocolHandler serves the built-in protocol catalog. Protocols are
// compiled in rather than stored, so there is no repository behind this.
type ProtocolHandler struct{}

func NewProtocolHandler() *ProtocolHandler {
	return &ProtocolHandler{}
}

func (h *ProtocolHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"protocols": catalog.Protocols,
	})
}

func (h *ProtocolHandler) Get(w http.ResponseWriter, r *http.Request) {
	protocol := catalog.ProtocolByID(chi.URLParam(r, "id"))
	if protocol == nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Protocol not found", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"protocol": protocol,
	})
}
