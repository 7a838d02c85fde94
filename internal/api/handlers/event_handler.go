package handlers

import (
	"net/http"
	"strconv"

	"github.com/isdelr/notes-api-be/internal/auth"
	"github.com/isdelr/notes-api-be/internal/services"
	"github.com/rs/zerolog/log"
)

// EventHandler handles HTTP requests for the audit event log.
type EventHandler struct {
	service services.EventServiceProvider
	tokens  *auth.TokenManager
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider, tokens *auth.TokenManager) *EventHandler {
	return &EventHandler{service: service, tokens: tokens}
}

// GetRecent handles the request to get the caller's recent audit events.
// Events are owner-scoped the same way notes are.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	username, err := h.tokens.Verify(auth.BearerToken(r))
	if err != nil {
		writeServiceError(w, services.ErrUnauthorized)
		return
	}

	limitStr := r.URL.Query().Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20 // Default limit
	}

	events, err := h.service.RecentEventsForUser(username, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve events")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, events)
}
