package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/notes-api-be/internal/auth"
	"github.com/isdelr/notes-api-be/internal/services"
	"github.com/rs/zerolog/log"
)

// NoteHandler handles HTTP requests for note management. Token
// verification happens inside the note service; the handler only moves
// the bearer token along.
type NoteHandler struct {
	service services.NoteServiceProvider
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(service services.NoteServiceProvider) *NoteHandler {
	return &NoteHandler{service: service}
}

// CreateNotePayload defines the structure for note creation requests.
type CreateNotePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// EditNotePayload defines the structure for note edit requests. Absent
// fields keep their current values.
type EditNotePayload struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Create handles the request to create a new note.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateNotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.service.Create(auth.BearerToken(r), payload.Title, payload.Content)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create note")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"insertedId": id})
}

// Get handles the request to get a single note by its ID.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "noteId")
	note, err := h.service.Get(auth.BearerToken(r), id)
	if err != nil {
		log.Warn().Err(err).Str("note_id", id).Msg("Failed to get note")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// GetAll handles the request to list all of the caller's notes.
func (h *NoteHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	notes, err := h.service.List(auth.BearerToken(r))
	if err != nil {
		log.Warn().Err(err).Msg("Failed to list notes")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

// Edit handles the request to update a note's title and/or content.
func (h *NoteHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "noteId")
	var payload EditNotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Update(auth.BearerToken(r), id, payload.Title, payload.Content); err != nil {
		log.Warn().Err(err).Str("note_id", id).Msg("Failed to edit note")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Note updated successfully"})
}

// Delete handles the request to delete a note.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "noteId")
	if err := h.service.Delete(auth.BearerToken(r), id); err != nil {
		log.Warn().Err(err).Str("note_id", id).Msg("Failed to delete note")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
}
