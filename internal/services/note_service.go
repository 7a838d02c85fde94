package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/notes-api-be/internal/auth"
	"github.com/isdelr/notes-api-be/internal/models"
	"github.com/isdelr/notes-api-be/internal/store"
	"github.com/rs/zerolog/log"
)

// NoteServiceProvider defines the interface for note services.
type NoteServiceProvider interface {
	Create(token, title, content string) (string, error)
	Get(token, id string) (models.Note, error)
	List(token string) ([]models.Note, error)
	Update(token, id string, title, content *string) error
	Delete(token, id string) error
}

// NoteService provides note operations scoped to the identity resolved
// from the caller's token. Every method verifies the token before it
// touches the store, and every store call is owner-filtered.
type NoteService struct {
	notes  store.NoteStore
	tokens *auth.TokenManager
	events EventServiceProvider
}

// NewNoteService creates a new NoteService.
func NewNoteService(notes store.NoteStore, tokens *auth.TokenManager, events EventServiceProvider) *NoteService {
	return &NoteService{notes: notes, tokens: tokens, events: events}
}

// identity resolves the owner identity from a bearer token.
func (s *NoteService) identity(token string) (string, error) {
	username, err := s.tokens.Verify(token)
	if err != nil {
		return "", ErrUnauthorized
	}
	return username, nil
}

// Create stores a new note owned by the caller and returns its id.
func (s *NoteService) Create(token, title, content string) (string, error) {
	owner, err := s.identity(token)
	if err != nil {
		return "", err
	}
	if title == "" || content == "" {
		return "", ErrInvalidInput
	}

	id, err := s.notes.Insert(owner, title, content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.audit("note.create", "note created", owner)
	return id, nil
}

// Get retrieves one of the caller's notes by id.
func (s *NoteService) Get(token, id string) (models.Note, error) {
	owner, err := s.identity(token)
	if err != nil {
		return models.Note{}, err
	}
	if err := validateID(id); err != nil {
		return models.Note{}, err
	}

	note, err := s.notes.FindOne(owner, id)
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if note == nil {
		return models.Note{}, ErrNotFound
	}
	return *note, nil
}

// List retrieves all of the caller's notes. No notes is a valid result,
// not an error.
func (s *NoteService) List(token string) ([]models.Note, error) {
	owner, err := s.identity(token)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.FindAllByOwner(owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return notes, nil
}

// Update applies the supplied fields to one of the caller's notes,
// leaving omitted fields unchanged. At least one field must be supplied.
func (s *NoteService) Update(token, id string, title, content *string) error {
	owner, err := s.identity(token)
	if err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	// An empty string patches nothing; treat it the same as absent.
	if title != nil && *title == "" {
		title = nil
	}
	if content != nil && *content == "" {
		content = nil
	}
	if title == nil && content == nil {
		return ErrInvalidInput
	}

	note, err := s.notes.UpdateOne(owner, id, title, content)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if note == nil {
		// Covers both never-existed and deleted-concurrently.
		return ErrNotFound
	}
	return nil
}

// Delete removes one of the caller's notes.
func (s *NoteService) Delete(token, id string) error {
	owner, err := s.identity(token)
	if err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	note, err := s.notes.DeleteOne(owner, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if note == nil {
		return ErrNotFound
	}

	s.audit("note.delete", "note deleted", owner)
	return nil
}

// validateID rejects ids that are not well-formed UUIDs before any store
// round trip happens.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

func (s *NoteService) audit(eventType, message, username string) {
	if err := s.events.Record(eventType, "info", message, &username); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record audit event")
	}
}
