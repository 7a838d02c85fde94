package services

import (
	"errors"
	"fmt"

	"github.com/isdelr/notes-api-be/internal/auth"
	"github.com/isdelr/notes-api-be/internal/store"
	"github.com/rs/zerolog/log"
)

// AuthServiceProvider defines the interface for account services.
type AuthServiceProvider interface {
	Register(username, password string) (string, error)
	Login(username, password string) (string, error)
}

// AuthService provides registration and login on top of the credential
// store, the password hasher, and the token manager.
type AuthService struct {
	users  store.UserStore
	hasher *auth.Hasher
	tokens *auth.TokenManager
	events EventServiceProvider
}

// NewAuthService creates a new AuthService.
func NewAuthService(users store.UserStore, hasher *auth.Hasher, tokens *auth.TokenManager, events EventServiceProvider) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, events: events}
}

// Register creates an account and returns a token for it. Uniqueness is
// enforced by the store's insert, not by a separate existence check, so
// concurrent registrations of the same name resolve to one winner.
func (s *AuthService) Register(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidInput
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := s.users.Insert(username, digest); err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			return "", ErrUsernameTaken
		}
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.audit("user.register", "new account registered", username)
	return token, nil
}

// Login verifies credentials and returns a fresh token. Unknown users and
// wrong passwords produce the same error value.
func (s *AuthService) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidInput
	}

	user, err := s.users.FindByUsername(username)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrAuthenticationFailed
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.audit("user.login", "successful login", username)
	return token, nil
}

// audit records an account event; a failed audit write never fails the
// request it describes.
func (s *AuthService) audit(eventType, message, username string) {
	if err := s.events.Record(eventType, "info", message, &username); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record audit event")
	}
}
