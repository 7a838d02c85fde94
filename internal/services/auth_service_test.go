package services

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/isdelr/notes-api-be/internal/auth"
	"github.com/isdelr/notes-api-be/internal/database"
	"github.com/isdelr/notes-api-be/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func newAuthFixture(t *testing.T) (*AuthService, *EventService, *auth.TokenManager) {
	t.Helper()

	db := newTestDB(t)
	tokens := auth.NewTokenManager(auth.StaticKey("test-secret"), time.Hour)
	events := NewEventService(db)
	svc := NewAuthService(store.NewUserStore(db), auth.NewHasher(4), tokens, events)
	return svc, events, tokens
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _, tokens := newAuthFixture(t)

	regToken, err := svc.Register("alice", "pw1")
	require.NoError(t, err)

	loginToken, err := svc.Login("alice", "pw1")
	require.NoError(t, err)

	// Both tokens resolve to the same identity.
	regUser, err := tokens.Verify(regToken)
	require.NoError(t, err)
	loginUser, err := tokens.Verify(loginToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", regUser)
	assert.Equal(t, "alice", loginUser)
}

func TestRegister_EmptyFields(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register("", "pw1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register("alice", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register("alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Register("alice", "pw2")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_Concurrent_ExactlyOneWins(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	const attempts = 4
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register("alice", "pw1")
		}(i)
	}
	wg.Wait()

	var won int
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, ErrUsernameTaken)
		}
	}
	assert.Equal(t, 1, won, "exactly one registration must succeed")
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register("alice", "pw1")
	require.NoError(t, err)

	_, wrongPassword := svc.Login("alice", "wrong")
	_, unknownUser := svc.Login("nobody", "pw1")

	assert.ErrorIs(t, wrongPassword, ErrAuthenticationFailed)
	assert.ErrorIs(t, unknownUser, ErrAuthenticationFailed)
	// Identical error value, so no signal about which usernames exist.
	assert.Equal(t, wrongPassword, unknownUser)
}

func TestLogin_EmptyFields(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login("", "pw1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Login("alice", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthService_RecordsAuditEvents(t *testing.T) {
	svc, events, _ := newAuthFixture(t)

	_, err := svc.Register("alice", "pw1")
	require.NoError(t, err)
	_, err = svc.Login("alice", "pw1")
	require.NoError(t, err)

	recorded, err := events.RecentEventsForUser("alice", 10)
	require.NoError(t, err)
	require.Len(t, recorded, 2)

	types := []string{recorded[0].Type, recorded[1].Type}
	assert.Contains(t, types, "user.register")
	assert.Contains(t, types, "user.login")
}
