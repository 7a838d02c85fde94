package store

import (
	"database/sql"
	"sync"
	"testing"

	"github.com/isdelr/notes-api-be/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh in-memory database with the full schema. A
// single connection keeps every query on the same memory store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserStore_InsertAndFind(t *testing.T) {
	users := NewUserStore(newTestDB(t))

	require.NoError(t, users.Insert("alice", "digest-1"))

	user, err := users.FindByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "digest-1", user.PasswordHash)

	missing, err := users.FindByUsername("bob")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserStore_DuplicateUsername(t *testing.T) {
	users := NewUserStore(newTestDB(t))

	require.NoError(t, users.Insert("alice", "digest-1"))
	err := users.Insert("alice", "digest-2")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserStore_ConcurrentInsert_OneWinner(t *testing.T) {
	users := NewUserStore(newTestDB(t))

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = users.Insert("alice", "digest")
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case assert.ErrorIs(t, err, ErrDuplicateUsername):
			lost++
		}
	}
	assert.Equal(t, 1, won, "exactly one insert must win")
	assert.Equal(t, attempts-1, lost)
}

func TestNoteStore_InsertAndFindOne(t *testing.T) {
	notes := NewNoteStore(newTestDB(t))

	id, err := notes.Insert("alice", "t", "c")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	note, err := notes.FindOne("alice", id)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, id, note.ID)
	assert.Equal(t, "alice", note.Owner)
	assert.Equal(t, "t", note.Title)
	assert.Equal(t, "c", note.Content)
}

func TestNoteStore_FindOne_WrongOwnerLooksMissing(t *testing.T) {
	notes := NewNoteStore(newTestDB(t))

	id, err := notes.Insert("alice", "t", "c")
	require.NoError(t, err)

	// Same nil result for another owner as for a nonexistent id.
	note, err := notes.FindOne("bob", id)
	require.NoError(t, err)
	assert.Nil(t, note)

	note, err = notes.FindOne("alice", "3f0e5a44-32c5-4f9a-9c6e-000000000000")
	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestNoteStore_FindAllByOwner(t *testing.T) {
	notes := NewNoteStore(newTestDB(t))

	first, err := notes.Insert("alice", "first", "c1")
	require.NoError(t, err)
	second, err := notes.Insert("alice", "second", "c2")
	require.NoError(t, err)
	_, err = notes.Insert("bob", "other", "c3")
	require.NoError(t, err)

	all, err := notes.FindAllByOwner("alice")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first, all[0].ID)
	assert.Equal(t, second, all[1].ID)

	empty, err := notes.FindAllByOwner("carol")
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Len(t, empty, 0)
}

func TestNoteStore_UpdateOne_PartialPatch(t *testing.T) {
	notes := NewNoteStore(newTestDB(t))

	id, err := notes.Insert("alice", "t", "c")
	require.NoError(t, err)

	newTitle := "t2"
	note, err := notes.UpdateOne("alice", id, &newTitle, nil)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "t2", note.Title)
	assert.Equal(t, "c", note.Content, "omitted field keeps prior value")

	newContent := "c2"
	note, err = notes.UpdateOne("alice", id, nil, &newContent)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "t2", note.Title)
	assert.Equal(t, "c2", note.Content)
}

func TestNoteStore_UpdateOne_NoMatch(t *testing.T) {
	notes := NewNoteStore(newTestDB(t))

	id, err := notes.Insert("alice", "t", "c")
	require.NoError(t, err)

	newTitle := "t2"
	note, err := notes.UpdateOne("bob", id, &newTitle, nil)
	require.NoError(t, err)
	assert.Nil(t, note)

	// Owner's copy is untouched.
	got, err := notes.FindOne("alice", id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "t", got.Title)
}

func TestNoteStore_DeleteOne(t *testing.T) {
	notes := NewNoteStore(newTestDB(t))

	id, err := notes.Insert("alice", "t", "c")
	require.NoError(t, err)

	deleted, err := notes.DeleteOne("alice", id)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "t", deleted.Title)

	gone, err := notes.FindOne("alice", id)
	require.NoError(t, err)
	assert.Nil(t, gone)

	again, err := notes.DeleteOne("alice", id)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestNoteStore_DeleteOne_WrongOwner(t *testing.T) {
	notes := NewNoteStore(newTestDB(t))

	id, err := notes.Insert("alice", "t", "c")
	require.NoError(t, err)

	deleted, err := notes.DeleteOne("bob", id)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	still, err := notes.FindOne("alice", id)
	require.NoError(t, err)
	assert.NotNil(t, still)
}
