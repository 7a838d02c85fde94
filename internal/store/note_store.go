package store

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/isdelr/notes-api-be/internal/models"
)

// NoteStore persists notes. Every query is filtered by owner: a note that
// exists under a different owner is indistinguishable from one that does
// not exist at all.
type NoteStore interface {
	Insert(owner, title, content string) (string, error)
	FindOne(owner, id string) (*models.Note, error)
	FindAllByOwner(owner string) ([]models.Note, error)
	UpdateOne(owner, id string, title, content *string) (*models.Note, error)
	DeleteOne(owner, id string) (*models.Note, error)
}

// SQLiteNoteStore is a NoteStore backed by the notes table.
type SQLiteNoteStore struct {
	db *sql.DB
}

// NewNoteStore creates a SQLiteNoteStore.
func NewNoteStore(db *sql.DB) *SQLiteNoteStore {
	return &SQLiteNoteStore{db: db}
}

// scanNote is a helper to scan a note from a row or rows object.
func scanNote(scanner interface{ Scan(...interface{}) error }) (models.Note, error) {
	var note models.Note
	err := scanner.Scan(&note.ID, &note.Owner, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	return note, err
}

// Insert stores a new note and returns its generated id.
func (s *SQLiteNoteStore) Insert(owner, title, content string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		"INSERT INTO notes(id, owner, title, content) VALUES(?, ?, ?, ?)",
		id, owner, title, content,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// FindOne retrieves a note by id, or nil when the id does not exist or
// belongs to a different owner.
func (s *SQLiteNoteStore) FindOne(owner, id string) (*models.Note, error) {
	row := s.db.QueryRow(
		"SELECT id, owner, title, content, created_at, updated_at FROM notes WHERE id = ? AND owner = ?",
		id, owner,
	)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

// FindAllByOwner retrieves all notes belonging to owner in insertion order.
// An owner with no notes gets an empty slice, not nil.
func (s *SQLiteNoteStore) FindAllByOwner(owner string) ([]models.Note, error) {
	rows, err := s.db.Query(
		"SELECT id, owner, title, content, created_at, updated_at FROM notes WHERE owner = ? ORDER BY rowid",
		owner,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// UpdateOne applies the non-nil patch fields to the matching note and
// returns the updated record, or nil when no (owner, id) match exists.
func (s *SQLiteNoteStore) UpdateOne(owner, id string, title, content *string) (*models.Note, error) {
	res, err := s.db.Exec(
		`UPDATE notes
		 SET title = COALESCE(?, title), content = COALESCE(?, content), updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND owner = ?`,
		title, content, id, owner,
	)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}
	return s.FindOne(owner, id)
}

// DeleteOne removes the matching note and returns it, or nil when no
// (owner, id) match exists.
func (s *SQLiteNoteStore) DeleteOne(owner, id string) (*models.Note, error) {
	note, err := s.FindOne(owner, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}
	if _, err := s.db.Exec("DELETE FROM notes WHERE id = ? AND owner = ?", id, owner); err != nil {
		return nil, err
	}
	return note, nil
}
