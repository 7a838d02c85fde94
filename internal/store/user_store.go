package store

import (
	"database/sql"
	"errors"

	"github.com/isdelr/notes-api-be/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicateUsername is returned by Insert when the username is already
// taken. The check happens inside the database's uniqueness constraint, so
// two concurrent inserts for the same name can never both succeed.
var ErrDuplicateUsername = errors.New("username already exists")

// UserStore persists username/password-hash pairs.
type UserStore interface {
	FindByUsername(username string) (*models.User, error)
	Insert(username, passwordHash string) error
}

// SQLiteUserStore is a UserStore backed by the users table.
type SQLiteUserStore struct {
	db *sql.DB
}

// NewUserStore creates a SQLiteUserStore.
func NewUserStore(db *sql.DB) *SQLiteUserStore {
	return &SQLiteUserStore{db: db}
}

// FindByUsername retrieves a user record, or nil if no such user exists.
func (s *SQLiteUserStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT username, password_hash, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Insert creates a user record, failing with ErrDuplicateUsername if the
// name is taken.
func (s *SQLiteUserStore) Insert(username, passwordHash string) error {
	_, err := s.db.Exec("INSERT INTO users(username, password_hash) VALUES(?, ?)", username, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// isUniqueViolation reports whether err is a sqlite uniqueness failure.
// username is the primary key, so the engine may report either the
// PRIMARYKEY or the UNIQUE flavor of SQLITE_CONSTRAINT.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
