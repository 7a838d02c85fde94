package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/notes-api-be/internal/models"
)

// EventServiceProvider defines the interface for the audit event log.
type EventServiceProvider interface {
	Record(eventType, level, message string, username *string) error
	RecentEventsForUser(username string, limit int) ([]models.Event, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// EventService provides the append-only audit trail of account and note
// actions. Rows are pruned by the background event pruner, never updated.
type EventService struct {
	db *sql.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// Record appends a new event to the audit log.
func (s *EventService) Record(eventType, level, message string, username *string) error {
	event := models.Event{
		ID:       uuid.New().String(),
		Type:     eventType,
		Level:    level,
		Message:  message,
		Username: username,
	}

	_, err := s.db.Exec(
		"INSERT INTO events (id, type, level, message, username) VALUES (?, ?, ?, ?, ?)",
		event.ID, event.Type, event.Level, event.Message, event.Username,
	)
	return err
}

// RecentEventsForUser retrieves the most recent audit events recorded for
// one user. Users only ever see their own trail.
func (s *EventService) RecentEventsForUser(username string, limit int) ([]models.Event, error) {
	rows, err := s.db.Query(
		"SELECT id, type, level, message, username, created_at FROM events WHERE username = ? ORDER BY rowid DESC LIMIT ?",
		username, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.Event, 0)
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.Username, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// DeleteOlderThan removes events created before cutoff and reports how
// many rows were pruned. The cutoff is compared against the column's
// CURRENT_TIMESTAMP text form, so it is rendered in the same layout.
func (s *EventService) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM events WHERE created_at < ?", cutoff.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
