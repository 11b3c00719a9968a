package store

import (
	"database/sql"
	"time"
)

// EventRecord is one persisted input event.
type EventRecord struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Amount    int       `json:"amount,omitempty"`
	Track     string    `json:"track,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EventRepository stores the input event history.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Create inserts an event and fills in its ID.
func (r *EventRepository) Create(e *EventRecord) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	result, err := r.db.Exec(
		`INSERT INTO input_events (kind, x, y, amount, track, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Kind, e.X, e.Y, e.Amount, e.Track, e.CreatedAt.UTC(),
	)
	if err != nil {
		return err
	}

	e.ID, err = result.LastInsertId()
	return err
}

// Recent returns up to limit events, newest first.
func (r *EventRepository) Recent(limit int) ([]EventRecord, error) {
	rows, err := r.db.Query(
		`SELECT id, kind, x, y, amount, track, created_at
		 FROM input_events
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var e EventRecord
		if err := rows.Scan(&e.ID, &e.Kind, &e.X, &e.Y, &e.Amount, &e.Track, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// DeleteBefore removes events older than cutoff and reports how many went.
func (r *EventRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM input_events WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
