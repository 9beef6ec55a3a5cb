package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/existflow/ironcal/internal/model"
)

// ErrEventNotFound is returned when an id does not resolve to a stored event.
var ErrEventNotFound = errors.New("event not found")

const eventColumns = `
e.id, e.name, e.place, e.description, e.all_day, e.start, e."end",
e.notified, e.status, e.updated_at, c.id, c.name, c.color`

// AddEvent inserts a new active event and returns the store-assigned id.
func (db *DB) AddEvent(ctx context.Context, event model.Event) (int64, error) {
	const stmt = `
INSERT INTO events (name, place, description, all_day, start, "end", category_id, notified, status, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := db.ExecContext(ctx, stmt,
		event.Name,
		event.Place,
		event.Description,
		event.AllDay,
		event.Start,
		event.End,
		event.Category.ID,
		event.Notified,
		event.Status,
		event.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("add event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add event: %w", err)
	}
	return id, nil
}

// UpdateEvent replaces the row identified by old's id with the values of new,
// including UpdatedAt. Soft deletion goes through here too: the caller hands
// in a copy with Status=false and the row stays in the store.
func (db *DB) UpdateEvent(ctx context.Context, old, new model.Event) error {
	const stmt = `
UPDATE events
SET name = ?, place = ?, description = ?, all_day = ?, start = ?, "end" = ?,
    category_id = ?, notified = ?, status = ?, updated_at = ?
WHERE id = ?`

	res, err := db.ExecContext(ctx, stmt,
		new.Name,
		new.Place,
		new.Description,
		new.AllDay,
		new.Start,
		new.End,
		new.Category.ID,
		new.Notified,
		new.Status,
		new.UpdatedAt,
		old.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update event %d: %w", old.ID, ErrEventNotFound)
	}
	return nil
}

// GetEvent loads a single event by id, soft-deleted ones included.
func (db *DB) GetEvent(ctx context.Context, id int64) (model.Event, error) {
	query := `
SELECT ` + eventColumns + `
FROM events e JOIN categories c ON c.id = e.category_id
WHERE e.id = ?`

	event, err := scanEvent(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Event{}, fmt.Errorf("get event %d: %w", id, ErrEventNotFound)
		}
		return model.Event{}, fmt.Errorf("get event %d: %w", id, err)
	}
	return event, nil
}

// ListEvents returns all active events ordered by start time. Soft-deleted
// rows are retained in the store but never listed here.
func (db *DB) ListEvents(ctx context.Context) ([]model.Event, error) {
	query := `
SELECT ` + eventColumns + `
FROM events e JOIN categories c ON c.id = e.category_id
WHERE e.status = 1
ORDER BY e.start ASC, e.id ASC`

	return db.queryEvents(ctx, query)
}

// EventsInRange returns active events overlapping the half-open epoch range
// [from, to). Used for day and month listings.
func (db *DB) EventsInRange(ctx context.Context, from, to int64) ([]model.Event, error) {
	query := `
SELECT ` + eventColumns + `
FROM events e JOIN categories c ON c.id = e.category_id
WHERE e.status = 1 AND e.start < ? AND e."end" > ?
ORDER BY e.start ASC, e.id ASC`

	return db.queryEvents(ctx, query, to, from)
}

func (db *DB) queryEvents(ctx context.Context, query string, args ...interface{}) ([]model.Event, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (model.Event, error) {
	var e model.Event
	var color string
	err := row.Scan(
		&e.ID, &e.Name, &e.Place, &e.Description, &e.AllDay, &e.Start, &e.End,
		&e.Notified, &e.Status, &e.UpdatedAt,
		&e.Category.ID, &e.Category.Name, &color,
	)
	if err != nil {
		return model.Event{}, err
	}
	if e.Category.Color, err = model.ParseColor(color); err != nil {
		return model.Event{}, err
	}
	return e, nil
}
