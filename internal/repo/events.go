package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campusevents/internal/model"
)

func (r *repository) CreateEvent(ctx context.Context, e *model.Event) (int64, error) {
	query := `
		INSERT INTO events (title, description, date, time, location, max_participants, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.Time, e.Location, e.MaxParticipants, e.CreatedBy,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert event: %w", err)
	}
	return e.ID, nil
}

func (r *repository) GetEventByID(ctx context.Context, id int64) (*model.Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, date, time, location, max_participants, created_by, created_at
		FROM events WHERE id = $1
	`, id)

	var e model.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Time,
		&e.Location, &e.MaxParticipants, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	return &e, nil
}

// ListEvents returns every event with a live count of its registrations,
// newest created first.
func (r *repository) ListEvents(ctx context.Context) ([]model.EventWithCount, error) {
	query := `
		SELECT e.id, e.title, e.description, e.date, e.time, e.location,
		       e.max_participants, e.created_by, e.created_at,
		       COUNT(r.id) AS registered_count
		FROM events e
		LEFT JOIN registrations r ON e.id = r.event_id
		GROUP BY e.id
		ORDER BY e.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []model.EventWithCount
	for rows.Next() {
		var e model.EventWithCount
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Date, &e.Time,
			&e.Location, &e.MaxParticipants, &e.CreatedBy, &e.CreatedAt,
			&e.RegisteredCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// UpdateEvent is a full-field replace.
func (r *repository) UpdateEvent(ctx context.Context, e *model.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, date = $3, time = $4, location = $5, max_participants = $6
		WHERE id = $7
	`

	res, err := r.db.ExecContext(ctx, query,
		e.Title, e.Description, e.Date, e.Time, e.Location, e.MaxParticipants, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *repository) DeleteEvent(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}
