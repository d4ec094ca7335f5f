package repo

import (
	"context"
	"fmt"

	"campusevents/internal/model"
)

// RegisterTx inserts a registration inside one transaction. The event row is
// locked first so the capacity check and the insert cannot interleave with a
// concurrent registration for the same event.
func (r *repository) RegisterTx(ctx context.Context, studentID, eventID int64) (int64, error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	var capacity int
	err = tx.QueryRowContext(ctx, `
		SELECT max_participants FROM events WHERE id = $1 FOR UPDATE
	`, eventID).Scan(&capacity)
	if err != nil {
		_ = tx.Rollback()
		return 0, ErrEventNotFound
	}

	var existing int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM registrations WHERE student_id = $1 AND event_id = $2
	`, studentID, eventID).Scan(&existing)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to check duplicate registration: %w", err)
	}
	if existing > 0 {
		_ = tx.Rollback()
		return 0, ErrDuplicateRegistration
	}

	var count int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM registrations WHERE event_id = $1
	`, eventID).Scan(&count)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	if count >= capacity {
		_ = tx.Rollback()
		return 0, ErrEventFull
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO registrations (student_id, event_id)
		VALUES ($1, $2)
		RETURNING id
	`, studentID, eventID).Scan(&id)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to create registration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

func (r *repository) Unregister(ctx context.Context, studentID, eventID int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM registrations WHERE student_id = $1 AND event_id = $2
	`, studentID, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}

func (r *repository) HasRegistration(ctx context.Context, studentID, eventID int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM registrations WHERE student_id = $1 AND event_id = $2
	`, studentID, eventID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
	return count > 0, nil
}

func (r *repository) ListRegistrantsForEvent(ctx context.Context, eventID int64) ([]model.EventRegistrant, error) {
	query := `
		SELECT r.id, r.registered_at, s.id, s.name, s.email, s.student_id, s.department, s.year
		FROM registrations r
		JOIN students s ON r.student_id = s.id
		WHERE r.event_id = $1
		ORDER BY r.registered_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrants: %w", err)
	}
	defer rows.Close()

	var regs []model.EventRegistrant
	for rows.Next() {
		var reg model.EventRegistrant
		if err := rows.Scan(
			&reg.RegistrationID, &reg.RegisteredAt, &reg.StudentID,
			&reg.Name, &reg.Email, &reg.StudentNumber, &reg.Department, &reg.Year,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registrant: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *repository) ListRegistrationsForStudent(ctx context.Context, studentID int64) ([]model.StudentRegistration, error) {
	query := `
		SELECT r.id, r.registered_at, e.id, e.title, e.description, e.date, e.time,
		       e.location, e.max_participants
		FROM registrations r
		JOIN events e ON r.event_id = e.id
		WHERE r.student_id = $1
		ORDER BY e.date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.StudentRegistration
	for rows.Next() {
		var reg model.StudentRegistration
		if err := rows.Scan(
			&reg.RegistrationID, &reg.RegisteredAt, &reg.EventID, &reg.Title,
			&reg.Description, &reg.Date, &reg.Time, &reg.Location, &reg.MaxParticipants,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
