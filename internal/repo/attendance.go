package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campusevents/internal/model"
)

// MarkBatchTx upserts every record inside one transaction. Each student must
// hold a registration for the event; the first one that does not aborts the
// whole batch so partial writes are never visible.
func (r *repository) MarkBatchTx(ctx context.Context, eventID int64, records []model.AttendanceMark) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

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

	for _, rec := range records {
		var regID int64
		err = tx.QueryRowContext(ctx, `
			SELECT id FROM registrations WHERE student_id = $1 AND event_id = $2
		`, rec.StudentID, eventID).Scan(&regID)
		if err != nil {
			_ = tx.Rollback()
			if errors.Is(err, sql.ErrNoRows) {
				return 0, &NotRegisteredError{StudentID: rec.StudentID}
			}
			return 0, fmt.Errorf("failed to check registration: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO attendance (student_id, event_id, status, marked_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (student_id, event_id)
			DO UPDATE SET status = EXCLUDED.status, marked_at = NOW()
		`, rec.StudentID, eventID, rec.Status)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("failed to upsert attendance: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(records), nil
}

// AttendanceSheet lists every registrant of the event with the attendance
// status resolved to "not_marked" when no record exists yet.
func (r *repository) AttendanceSheet(ctx context.Context, eventID int64) ([]model.AttendanceRow, error) {
	query := `
		SELECT r.student_id, s.student_id, s.name, s.email, s.department, s.year,
		       r.registered_at, COALESCE(a.status, 'not_marked'), a.marked_at
		FROM registrations r
		JOIN students s ON r.student_id = s.id
		LEFT JOIN attendance a ON r.student_id = a.student_id AND r.event_id = a.event_id
		WHERE r.event_id = $1
		ORDER BY s.name
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance sheet: %w", err)
	}
	defer rows.Close()

	var sheet []model.AttendanceRow
	for rows.Next() {
		var row model.AttendanceRow
		if err := rows.Scan(
			&row.StudentID, &row.StudentNumber, &row.Name, &row.Email,
			&row.Department, &row.Year, &row.RegisteredAt, &row.Status, &row.MarkedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		sheet = append(sheet, row)
	}
	return sheet, rows.Err()
}

func (r *repository) HasPresentAttendance(ctx context.Context, studentID, eventID int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM attendance
		WHERE student_id = $1 AND event_id = $2 AND status = 'present'
	`, studentID, eventID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check attendance: %w", err)
	}
	return count > 0, nil
}
