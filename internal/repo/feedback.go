package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campusevents/internal/model"
)

// UpsertFeedback inserts feedback or replaces the existing row for the same
// (student, event) pair. The second return reports whether a row was updated.
func (r *repository) UpsertFeedback(ctx context.Context, f *model.Feedback) (int64, bool, error) {
	query := `
		INSERT INTO feedback (student_id, event_id, rating, comment, submitted_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (student_id, event_id)
		DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, submitted_at = NOW()
		RETURNING id, (xmax <> 0)
	`

	var id int64
	var updated bool
	err := r.db.QueryRowContext(ctx, query, f.StudentID, f.EventID, f.Rating, f.Comment).Scan(&id, &updated)
	if err != nil {
		return 0, false, fmt.Errorf("failed to upsert feedback: %w", err)
	}
	return id, updated, nil
}

func (r *repository) GetFeedback(ctx context.Context, studentID, eventID int64) (*model.Feedback, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, student_id, event_id, rating, comment, submitted_at
		FROM feedback WHERE student_id = $1 AND event_id = $2
	`, studentID, eventID)

	var f model.Feedback
	err := row.Scan(&f.ID, &f.StudentID, &f.EventID, &f.Rating, &f.Comment, &f.SubmittedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to scan feedback: %w", err)
	}
	return &f, nil
}

func (r *repository) ListFeedbackForEvent(ctx context.Context, eventID int64) ([]model.EventFeedback, error) {
	query := `
		SELECT f.id, f.rating, f.comment, f.submitted_at, s.name, s.student_id, s.department
		FROM feedback f
		JOIN students s ON f.student_id = s.id
		WHERE f.event_id = $1
		ORDER BY f.submitted_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var feedback []model.EventFeedback
	for rows.Next() {
		var f model.EventFeedback
		if err := rows.Scan(
			&f.ID, &f.Rating, &f.Comment, &f.SubmittedAt,
			&f.StudentName, &f.StudentNumber, &f.Department,
		); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}

func (r *repository) ListFeedbackForStudent(ctx context.Context, studentID int64) ([]model.StudentFeedback, error) {
	query := `
		SELECT f.id, f.rating, f.comment, f.submitted_at, e.title, e.date
		FROM feedback f
		JOIN events e ON f.event_id = e.id
		WHERE f.student_id = $1
		ORDER BY f.submitted_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var feedback []model.StudentFeedback
	for rows.Next() {
		var f model.StudentFeedback
		if err := rows.Scan(&f.ID, &f.Rating, &f.Comment, &f.SubmittedAt, &f.EventTitle, &f.EventDate); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}
