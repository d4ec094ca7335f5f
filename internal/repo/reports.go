package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campusevents/internal/model"
)

// Counts use DISTINCT because the three LEFT JOINs fan out rows; a student
// with feedback would otherwise be counted once per feedback row.
func (r *repository) EventPopularity(ctx context.Context) ([]model.EventPopularity, error) {
	query := `
		SELECT e.id, e.title, e.date, e.location,
		       COUNT(DISTINCT r.id) AS registration_count,
		       COUNT(DISTINCT CASE WHEN a.status = 'present' THEN a.id END) AS attendance_count,
		       CASE WHEN COUNT(DISTINCT r.id) > 0
		            THEN ROUND(COUNT(DISTINCT CASE WHEN a.status = 'present' THEN a.id END) * 100.0 / COUNT(DISTINCT r.id), 2)
		            ELSE 0 END AS attendance_percentage,
		       COALESCE(ROUND(AVG(f.rating)::numeric, 2), 0) AS average_rating
		FROM events e
		LEFT JOIN registrations r ON e.id = r.event_id
		LEFT JOIN attendance a ON e.id = a.event_id
		LEFT JOIN feedback f ON e.id = f.event_id
		GROUP BY e.id
		ORDER BY registration_count DESC, attendance_count DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load event popularity: %w", err)
	}
	defer rows.Close()

	var report []model.EventPopularity
	for rows.Next() {
		var p model.EventPopularity
		if err := rows.Scan(
			&p.EventID, &p.Title, &p.Date, &p.Location,
			&p.RegistrationCount, &p.AttendanceCount, &p.AttendancePercentage, &p.AverageRating,
		); err != nil {
			return nil, fmt.Errorf("failed to scan popularity row: %w", err)
		}
		report = append(report, p)
	}
	return report, rows.Err()
}

const participationSelect = `
	SELECT s.id, s.name, s.email, s.student_id, s.university,
	       COUNT(DISTINCT r.id) AS total_registrations,
	       COUNT(DISTINCT a.id) AS total_attendances,
	       CASE WHEN COUNT(DISTINCT r.id) > 0
	            THEN ROUND(COUNT(DISTINCT a.id) * 100.0 / COUNT(DISTINCT r.id), 2)
	            ELSE 0 END AS attendance_rate,
	       COALESCE(ROUND(AVG(f.rating)::numeric, 2), 0) AS average_feedback_rating
	FROM students s
	LEFT JOIN registrations r ON s.id = r.student_id
	LEFT JOIN attendance a ON s.id = a.student_id AND a.status = 'present'
	LEFT JOIN feedback f ON s.id = f.student_id
`

func (r *repository) StudentParticipation(ctx context.Context, studentID int64) (*model.StudentParticipation, error) {
	row := r.db.QueryRowContext(ctx, participationSelect+`
		WHERE s.id = $1
		GROUP BY s.id
	`, studentID)

	var p model.StudentParticipation
	err := row.Scan(
		&p.StudentID, &p.Name, &p.Email, &p.StudentNumber, &p.University,
		&p.TotalRegistrations, &p.TotalAttendances, &p.AttendanceRate, &p.AverageRating,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to scan participation: %w", err)
	}
	return &p, nil
}

func (r *repository) TopStudents(ctx context.Context, limit int) ([]model.StudentParticipation, error) {
	rows, err := r.db.QueryContext(ctx, participationSelect+`
		GROUP BY s.id
		ORDER BY total_attendances DESC, total_registrations DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load top students: %w", err)
	}
	defer rows.Close()

	var report []model.StudentParticipation
	for rows.Next() {
		var p model.StudentParticipation
		if err := rows.Scan(
			&p.StudentID, &p.Name, &p.Email, &p.StudentNumber, &p.University,
			&p.TotalRegistrations, &p.TotalAttendances, &p.AttendanceRate, &p.AverageRating,
		); err != nil {
			return nil, fmt.Errorf("failed to scan participation: %w", err)
		}
		report = append(report, p)
	}
	return report, rows.Err()
}

func (r *repository) EventReportSummary(ctx context.Context, eventID int64) (*model.EventReportSummary, error) {
	query := `
		SELECT e.id, e.title, e.description, e.date, e.time, e.location,
		       e.max_participants, e.created_by, e.created_at,
		       COUNT(DISTINCT r.id) AS total_registrations,
		       COUNT(DISTINCT CASE WHEN a.status = 'present' THEN a.id END) AS total_attendances,
		       CASE WHEN COUNT(DISTINCT r.id) > 0
		            THEN ROUND(COUNT(DISTINCT CASE WHEN a.status = 'present' THEN a.id END) * 100.0 / COUNT(DISTINCT r.id), 2)
		            ELSE 0 END AS attendance_percentage,
		       COALESCE(ROUND(AVG(f.rating)::numeric, 2), 0) AS average_rating,
		       COUNT(DISTINCT f.id) AS feedback_count
		FROM events e
		LEFT JOIN registrations r ON e.id = r.event_id
		LEFT JOIN attendance a ON e.id = a.event_id
		LEFT JOIN feedback f ON e.id = f.event_id
		WHERE e.id = $1
		GROUP BY e.id
	`

	var s model.EventReportSummary
	err := r.db.QueryRowContext(ctx, query, eventID).Scan(
		&s.ID, &s.Title, &s.Description, &s.Date, &s.Time, &s.Location,
		&s.MaxParticipants, &s.CreatedBy, &s.CreatedAt,
		&s.TotalRegistrations, &s.TotalAttendances, &s.AttendancePercentage,
		&s.AverageRating, &s.FeedbackCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to scan event report: %w", err)
	}
	return &s, nil
}

func (r *repository) EventParticipants(ctx context.Context, eventID int64) ([]model.EventParticipant, error) {
	query := `
		SELECT s.id, s.name, s.email, s.student_id, r.registered_at,
		       a.status, f.rating, f.comment
		FROM registrations r
		JOIN students s ON r.student_id = s.id
		LEFT JOIN attendance a ON r.student_id = a.student_id AND r.event_id = a.event_id
		LEFT JOIN feedback f ON r.student_id = f.student_id AND r.event_id = f.event_id
		WHERE r.event_id = $1
		ORDER BY r.registered_at
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	defer rows.Close()

	var participants []model.EventParticipant
	for rows.Next() {
		var p model.EventParticipant
		if err := rows.Scan(
			&p.StudentID, &p.Name, &p.Email, &p.StudentNumber,
			&p.RegisteredAt, &p.AttendanceStatus, &p.Rating, &p.Comment,
		); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// DashboardStats aggregates headline counts. A non-empty university scopes
// the student and registration counts; events carry no university column so
// the event count and recent list stay global.
func (r *repository) DashboardStats(ctx context.Context, university string) (*model.DashboardStats, error) {
	var stats model.DashboardStats

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&stats.TotalEvents); err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	studentsQuery := `SELECT COUNT(*) FROM students`
	registrationsQuery := `SELECT COUNT(*) FROM registrations`
	var args []any
	if university != "" {
		studentsQuery += ` WHERE university = $1`
		registrationsQuery = `
			SELECT COUNT(*) FROM registrations r
			JOIN students s ON r.student_id = s.id
			WHERE s.university = $1
		`
		args = append(args, university)
	}

	if err := r.db.QueryRowContext(ctx, studentsQuery, args...).Scan(&stats.TotalStudents); err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, registrationsQuery, args...).Scan(&stats.TotalRegistrations); err != nil {
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}

	recentQuery := `
		SELECT e.id, e.title, e.description, e.date, e.time, e.location,
		       e.max_participants, e.created_by, e.created_at,
		       COUNT(r.id) AS registered_count
		FROM events e
		LEFT JOIN registrations r ON e.id = r.event_id
		GROUP BY e.id
		ORDER BY e.created_at DESC
		LIMIT 5
	`
	rows, err := r.db.QueryContext(ctx, recentQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e model.EventWithCount
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Date, &e.Time,
			&e.Location, &e.MaxParticipants, &e.CreatedBy, &e.CreatedAt,
			&e.RegisteredCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recent event: %w", err)
		}
		stats.RecentEvents = append(stats.RecentEvents, e)
	}
	return &stats, rows.Err()
}
