package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"campusevents/internal/model"
)

// uniqueViolation is the Postgres error code raised on UNIQUE constraint hits.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (r *repository) CreateStudent(ctx context.Context, s *model.Student) (int64, error) {
	query := `
		INSERT INTO students (name, email, password, student_id, university, department, year, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		s.Name, s.Email, s.Password, s.StudentID, s.University, s.Department, s.Year, s.Phone,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateAccount
		}
		return 0, fmt.Errorf("failed to insert student: %w", err)
	}
	return id, nil
}

func (r *repository) StudentExists(ctx context.Context, email, studentNumber string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM students WHERE email = $1 OR student_id = $2
	`, email, studentNumber).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check student existence: %w", err)
	}
	return count > 0, nil
}

func (r *repository) GetStudentByEmail(ctx context.Context, email string) (*model.Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, student_id, university, department, year, phone, is_active, created_at
		FROM students WHERE email = $1
	`, email)
	return scanStudent(row)
}

func (r *repository) GetStudentByID(ctx context.Context, id int64) (*model.Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, student_id, university, department, year, phone, is_active, created_at
		FROM students WHERE id = $1
	`, id)
	return scanStudent(row)
}

func scanStudent(row *sql.Row) (*model.Student, error) {
	var s model.Student
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.Password, &s.StudentID,
		&s.University, &s.Department, &s.Year, &s.Phone, &s.IsActive, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to scan student: %w", err)
	}
	return &s, nil
}

func (r *repository) ListStudents(ctx context.Context) ([]model.Student, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, password, student_id, university, department, year, phone, is_active, created_at
		FROM students
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Email, &s.Password, &s.StudentID,
			&s.University, &s.Department, &s.Year, &s.Phone, &s.IsActive, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func (r *repository) CreateAdmin(ctx context.Context, a *model.Admin) (int64, error) {
	query := `
		INSERT INTO admins (username, email, password, full_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, a.Username, a.Email, a.Password, a.FullName).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateAccount
		}
		return 0, fmt.Errorf("failed to insert admin: %w", err)
	}
	return id, nil
}

func (r *repository) AdminExists(ctx context.Context, email, username string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM admins WHERE email = $1 OR username = $2
	`, email, username).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check admin existence: %w", err)
	}
	return count > 0, nil
}

func (r *repository) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password, full_name, role, is_active, created_at
		FROM admins WHERE email = $1
	`, email)

	var a model.Admin
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.Password, &a.FullName, &a.Role, &a.IsActive, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to scan admin: %w", err)
	}
	return &a, nil
}
