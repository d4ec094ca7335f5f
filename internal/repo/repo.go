package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"

	"campusevents/internal/model"
)

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrStudentNotFound       = errors.New("student not found")
	ErrAdminNotFound         = errors.New("admin not found")
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrFeedbackNotFound      = errors.New("feedback not found")
	ErrEventFull             = errors.New("event is full")
	ErrDuplicateRegistration = errors.New("duplicate registration")
	ErrDuplicateAccount      = errors.New("duplicate account")
)

// NotRegisteredError reports which student of an attendance batch holds no
// registration for the event.
type NotRegisteredError struct {
	StudentID int64
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("student %d is not registered for the event", e.StudentID)
}

type AccountRepo interface {
	CreateStudent(ctx context.Context, s *model.Student) (int64, error)
	StudentExists(ctx context.Context, email, studentNumber string) (bool, error)
	GetStudentByEmail(ctx context.Context, email string) (*model.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*model.Student, error)
	ListStudents(ctx context.Context) ([]model.Student, error)
	CreateAdmin(ctx context.Context, a *model.Admin) (int64, error)
	AdminExists(ctx context.Context, email, username string) (bool, error)
	GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
}

type EventRepo interface {
	CreateEvent(ctx context.Context, e *model.Event) (int64, error)
	GetEventByID(ctx context.Context, id int64) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.EventWithCount, error)
	UpdateEvent(ctx context.Context, e *model.Event) error
	DeleteEvent(ctx context.Context, id int64) error
}

type RegistrationRepo interface {
	RegisterTx(ctx context.Context, studentID, eventID int64) (int64, error)
	Unregister(ctx context.Context, studentID, eventID int64) error
	HasRegistration(ctx context.Context, studentID, eventID int64) (bool, error)
	ListRegistrantsForEvent(ctx context.Context, eventID int64) ([]model.EventRegistrant, error)
	ListRegistrationsForStudent(ctx context.Context, studentID int64) ([]model.StudentRegistration, error)
}

type AttendanceRepo interface {
	MarkBatchTx(ctx context.Context, eventID int64, records []model.AttendanceMark) (int, error)
	AttendanceSheet(ctx context.Context, eventID int64) ([]model.AttendanceRow, error)
	HasPresentAttendance(ctx context.Context, studentID, eventID int64) (bool, error)
}

type FeedbackRepo interface {
	UpsertFeedback(ctx context.Context, f *model.Feedback) (int64, bool, error)
	GetFeedback(ctx context.Context, studentID, eventID int64) (*model.Feedback, error)
	ListFeedbackForEvent(ctx context.Context, eventID int64) ([]model.EventFeedback, error)
	ListFeedbackForStudent(ctx context.Context, studentID int64) ([]model.StudentFeedback, error)
}

type ReportRepo interface {
	EventPopularity(ctx context.Context) ([]model.EventPopularity, error)
	StudentParticipation(ctx context.Context, studentID int64) (*model.StudentParticipation, error)
	TopStudents(ctx context.Context, limit int) ([]model.StudentParticipation, error)
	EventReportSummary(ctx context.Context, eventID int64) (*model.EventReportSummary, error)
	EventParticipants(ctx context.Context, eventID int64) ([]model.EventParticipant, error)
	DashboardStats(ctx context.Context, university string) (*model.DashboardStats, error)
}

// Repository is the full data-access surface backed by one Postgres store.
type Repository interface {
	AccountRepo
	EventRepo
	RegistrationRepo
	AttendanceRepo
	FeedbackRepo
	ReportRepo
	MigrateUp(migrationsDir string) error
	MigrateDown(migrationsDir string) error
}

type repository struct {
	db  *dbpg.DB
	log *zerolog.Logger
}

func NewRepository(db *dbpg.DB, log *zerolog.Logger) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &repository{db: db, log: log}, nil
}

func (r *repository) MigrateUp(migrationsDir string) error {
	return r.applyMigrations(migrationsDir, "*.up.sql")
}

func (r *repository) MigrateDown(migrationsDir string) error {
	return r.applyMigrations(migrationsDir, "*.down.sql")
}

func (r *repository) applyMigrations(migrationsDir, pattern string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, pattern))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations applied from %s (%s)", migrationsDir, pattern)
	return nil
}
