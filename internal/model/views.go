package model

import "time"

// Query-shaped rows produced by JOIN reads. These never map to a single table.

type EventWithCount struct {
	Event
	RegisteredCount int `json:"registered_count"`
}

// EventRegistrant is one registration row resolved to student details.
type EventRegistrant struct {
	RegistrationID int64     `json:"registration_id"`
	RegisteredAt   time.Time `json:"registered_at"`
	StudentID      int64     `json:"student_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	StudentNumber  string    `json:"student_number"`
	Department     string    `json:"department"`
	Year           int       `json:"year"`
}

// StudentRegistration is one registration row resolved to event details.
type StudentRegistration struct {
	RegistrationID  int64     `json:"registration_id"`
	RegisteredAt    time.Time `json:"registered_at"`
	EventID         int64     `json:"event_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Location        string    `json:"location"`
	MaxParticipants int       `json:"max_participants"`
}

// AttendanceRow is one registrant with the resolved attendance status,
// "not_marked" when no attendance record exists.
type AttendanceRow struct {
	StudentID     int64      `json:"student_id"`
	StudentNumber string     `json:"student_number"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Department    string     `json:"department"`
	Year          int        `json:"year"`
	RegisteredAt  time.Time  `json:"registered_at"`
	Status        string     `json:"attendance_status"`
	MarkedAt      *time.Time `json:"marked_at,omitempty"`
}

// EventFeedback is one feedback row joined with the submitter.
type EventFeedback struct {
	ID            int64     `json:"id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	SubmittedAt   time.Time `json:"submitted_at"`
	StudentName   string    `json:"student_name"`
	StudentNumber string    `json:"student_number"`
	Department    string    `json:"department"`
}

// StudentFeedback is one feedback row joined with the event it targets.
type StudentFeedback struct {
	ID          int64     `json:"id"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	SubmittedAt time.Time `json:"submitted_at"`
	EventTitle  string    `json:"event_title"`
	EventDate   string    `json:"event_date"`
}

type EventPopularity struct {
	EventID              int64   `json:"event_id"`
	Title                string  `json:"title"`
	Date                 string  `json:"date"`
	Location             string  `json:"location"`
	RegistrationCount    int     `json:"registration_count"`
	AttendanceCount      int     `json:"attendance_count"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	AverageRating        float64 `json:"average_rating"`
}

type StudentParticipation struct {
	StudentID          int64   `json:"student_id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	StudentNumber      string  `json:"student_number"`
	University         string  `json:"university"`
	TotalRegistrations int     `json:"total_registrations"`
	TotalAttendances   int     `json:"total_attendances"`
	AttendanceRate     float64 `json:"attendance_rate"`
	AverageRating      float64 `json:"average_feedback_rating"`
}

type EventReportSummary struct {
	Event
	TotalRegistrations   int     `json:"total_registrations"`
	TotalAttendances     int     `json:"total_attendances"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	AverageRating        float64 `json:"average_rating"`
	FeedbackCount        int     `json:"feedback_count"`
}

// EventParticipant is one roster line of the detailed event report.
type EventParticipant struct {
	StudentID        int64     `json:"student_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	StudentNumber    string    `json:"student_number"`
	RegisteredAt     time.Time `json:"registered_at"`
	AttendanceStatus *string   `json:"attendance_status,omitempty"`
	Rating           *int      `json:"rating,omitempty"`
	Comment          *string   `json:"comment,omitempty"`
}

type DashboardStats struct {
	TotalEvents        int              `json:"total_events"`
	TotalStudents      int              `json:"total_students"`
	TotalRegistrations int              `json:"total_registrations"`
	RecentEvents       []EventWithCount `json:"recent_events"`
}
