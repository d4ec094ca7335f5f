package model

import "time"

const (
	AttendancePresent   = "present"
	AttendanceAbsent    = "absent"
	AttendanceNotMarked = "not_marked"
)

type Student struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Password   string    `db:"password" json:"-"`
	StudentID  string    `db:"student_id" json:"student_id"`
	University string    `db:"university" json:"university"`
	Department string    `db:"department" json:"department"`
	Year       int       `db:"year" json:"year"`
	Phone      *string   `db:"phone" json:"phone,omitempty"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type Admin struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"`
	FullName  string    `db:"full_name" json:"full_name"`
	Role      string    `db:"role" json:"role"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Event struct {
	ID              int64     `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Description     string    `db:"description" json:"description"`
	Date            string    `db:"date" json:"date"`
	Time            string    `db:"time" json:"time"`
	Location        string    `db:"location" json:"location"`
	MaxParticipants int       `db:"max_participants" json:"max_participants"`
	CreatedBy       *int64    `db:"created_by" json:"created_by,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type Registration struct {
	ID           int64     `db:"id" json:"id"`
	StudentID    int64     `db:"student_id" json:"student_id"`
	EventID      int64     `db:"event_id" json:"event_id"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
}

type Attendance struct {
	ID        int64     `db:"id" json:"id"`
	StudentID int64     `db:"student_id" json:"student_id"`
	EventID   int64     `db:"event_id" json:"event_id"`
	Status    string    `db:"status" json:"status"`
	MarkedAt  time.Time `db:"marked_at" json:"marked_at"`
}

type Feedback struct {
	ID          int64     `db:"id" json:"id"`
	StudentID   int64     `db:"student_id" json:"student_id"`
	EventID     int64     `db:"event_id" json:"event_id"`
	Rating      int       `db:"rating" json:"rating"`
	Comment     string    `db:"comment" json:"comment"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
}

// AttendanceMark is a single entry of a batch attendance submission.
type AttendanceMark struct {
	StudentID int64  `json:"student_id"`
	Status    string `json:"status"`
}
