package dto

import (
	"time"

	"campusevents/internal/model"
)

type RegistrationCreatedResponse struct {
	Message        string `json:"message"`
	RegistrationID int64  `json:"registration_id"`
	EventID        int64  `json:"event_id"`
	StudentID      int64  `json:"student_id"`
}

type UnregisterResponse struct {
	Message   string `json:"message"`
	EventID   int64  `json:"event_id"`
	StudentID int64  `json:"student_id"`
}

// AttendanceStatistics summarizes one event's attendance sheet. The
// percentage is rounded to a whole number.
type AttendanceStatistics struct {
	TotalRegistered      int `json:"total_registered"`
	Present              int `json:"present"`
	Absent               int `json:"absent"`
	NotMarked            int `json:"not_marked"`
	AttendancePercentage int `json:"attendance_percentage"`
}

type AttendanceSheetResponse struct {
	Students   []model.AttendanceRow `json:"students"`
	Statistics AttendanceStatistics  `json:"statistics"`
}

type AttendanceMarkedResponse struct {
	Message      string `json:"message"`
	UpdatedCount int    `json:"updated_count"`
}

type FeedbackSavedResponse struct {
	Message    string `json:"message"`
	FeedbackID int64  `json:"feedback_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// FeedbackSummary aggregates an event's feedback. The average keeps one
// decimal place and the distribution is keyed by rating value.
type FeedbackSummary struct {
	TotalFeedback      int            `json:"total_feedback"`
	AverageRating      float64        `json:"average_rating"`
	RatingDistribution map[string]int `json:"rating_distribution"`
}

type EventFeedbackResponse struct {
	Feedback []model.EventFeedback `json:"feedback"`
	Summary  FeedbackSummary       `json:"summary"`
}

type EventReportResponse struct {
	Event        *model.EventReportSummary `json:"event"`
	Participants []model.EventParticipant  `json:"participants"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
