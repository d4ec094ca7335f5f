package dto

// RegistrationEventMessage is the broker payload published on registration
// lifecycle changes and consumed by the notification worker.
type RegistrationEventMessage struct {
	Action         string `json:"action"`
	RegistrationID int64  `json:"registration_id"`
	EventID        int64  `json:"event_id"`
	StudentID      int64  `json:"student_id"`
	Email          string `json:"email"`
	EventTitle     string `json:"event_title"`
}
