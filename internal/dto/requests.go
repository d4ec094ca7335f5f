package dto

import "campusevents/internal/model"

type StudentSignupRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	StudentID  string `json:"student_id" validate:"required"`
	University string `json:"university" validate:"required"`
	Department string `json:"department" validate:"required"`
	Year       int    `json:"year" validate:"required,positive"`
	Phone      string `json:"phone"`
}

type AdminSignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type EventRequest struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description"`
	Date            string `json:"date" validate:"required"`
	Time            string `json:"time" validate:"required"`
	Location        string `json:"location" validate:"required"`
	MaxParticipants int    `json:"max_participants" validate:"required,positive"`
}

type AttendanceBatchRequest struct {
	AttendanceRecords []model.AttendanceMark `json:"attendance_records"`
}

type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
