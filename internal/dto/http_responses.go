package dto

import (
	"github.com/wb-go/wbf/ginext"
)

// Error body shape shared by every failure response.
type ErrorBody struct {
	Error string `json:"error"`
}

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    any    `json:"user"`
}

// StudentProfile is the public view of a student account, password excluded.
type StudentProfile struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	StudentID  string `json:"student_id"`
	University string `json:"university"`
	Department string `json:"department"`
	Year       int    `json:"year"`
	Type       string `json:"type"`
}

// AdminProfile is the public view of an admin account, password excluded.
type AdminProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Type     string `json:"type"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func BadRequestError(c *ginext.Context, msg string) {
	c.JSON(400, ErrorBody{Error: msg})
}

func UnauthorizedError(c *ginext.Context, msg string) {
	c.JSON(401, ErrorBody{Error: msg})
}

func ForbiddenError(c *ginext.Context, msg string) {
	c.JSON(403, ErrorBody{Error: msg})
}

func NotFoundError(c *ginext.Context, msg string) {
	c.JSON(404, ErrorBody{Error: msg})
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, ErrorBody{Error: "Something went wrong!"})
}

func EventNotFoundError(c *ginext.Context) {
	NotFoundError(c, "Event not found")
}

func StudentNotFoundError(c *ginext.Context) {
	NotFoundError(c, "Student not found")
}

func RegistrationDuplicateError(c *ginext.Context) {
	BadRequestError(c, "You are already registered for this event")
}

func EventFullError(c *ginext.Context) {
	BadRequestError(c, "Event is full")
}

func InvalidCredentialsError(c *ginext.Context) {
	UnauthorizedError(c, "Invalid email or password")
}
