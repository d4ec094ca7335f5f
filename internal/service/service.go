package service

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"campusevents/cmd/middleware"
	"campusevents/internal/auth"
	"campusevents/internal/dto"
	"campusevents/internal/repo"
)

type Service interface {
	StudentSignup(ctx *ginext.Context)
	StudentLogin(ctx *ginext.Context)
	AdminSignup(ctx *ginext.Context)
	AdminLogin(ctx *ginext.Context)

	CreateEvent(ctx *ginext.Context)
	GetAllEvents(ctx *ginext.Context)
	GetEvent(ctx *ginext.Context)
	UpdateEvent(ctx *ginext.Context)
	DeleteEvent(ctx *ginext.Context)

	RegisterForEvent(ctx *ginext.Context)
	UnregisterFromEvent(ctx *ginext.Context)
	GetMyRegistrations(ctx *ginext.Context)
	GetEventRegistrations(ctx *ginext.Context)

	GetEventAttendance(ctx *ginext.Context)
	MarkEventAttendance(ctx *ginext.Context)

	SubmitFeedback(ctx *ginext.Context)
	GetEventFeedback(ctx *ginext.Context)
	GetMyEventFeedback(ctx *ginext.Context)
	GetMyFeedback(ctx *ginext.Context)

	EventPopularityReport(ctx *ginext.Context)
	StudentParticipationReport(ctx *ginext.Context)
	TopStudentsReport(ctx *ginext.Context)
	EventReport(ctx *ginext.Context)
	DashboardStats(ctx *ginext.Context)

	GetAllStudents(ctx *ginext.Context)
	GetStudent(ctx *ginext.Context)

	Health(ctx *ginext.Context)
}

// Notifier publishes registration lifecycle messages to the broker. A nil
// notifier disables publishing.
type Notifier interface {
	Publish(message []byte, delaySeconds int) error
}

type Options struct {
	// RequireAttendanceForFeedback restricts feedback to students marked
	// present instead of every registrant.
	RequireAttendanceForFeedback bool
}

type service struct {
	repo   repo.Repository
	tokens *auth.Manager
	log    *zerolog.Logger
	ntf    Notifier
	opts   Options
}

func NewService(repo repo.Repository, tokens *auth.Manager, logger *zerolog.Logger, ntf Notifier, opts Options) Service {
	return &service{
		repo:   repo,
		tokens: tokens,
		log:    logger,
		ntf:    ntf,
		opts:   opts,
	}
}

func (s *service) Health(ctx *ginext.Context) {
	ctx.JSON(200, dto.HealthResponse{
		Status:    "OK",
		Message:   "Campus Event Management API is running",
		Timestamp: time.Now(),
	})
}

// claimsFrom pulls the verified token claims set by the auth middleware.
// A missing value means the route was wired without RequireAuth.
func (s *service) claimsFrom(ctx *ginext.Context) (auth.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		s.log.Error().Str("path", ctx.FullPath()).Msg("no claims on authenticated route")
		dto.UnauthorizedError(ctx, "Access denied. No token provided.")
	}
	return claims, ok
}

func pathID(ctx *ginext.Context, msg string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		dto.BadRequestError(ctx, msg)
		return 0, false
	}
	return id, true
}
