package service

import (
	"errors"
	"strconv"

	"github.com/wb-go/wbf/ginext"

	"campusevents/internal/dto"
	"campusevents/internal/model"
	"campusevents/internal/repo"
)

const defaultTopStudents = 3

func (s *service) EventPopularityReport(ctx *ginext.Context) {
	report, err := s.repo.EventPopularity(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to build popularity report")
		dto.InternalServerError(ctx)
		return
	}
	if report == nil {
		report = []model.EventPopularity{}
	}
	ctx.JSON(200, report)
}

func (s *service) StudentParticipationReport(ctx *ginext.Context) {
	studentID, ok := pathID(ctx, "Invalid student ID")
	if !ok {
		return
	}

	report, err := s.repo.StudentParticipation(ctx, studentID)
	if err != nil {
		if errors.Is(err, repo.ErrStudentNotFound) {
			dto.StudentNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to build participation report")
		dto.InternalServerError(ctx)
		return
	}
	ctx.JSON(200, report)
}

func (s *service) TopStudentsReport(ctx *ginext.Context) {
	limit := defaultTopStudents
	if raw := ctx.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	report, err := s.repo.TopStudents(ctx, limit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to build top students report")
		dto.InternalServerError(ctx)
		return
	}
	if report == nil {
		report = []model.StudentParticipation{}
	}
	ctx.JSON(200, report)
}

func (s *service) EventReport(ctx *ginext.Context) {
	eventID, ok := pathID(ctx, "Invalid event ID")
	if !ok {
		return
	}

	summary, err := s.repo.EventReportSummary(ctx, eventID)
	if err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to build event report")
		dto.InternalServerError(ctx)
		return
	}

	participants, err := s.repo.EventParticipants(ctx, eventID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load participants")
		dto.InternalServerError(ctx)
		return
	}
	if participants == nil {
		participants = []model.EventParticipant{}
	}

	ctx.JSON(200, dto.EventReportResponse{Event: summary, Participants: participants})
}

func (s *service) DashboardStats(ctx *ginext.Context) {
	stats, err := s.repo.DashboardStats(ctx, ctx.Query("university"))
	if err != nil {
		s.log.Error().Err(err).Msg("failed to build dashboard stats")
		dto.InternalServerError(ctx)
		return
	}
	if stats.RecentEvents == nil {
		stats.RecentEvents = []model.EventWithCount{}
	}
	ctx.JSON(200, stats)
}
