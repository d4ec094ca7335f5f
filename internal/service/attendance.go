package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/wb-go/wbf/ginext"

	"campusevents/internal/dto"
	"campusevents/internal/model"
	"campusevents/internal/repo"
)

func (s *service) GetEventAttendance(ctx *ginext.Context) {
	eventID, ok := pathID(ctx, "Invalid event ID")
	if !ok {
		return
	}

	sheet, err := s.repo.AttendanceSheet(ctx, eventID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load attendance sheet")
		dto.InternalServerError(ctx)
		return
	}
	if sheet == nil {
		sheet = []model.AttendanceRow{}
	}

	stats := dto.AttendanceStatistics{TotalRegistered: len(sheet)}
	for _, row := range sheet {
		switch row.Status {
		case model.AttendancePresent:
			stats.Present++
		case model.AttendanceAbsent:
			stats.Absent++
		default:
			stats.NotMarked++
		}
	}
	if stats.TotalRegistered > 0 {
		stats.AttendancePercentage = int(math.Round(float64(stats.Present) * 100 / float64(stats.TotalRegistered)))
	}

	ctx.JSON(200, dto.AttendanceSheetResponse{Students: sheet, Statistics: stats})
}

func (s *service) MarkEventAttendance(ctx *ginext.Context) {
	eventID, ok := pathID(ctx, "Invalid event ID")
	if !ok {
		return
	}

	var req dto.AttendanceBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}
	if req.AttendanceRecords == nil {
		dto.BadRequestError(ctx, "Attendance records array is required")
		return
	}

	for _, rec := range req.AttendanceRecords {
		if rec.StudentID == 0 || rec.Status == "" {
			dto.BadRequestError(ctx, "Each record must have student_id and status")
			return
		}
		if rec.Status != model.AttendancePresent && rec.Status != model.AttendanceAbsent {
			dto.BadRequestError(ctx, "Status must be present or absent")
			return
		}
	}

	if len(req.AttendanceRecords) == 0 {
		ctx.JSON(200, dto.MessageResponse{Message: "No attendance records to update"})
		return
	}

	count, err := s.repo.MarkBatchTx(ctx.Request.Context(), eventID, req.AttendanceRecords)
	if err != nil {
		var nrErr *repo.NotRegisteredError
		if errors.As(err, &nrErr) {
			dto.BadRequestError(ctx, fmt.Sprintf("Student %d is not registered for this event", nrErr.StudentID))
			return
		}
		s.log.Error().Err(err).Msg("failed to mark attendance")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("event_id", eventID).Int("count", count).Msg("attendance marked")

	ctx.JSON(200, dto.AttendanceMarkedResponse{
		Message:      "Attendance marked successfully for all students",
		UpdatedCount: count,
	})
}
