package service

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/wb-go/wbf/ginext"

	"campusevents/internal/dto"
	"campusevents/internal/model"
	"campusevents/internal/repo"
)

func (s *service) SubmitFeedback(ctx *ginext.Context) {
	claims, ok := s.claimsFrom(ctx)
	if !ok {
		return
	}
	eventID, ok := pathID(ctx, "Invalid event ID")
	if !ok {
		return
	}

	var req dto.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		dto.BadRequestError(ctx, "Rating must be between 1 and 5")
		return
	}
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		dto.BadRequestError(ctx, "Comment is required")
		return
	}

	registered, err := s.repo.HasRegistration(ctx, claims.UserID, eventID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to check registration")
		dto.InternalServerError(ctx)
		return
	}
	if !registered {
		dto.ForbiddenError(ctx, "You can only provide feedback for events you registered for")
		return
	}

	if s.opts.RequireAttendanceForFeedback {
		attended, err := s.repo.HasPresentAttendance(ctx, claims.UserID, eventID)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to check attendance")
			dto.InternalServerError(ctx)
			return
		}
		if !attended {
			dto.ForbiddenError(ctx, "Can only provide feedback for attended events")
			return
		}
	}

	feedback := &model.Feedback{
		StudentID: claims.UserID,
		EventID:   eventID,
		Rating:    req.Rating,
		Comment:   comment,
	}

	id, updated, err := s.repo.UpsertFeedback(ctx, feedback)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to save feedback")
		dto.InternalServerError(ctx)
		return
	}

	resp := dto.FeedbackSavedResponse{FeedbackID: id, Rating: req.Rating, Comment: comment}
	if updated {
		resp.Message = "Feedback updated successfully"
		ctx.JSON(200, resp)
		return
	}
	resp.Message = "Feedback submitted successfully"
	ctx.JSON(201, resp)
}

func (s *service) GetEventFeedback(ctx *ginext.Context) {
	eventID, ok := pathID(ctx, "Invalid event ID")
	if !ok {
		return
	}

	feedback, err := s.repo.ListFeedbackForEvent(ctx, eventID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list feedback")
		dto.InternalServerError(ctx)
		return
	}
	if feedback == nil {
		feedback = []model.EventFeedback{}
	}

	summary := dto.FeedbackSummary{
		TotalFeedback:      len(feedback),
		RatingDistribution: map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
	}
	sum := 0
	for _, f := range feedback {
		sum += f.Rating
		summary.RatingDistribution[strconv.Itoa(f.Rating)]++
	}
	if len(feedback) > 0 {
		summary.AverageRating = math.Round(float64(sum)/float64(len(feedback))*10) / 10
	}

	ctx.JSON(200, dto.EventFeedbackResponse{Feedback: feedback, Summary: summary})
}

func (s *service) GetMyEventFeedback(ctx *ginext.Context) {
	claims, ok := s.claimsFrom(ctx)
	if !ok {
		return
	}
	eventID, ok := pathID(ctx, "Invalid event ID")
	if !ok {
		return
	}

	feedback, err := s.repo.GetFeedback(ctx, claims.UserID, eventID)
	if err != nil {
		if errors.Is(err, repo.ErrFeedbackNotFound) {
			dto.NotFoundError(ctx, "No feedback found")
			return
		}
		s.log.Error().Err(err).Msg("failed to load feedback")
		dto.InternalServerError(ctx)
		return
	}
	ctx.JSON(200, feedback)
}

func (s *service) GetMyFeedback(ctx *ginext.Context) {
	claims, ok := s.claimsFrom(ctx)
	if !ok {
		return
	}

	feedback, err := s.repo.ListFeedbackForStudent(ctx, claims.UserID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list feedback")
		dto.InternalServerError(ctx)
		return
	}
	if feedback == nil {
		feedback = []model.StudentFeedback{}
	}
	ctx.JSON(200, feedback)
}
