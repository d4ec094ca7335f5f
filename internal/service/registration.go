package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/wb-go/wbf/ginext"

	"campusevents/internal/auth"
	"campusevents/internal/dto"
	"campusevents/internal/model"
	"campusevents/internal/repo"
)

func (s *service) RegisterForEvent(ctx *ginext.Context) {
	claims, ok := s.claimsFrom(ctx)
	if !ok {
		return
	}
	eventID, ok := pathID(ctx, "Invalid event ID")
	if !ok {
		return
	}

	regID, err := s.repo.RegisterTx(ctx.Request.Context(), claims.UserID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrEventNotFound):
			dto.EventNotFoundError(ctx)
		case errors.Is(err, repo.ErrDuplicateRegistration):
			dto.RegistrationDuplicateError(ctx)
		case errors.Is(err, repo.ErrEventFull):
			dto.EventFullError(ctx)
		default:
			s.log.Error().Err(err).Msg("failed to register for event")
			dto.InternalServerError(ctx)
		}
		return
	}

	s.log.Info().
		Int64("registration_id", regID).
		Int64("event_id", eventID).
		Int64("student_id", claims.UserID).
		Msg("registration created")

	s.notifyRegistration("registered", regID, eventID, claims)

	ctx.JSON(201, dto.RegistrationCreatedResponse{
		Message:        "Successfully registered for event",
		RegistrationID: regID,
		EventID:        eventID,
		StudentID:      claims.UserID,
	})
}

func (s *service) UnregisterFromEvent(ctx *ginext.Context) {
	claims, ok := s.claimsFrom(ctx)
	if !ok {
		return
	}
	eventID, ok := pathID(ctx, "Invalid event ID")
	if !ok {
		return
	}

	if err := s.repo.Unregister(ctx, claims.UserID, eventID); err != nil {
		if errors.Is(err, repo.ErrRegistrationNotFound) {
			dto.NotFoundError(ctx, "You are not registered for this event")
			return
		}
		s.log.Error().Err(err).Msg("failed to unregister from event")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().
		Int64("event_id", eventID).
		Int64("student_id", claims.UserID).
		Msg("registration removed")

	s.notifyRegistration("unregistered", 0, eventID, claims)

	ctx.JSON(200, dto.UnregisterResponse{
		Message:   "Successfully unregistered from event",
		EventID:   eventID,
		StudentID: claims.UserID,
	})
}

func (s *service) GetMyRegistrations(ctx *ginext.Context) {
	claims, ok := s.claimsFrom(ctx)
	if !ok {
		return
	}

	regs, err := s.repo.ListRegistrationsForStudent(ctx, claims.UserID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list registrations")
		dto.InternalServerError(ctx)
		return
	}
	if regs == nil {
		regs = []model.StudentRegistration{}
	}
	ctx.JSON(200, regs)
}

func (s *service) GetEventRegistrations(ctx *ginext.Context) {
	eventID, ok := pathID(ctx, "Invalid event ID")
	if !ok {
		return
	}

	regs, err := s.repo.ListRegistrantsForEvent(ctx, eventID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list registrants")
		dto.InternalServerError(ctx)
		return
	}
	if regs == nil {
		regs = []model.EventRegistrant{}
	}
	ctx.JSON(200, regs)
}

// notifyRegistration publishes a lifecycle message for the mail worker.
// Failures are logged and never surfaced to the caller.
func (s *service) notifyRegistration(action string, regID, eventID int64, claims auth.Claims) {
	if s.ntf == nil {
		return
	}

	msg := dto.RegistrationEventMessage{
		Action:         action,
		RegistrationID: regID,
		EventID:        eventID,
		StudentID:      claims.UserID,
		Email:          claims.Email,
	}
	if event, err := s.repo.GetEventByID(context.Background(), eventID); err == nil {
		msg.EventTitle = event.Title
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal registration message")
		return
	}
	if err := s.ntf.Publish(payload, 0); err != nil {
		s.log.Warn().Err(err).Msg("failed to publish registration message")
	}
}
