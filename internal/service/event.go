package service

import (
	"errors"
	"fmt"

	"github.com/wb-go/wbf/ginext"

	"campusevents/internal/dto"
	"campusevents/internal/model"
	"campusevents/internal/repo"
	"campusevents/pkg/validator"
)

func (s *service) CreateEvent(ctx *ginext.Context) {
	var req dto.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	event := &model.Event{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
	}

	if _, err := s.repo.CreateEvent(ctx, event); err != nil {
		s.log.Error().Err(err).Msg("failed to create event")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("event_id", event.ID).Str("title", event.Title).Msg("event created")
	ctx.JSON(201, event)
}

func (s *service) GetAllEvents(ctx *ginext.Context) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list events")
		dto.InternalServerError(ctx)
		return
	}
	if events == nil {
		events = []model.EventWithCount{}
	}
	ctx.JSON(200, events)
}

func (s *service) GetEvent(ctx *ginext.Context) {
	id, ok := pathID(ctx, "Invalid event ID")
	if !ok {
		return
	}

	event, err := s.repo.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to load event")
		dto.InternalServerError(ctx)
		return
	}
	ctx.JSON(200, event)
}

func (s *service) UpdateEvent(ctx *ginext.Context) {
	id, ok := pathID(ctx, "Invalid event ID")
	if !ok {
		return
	}

	var req dto.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}
	if req.Title == "" || req.Date == "" || req.Time == "" || req.Location == "" || req.MaxParticipants <= 0 {
		dto.BadRequestError(ctx, "Missing required fields: title, date, time, location, max_participants")
		return
	}

	event := &model.Event{
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to update event")
		dto.InternalServerError(ctx)
		return
	}
	ctx.JSON(200, event)
}

func (s *service) DeleteEvent(ctx *ginext.Context) {
	id, ok := pathID(ctx, "Invalid event ID")
	if !ok {
		return
	}

	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to delete event")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("event_id", id).Msg("event deleted")
	ctx.JSON(200, dto.MessageResponse{Message: "Event deleted successfully"})
}
