package service

import (
	"errors"

	"github.com/wb-go/wbf/ginext"

	"campusevents/internal/dto"
	"campusevents/internal/model"
	"campusevents/internal/repo"
)

func (s *service) GetAllStudents(ctx *ginext.Context) {
	students, err := s.repo.ListStudents(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list students")
		dto.InternalServerError(ctx)
		return
	}
	if students == nil {
		students = []model.Student{}
	}
	ctx.JSON(200, students)
}

func (s *service) GetStudent(ctx *ginext.Context) {
	id, ok := pathID(ctx, "Invalid student ID")
	if !ok {
		return
	}

	student, err := s.repo.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrStudentNotFound) {
			dto.StudentNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to load student")
		dto.InternalServerError(ctx)
		return
	}
	ctx.JSON(200, student)
}
