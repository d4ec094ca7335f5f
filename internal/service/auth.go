package service

import (
	"errors"
	"fmt"

	"github.com/wb-go/wbf/ginext"
	"golang.org/x/crypto/bcrypt"

	"campusevents/internal/auth"
	"campusevents/internal/dto"
	"campusevents/internal/model"
	"campusevents/internal/repo"
	"campusevents/pkg/validator"
)

func (s *service) StudentSignup(ctx *ginext.Context) {
	var req dto.StudentSignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	exists, err := s.repo.StudentExists(ctx, req.Email, req.StudentID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to check student existence")
		dto.InternalServerError(ctx)
		return
	}
	if exists {
		dto.BadRequestError(ctx, "Student with this email or student ID already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to hash password")
		dto.InternalServerError(ctx)
		return
	}

	student := &model.Student{
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hash),
		StudentID:  req.StudentID,
		University: req.University,
		Department: req.Department,
		Year:       req.Year,
		IsActive:   true,
	}
	if req.Phone != "" {
		student.Phone = &req.Phone
	}

	id, err := s.repo.CreateStudent(ctx, student)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateAccount) {
			dto.BadRequestError(ctx, "Student with this email or student ID already exists")
			return
		}
		s.log.Error().Err(err).Msg("failed to create student")
		dto.InternalServerError(ctx)
		return
	}

	token, err := s.tokens.Issue(id, req.Email, auth.KindStudent)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to issue token")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("student_id", id).Str("email", req.Email).Msg("student registered")

	ctx.JSON(201, dto.AuthResponse{
		Message: "Student registered successfully",
		Token:   token,
		User:    studentProfile(id, student),
	})
}

func (s *service) StudentLogin(ctx *ginext.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}
	if req.Email == "" || req.Password == "" {
		dto.BadRequestError(ctx, "Email and password are required")
		return
	}

	student, err := s.repo.GetStudentByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrStudentNotFound) {
			dto.InvalidCredentialsError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to load student")
		dto.InternalServerError(ctx)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(req.Password)) != nil {
		dto.InvalidCredentialsError(ctx)
		return
	}

	token, err := s.tokens.Issue(student.ID, student.Email, auth.KindStudent)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to issue token")
		dto.InternalServerError(ctx)
		return
	}

	ctx.JSON(200, dto.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    studentProfile(student.ID, student),
	})
}

func (s *service) AdminSignup(ctx *ginext.Context) {
	var req dto.AdminSignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	exists, err := s.repo.AdminExists(ctx, req.Email, req.Username)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to check admin existence")
		dto.InternalServerError(ctx)
		return
	}
	if exists {
		dto.BadRequestError(ctx, "Admin with this email or username already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to hash password")
		dto.InternalServerError(ctx)
		return
	}

	admin := &model.Admin{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		FullName: req.FullName,
		Role:     "admin",
		IsActive: true,
	}

	id, err := s.repo.CreateAdmin(ctx, admin)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateAccount) {
			dto.BadRequestError(ctx, "Admin with this email or username already exists")
			return
		}
		s.log.Error().Err(err).Msg("failed to create admin")
		dto.InternalServerError(ctx)
		return
	}

	token, err := s.tokens.Issue(id, req.Email, auth.KindAdmin)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to issue token")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("admin_id", id).Str("email", req.Email).Msg("admin registered")

	ctx.JSON(201, dto.AuthResponse{
		Message: "Admin registered successfully",
		Token:   token,
		User:    adminProfile(id, admin),
	})
}

func (s *service) AdminLogin(ctx *ginext.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, "Invalid JSON format")
		return
	}
	if req.Email == "" || req.Password == "" {
		dto.BadRequestError(ctx, "Email and password are required")
		return
	}

	admin, err := s.repo.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrAdminNotFound) {
			dto.InvalidCredentialsError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to load admin")
		dto.InternalServerError(ctx)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
		dto.InvalidCredentialsError(ctx)
		return
	}

	token, err := s.tokens.Issue(admin.ID, admin.Email, auth.KindAdmin)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to issue token")
		dto.InternalServerError(ctx)
		return
	}

	ctx.JSON(200, dto.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    adminProfile(admin.ID, admin),
	})
}

func studentProfile(id int64, s *model.Student) dto.StudentProfile {
	return dto.StudentProfile{
		ID:         id,
		Name:       s.Name,
		Email:      s.Email,
		StudentID:  s.StudentID,
		University: s.University,
		Department: s.Department,
		Year:       s.Year,
		Type:       auth.KindStudent,
	}
}

func adminProfile(id int64, a *model.Admin) dto.AdminProfile {
	return dto.AdminProfile{
		ID:       id,
		Username: a.Username,
		Email:    a.Email,
		FullName: a.FullName,
		Type:     auth.KindAdmin,
	}
}
