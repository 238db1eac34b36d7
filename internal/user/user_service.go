package user

import (
	"context"
	"errors"
	"time"

	"github.com/sambizara/GRH-Back/internal/rbac"
	usererrors "github.com/sambizara/GRH-Back/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context, role string) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	ToggleStatus(ctx context.Context, id string, isActive bool) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	s.logger.Debug("create user requested",
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	if err := validateRolePayload(req.Role, req.Employee, req.Intern); err != nil {
		return UserResponse{}, err
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return UserResponse{}, usererrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create user hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      req.Role,
		Gender:    req.Gender,
		Address:   req.Address,
		Phone:     req.Phone,
		IsActive:  true,
	}
	if req.BirthDate != "" {
		d, err := parseUserDate(req.BirthDate)
		if err != nil {
			return UserResponse{}, err
		}
		u.BirthDate = &d
	}
	if req.Employee != nil {
		details, err := buildEmployeeDetails(u.ID, req.Employee)
		if err != nil {
			return UserResponse{}, err
		}
		u.Employee = details
	}
	if req.Intern != nil {
		details, err := buildInternDetails(u.ID, req.Intern)
		if err != nil {
			return UserResponse{}, err
		}
		u.Intern = details
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("create user success",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)
	return mapUserToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context, role string) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx, role)
	if err != nil {
		return nil, err
	}
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapUserToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapUserToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Gender != nil {
		u.Gender = *req.Gender
	}
	if req.Address != nil {
		u.Address = *req.Address
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		d, err := parseUserDate(*req.BirthDate)
		if err != nil {
			return UserResponse{}, err
		}
		u.BirthDate = &d
	}

	// Role payloads may only be updated for the matching role.
	if req.Employee != nil {
		if u.Role != rbac.RoleSalarie && u.Role != rbac.RoleAdminRH {
			return UserResponse{}, usererrors.ErrDetailsRoleMismatch
		}
		details, err := buildEmployeeDetails(u.ID, req.Employee)
		if err != nil {
			return UserResponse{}, err
		}
		if u.Employee != nil {
			details.ID = u.Employee.ID
		}
		u.Employee = details
	}
	if req.Intern != nil {
		if u.Role != rbac.RoleStagiaire {
			return UserResponse{}, usererrors.ErrDetailsRoleMismatch
		}
		details, err := buildInternDetails(u.ID, req.Intern)
		if err != nil {
			return UserResponse{}, err
		}
		if u.Intern != nil {
			details.ID = u.Intern.ID
		}
		u.Intern = details
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return UserResponse{}, err
	}

	s.logger.Info("update user success", zap.String("user_id", id))
	return mapUserToResponse(*u), nil
}

func (s *service) ToggleStatus(ctx context.Context, id string, isActive bool) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	u.IsActive = isActive
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("toggle user status failed",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("toggle user status success",
		zap.String("user_id", id),
		zap.Bool("is_active", isActive),
	)
	return nil
}

func validateRolePayload(role string, employee *EmployeeDetailsRequest, intern *InternDetailsRequest) error {
	switch role {
	case rbac.RoleSalarie:
		if employee == nil {
			return usererrors.ErrEmployeeDetailsRequired
		}
		if intern != nil {
			return usererrors.ErrDetailsRoleMismatch
		}
	case rbac.RoleStagiaire:
		if intern == nil {
			return usererrors.ErrInternDetailsRequired
		}
		if employee != nil {
			return usererrors.ErrDetailsRoleMismatch
		}
	case rbac.RoleAdminRH:
		if intern != nil {
			return usererrors.ErrDetailsRoleMismatch
		}
	}
	return nil
}

func buildEmployeeDetails(userID uuid.UUID, req *EmployeeDetailsRequest) (*EmployeeDetails, error) {
	details := &EmployeeDetails{
		UserID:        userID,
		StaffNumber:   req.StaffNumber,
		MaritalStatus: req.MaritalStatus,
		Children:      req.Children,
	}
	if req.HireDate != "" {
		d, err := parseUserDate(req.HireDate)
		if err != nil {
			return nil, err
		}
		details.HireDate = &d
	}
	return details, nil
}

func buildInternDetails(userID uuid.UUID, req *InternDetailsRequest) (*InternDetails, error) {
	details := &InternDetails{
		UserID: userID,
		School: req.School,
		Field:  req.Field,
		Level:  req.Level,
	}
	if req.InternshipStart != "" {
		d, err := parseUserDate(req.InternshipStart)
		if err != nil {
			return nil, err
		}
		details.InternshipStart = &d
	}
	if req.InternshipEnd != "" {
		d, err := parseUserDate(req.InternshipEnd)
		if err != nil {
			return nil, err
		}
		details.InternshipEnd = &d
	}
	if req.TutorID != nil {
		tutorUUID, err := uuid.Parse(*req.TutorID)
		if err != nil {
			return nil, usererrors.ErrInvalidUserID
		}
		details.TutorID = &tutorUUID
	}
	return details, nil
}

func parseUserDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, usererrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapUserToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Gender:    u.Gender,
		Address:   u.Address,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if u.BirthDate != nil {
		resp.BirthDate = u.BirthDate.Format("2006-01-02")
	}
	if u.Employee != nil {
		details := &EmployeeDetailsResponse{
			StaffNumber:   u.Employee.StaffNumber,
			MaritalStatus: u.Employee.MaritalStatus,
			Children:      u.Employee.Children,
		}
		if u.Employee.HireDate != nil {
			details.HireDate = u.Employee.HireDate.Format("2006-01-02")
		}
		resp.Employee = details
	}
	if u.Intern != nil {
		details := &InternDetailsResponse{
			School: u.Intern.School,
			Field:  u.Intern.Field,
			Level:  u.Intern.Level,
		}
		if u.Intern.InternshipStart != nil {
			details.InternshipStart = u.Intern.InternshipStart.Format("2006-01-02")
		}
		if u.Intern.InternshipEnd != nil {
			details.InternshipEnd = u.Intern.InternshipEnd.Format("2006-01-02")
		}
		if u.Intern.TutorID != nil {
			v := u.Intern.TutorID.String()
			details.TutorID = &v
		}
		resp.Intern = details
	}
	return resp
}
