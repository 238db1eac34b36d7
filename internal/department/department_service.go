package department

import (
	"context"
	"errors"

	departmenterrors "github.com/sambizara/GRH-Back/internal/department/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return DepartmentResponse{}, departmenterrors.ErrNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return DepartmentResponse{}, err
	}

	dept := &Department{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if req.ResponsibleID != nil {
		respUUID, err := uuid.Parse(*req.ResponsibleID)
		if err != nil {
			return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
		}
		if ok, err := s.repo.UserExists(ctx, respUUID.String()); err != nil {
			return DepartmentResponse{}, err
		} else if !ok {
			return DepartmentResponse{}, departmenterrors.ErrResponsibleNotFound
		}
		dept.ResponsibleID = &respUUID
	}
	for _, title := range req.Positions {
		dept.Positions = append(dept.Positions, Position{
			ID:           uuid.New(),
			DepartmentID: dept.ID,
			Title:        title,
		})
	}

	if err := s.repo.Create(ctx, dept); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.logger.Info("create department success",
		zap.String("department_id", dept.ID.String()),
		zap.String("name", dept.Name),
	)
	return mapDepartmentToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		resp[i] = mapDepartmentToResponse(d)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}
	return mapDepartmentToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}

	if req.Name != nil && *req.Name != dept.Name {
		if _, err := s.repo.FindByName(ctx, *req.Name); err == nil {
			return DepartmentResponse{}, departmenterrors.ErrNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, err
		}
		dept.Name = *req.Name
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}
	if req.ResponsibleID != nil {
		respUUID, err := uuid.Parse(*req.ResponsibleID)
		if err != nil {
			return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
		}
		if ok, err := s.repo.UserExists(ctx, respUUID.String()); err != nil {
			return DepartmentResponse{}, err
		} else if !ok {
			return DepartmentResponse{}, departmenterrors.ErrResponsibleNotFound
		}
		dept.ResponsibleID = &respUUID
	}

	if req.Positions != nil {
		positions := make([]Position, 0, len(*req.Positions))
		for _, title := range *req.Positions {
			positions = append(positions, Position{
				ID:           uuid.New(),
				DepartmentID: dept.ID,
				Title:        title,
			})
		}
		if err := s.repo.ReplacePositions(ctx, id, positions); err != nil {
			return DepartmentResponse{}, err
		}
		dept.Positions = positions
	}

	if err := s.repo.Update(ctx, dept); err != nil {
		s.logger.Error("update department persist failed",
			zap.String("department_id", id),
			zap.Error(err),
		)
		return DepartmentResponse{}, err
	}

	s.logger.Info("update department success", zap.String("department_id", id))
	return mapDepartmentToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return departmenterrors.ErrDepartmentNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("delete department success", zap.String("department_id", id))
	return nil
}

func mapDepartmentToResponse(d Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Description: d.Description,
		Positions:   make([]string, 0, len(d.Positions)),
		CreatedAt:   d.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if d.ResponsibleID != nil {
		v := d.ResponsibleID.String()
		resp.ResponsibleID = &v
	}
	for _, p := range d.Positions {
		resp.Positions = append(resp.Positions, p.Title)
	}
	return resp
}
