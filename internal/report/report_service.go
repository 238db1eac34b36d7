package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sambizara/GRH-Back/internal/notification"
	reporterrors "github.com/sambizara/GRH-Back/internal/report/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateReportRequest) (ReportResponse, error)
	GetAll(ctx context.Context, status string) ([]ReportResponse, error)
	GetMine(ctx context.Context, userID string) ([]ReportResponse, error)
	GetByID(ctx context.Context, id string) (ReportResponse, error)
	Review(ctx context.Context, actorID, id string, req ReviewReportRequest) (ReportResponse, error)
}

type service struct {
	repo     Repository
	notifier notification.Service
	logger   *zap.Logger
}

func NewService(repo Repository, notifier notification.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, notifier: notifier, logger: l}
}

func (s *service) Create(ctx context.Context, userID string, req CreateReportRequest) (ReportResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return ReportResponse{}, reporterrors.ErrInvalidUserID
	}

	rep := &Report{
		ID:      uuid.New(),
		UserID:  userUUID,
		Title:   req.Title,
		Content: req.Content,
		Status:  StatusSubmitted,
	}
	if req.PeriodStart != nil {
		d, err := parseReportDate(*req.PeriodStart)
		if err != nil {
			return ReportResponse{}, err
		}
		rep.PeriodStart = &d
	}
	if req.PeriodEnd != nil {
		d, err := parseReportDate(*req.PeriodEnd)
		if err != nil {
			return ReportResponse{}, err
		}
		rep.PeriodEnd = &d
	}

	if err := s.repo.Create(ctx, rep); err != nil {
		s.logger.Error("create report persist failed", zap.Error(err))
		return ReportResponse{}, err
	}

	s.logger.Info("create report success",
		zap.String("report_id", rep.ID.String()),
		zap.String("user_id", userID),
	)
	return mapToResponse(*rep), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]ReportResponse, error) {
	reports, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(reports), nil
}

func (s *service) GetMine(ctx context.Context, userID string) ([]ReportResponse, error) {
	reports, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(reports), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ReportResponse, error) {
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReportResponse{}, reporterrors.ErrReportNotFound
		}
		return ReportResponse{}, err
	}
	return mapToResponse(*rep), nil
}

func (s *service) Review(ctx context.Context, actorID, id string, req ReviewReportRequest) (ReportResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ReportResponse{}, reporterrors.ErrInvalidUserID
	}

	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReportResponse{}, reporterrors.ErrReportNotFound
		}
		return ReportResponse{}, err
	}
	if rep.Status != StatusSubmitted {
		return ReportResponse{}, reporterrors.ErrAlreadyReviewed
	}

	rep.Status = req.Status
	rep.ReviewComment = req.Comment
	now := time.Now().UTC()
	rep.ReviewedBy = &actorUUID
	rep.ReviewedAt = &now

	if err := s.repo.Update(ctx, rep); err != nil {
		s.logger.Error("review report persist failed",
			zap.String("report_id", id),
			zap.Error(err),
		)
		return ReportResponse{}, err
	}

	if s.notifier != nil {
		message := fmt.Sprintf("Your report %q was %s.", rep.Title, strings.ToLower(rep.Status))
		s.notifier.Notify(ctx, rep.UserID.String(), notification.CategoryReport, "Report reviewed", message)
	}

	s.logger.Info("review report success",
		zap.String("report_id", id),
		zap.String("status", rep.Status),
	)
	return mapToResponse(*rep), nil
}

func parseReportDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, reporterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(rep Report) ReportResponse {
	resp := ReportResponse{
		ID:            rep.ID.String(),
		UserID:        rep.UserID.String(),
		Title:         rep.Title,
		Content:       rep.Content,
		Status:        rep.Status,
		ReviewComment: rep.ReviewComment,
		CreatedAt:     rep.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if rep.PeriodStart != nil {
		v := rep.PeriodStart.Format("2006-01-02")
		resp.PeriodStart = &v
	}
	if rep.PeriodEnd != nil {
		v := rep.PeriodEnd.Format("2006-01-02")
		resp.PeriodEnd = &v
	}
	if rep.ReviewedBy != nil {
		v := rep.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if rep.ReviewedAt != nil {
		v := rep.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(reports []Report) []ReportResponse {
	resp := make([]ReportResponse, len(reports))
	for i, rep := range reports {
		resp[i] = mapToResponse(rep)
	}
	return resp
}
