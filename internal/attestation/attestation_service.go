package attestation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	attestationerrors "github.com/sambizara/GRH-Back/internal/attestation/errors"
	"github.com/sambizara/GRH-Back/internal/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attestation_service.go -destination=mock/attestation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateAttestationRequest) (AttestationResponse, error)
	GetAll(ctx context.Context, status string) ([]AttestationResponse, error)
	GetMine(ctx context.Context, userID string) ([]AttestationResponse, error)
	GetByID(ctx context.Context, id string) (AttestationResponse, error)
	Decide(ctx context.Context, actorID, id string, req DecideAttestationRequest) (AttestationResponse, error)
}

type service struct {
	repo     Repository
	notifier notification.Service
	logger   *zap.Logger
}

func NewService(repo Repository, notifier notification.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("attestation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attestation.service")
	}
	return &service{repo: repo, notifier: notifier, logger: l}
}

func (s *service) Create(ctx context.Context, userID string, req CreateAttestationRequest) (AttestationResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return AttestationResponse{}, attestationerrors.ErrInvalidUserID
	}

	a := &Attestation{
		ID:     uuid.New(),
		UserID: userUUID,
		Type:   req.Type,
		Reason: req.Reason,
		Status: StatusPending,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("create attestation persist failed", zap.Error(err))
		return AttestationResponse{}, err
	}

	s.logger.Info("create attestation success",
		zap.String("attestation_id", a.ID.String()),
		zap.String("user_id", userID),
		zap.String("type", a.Type),
	)
	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]AttestationResponse, error) {
	attestations, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(attestations), nil
}

func (s *service) GetMine(ctx context.Context, userID string) ([]AttestationResponse, error) {
	attestations, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(attestations), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AttestationResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttestationResponse{}, attestationerrors.ErrAttestationNotFound
		}
		return AttestationResponse{}, err
	}
	return mapToResponse(*a), nil
}

// Decide settles a pending attestation. Approval requires the certificate
// content; a decided attestation cannot be decided again.
func (s *service) Decide(ctx context.Context, actorID, id string, req DecideAttestationRequest) (AttestationResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return AttestationResponse{}, attestationerrors.ErrInvalidUserID
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttestationResponse{}, attestationerrors.ErrAttestationNotFound
		}
		return AttestationResponse{}, err
	}
	if a.Status != StatusPending {
		return AttestationResponse{}, attestationerrors.ErrAlreadyDecided
	}
	if req.Status == StatusApproved && (req.Content == nil || strings.TrimSpace(*req.Content) == "") {
		return AttestationResponse{}, attestationerrors.ErrContentRequired
	}

	a.Status = req.Status
	if req.Status == StatusApproved {
		a.Content = req.Content
	}
	now := time.Now().UTC()
	a.DecidedBy = &actorUUID
	a.DecidedAt = &now

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("decide attestation persist failed",
			zap.String("attestation_id", id),
			zap.Error(err),
		)
		return AttestationResponse{}, err
	}

	if s.notifier != nil {
		title := "Attestation request decided"
		message := fmt.Sprintf("Your %s attestation request was %s.",
			strings.ToLower(a.Type), strings.ToLower(a.Status))
		s.notifier.Notify(ctx, a.UserID.String(), notification.CategoryAttestation, title, message)
	}

	s.logger.Info("decide attestation success",
		zap.String("attestation_id", id),
		zap.String("status", a.Status),
	)
	return mapToResponse(*a), nil
}

func mapToResponse(a Attestation) AttestationResponse {
	resp := AttestationResponse{
		ID:        a.ID.String(),
		UserID:    a.UserID.String(),
		Type:      a.Type,
		Reason:    a.Reason,
		Status:    a.Status,
		Content:   a.Content,
		CreatedAt: a.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if a.DecidedBy != nil {
		v := a.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if a.DecidedAt != nil {
		v := a.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(attestations []Attestation) []AttestationResponse {
	resp := make([]AttestationResponse, len(attestations))
	for i, a := range attestations {
		resp[i] = mapToResponse(a)
	}
	return resp
}
