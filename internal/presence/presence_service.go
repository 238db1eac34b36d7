package presence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	presenceerrors "github.com/sambizara/GRH-Back/internal/presence/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Check-ins after this time of day are flagged LATE.
const (
	lateHour   = 9
	lateMinute = 15
)

//go:generate mockgen -source=presence_service.go -destination=mock/presence_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, userID string, req CheckInRequest) (PresenceResponse, error)
	CheckOut(ctx context.Context, userID string, req CheckOutRequest) (PresenceResponse, error)
	GetAll(ctx context.Context, from, to *time.Time) ([]PresenceResponse, error)
	GetMine(ctx context.Context, userID string) ([]PresenceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("presence.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("presence.service")
	}
	return &service{db: db, repo: repo, logger: l, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) CheckIn(ctx context.Context, userID string, req CheckInRequest) (PresenceResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return PresenceResponse{}, presenceerrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PresenceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := now.Truncate(24 * time.Hour)

	if _, err := qtx.FindByUserAndDate(ctx, userID, today); err == nil {
		return PresenceResponse{}, presenceerrors.ErrAlreadyCheckedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return PresenceResponse{}, err
	}

	status := StatusPresent
	if now.Hour() > lateHour || (now.Hour() == lateHour && now.Minute() > lateMinute) {
		status = StatusLate
	}

	p := &Presence{
		ID:           uuid.New(),
		UserID:       userUUID,
		PresenceDate: today,
		CheckIn:      now,
		Status:       status,
		Notes:        req.Notes,
	}
	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("check-in persist failed", zap.Error(err))
		return PresenceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PresenceResponse{}, err
	}

	s.logger.Info("check-in success",
		zap.String("user_id", userID),
		zap.String("status", status),
	)
	return mapToResponse(*p), nil
}

func (s *service) CheckOut(ctx context.Context, userID string, req CheckOutRequest) (PresenceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return PresenceResponse{}, presenceerrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PresenceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()
	today := now.Truncate(24 * time.Hour)

	p, err := qtx.FindByUserAndDate(ctx, userID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PresenceResponse{}, presenceerrors.ErrNotCheckedIn
		}
		return PresenceResponse{}, err
	}
	if p.CheckOut != nil {
		return PresenceResponse{}, presenceerrors.ErrAlreadyCheckedOut
	}

	p.CheckOut = &now
	if req.Notes != nil {
		p.Notes = req.Notes
	}
	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("check-out persist failed", zap.Error(err))
		return PresenceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PresenceResponse{}, err
	}

	s.logger.Info("check-out success", zap.String("user_id", userID))
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, from, to *time.Time) ([]PresenceResponse, error) {
	rows, err := s.repo.FindAll(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetMine(ctx context.Context, userID string) ([]PresenceResponse, error) {
	rows, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func mapToResponse(p Presence) PresenceResponse {
	resp := PresenceResponse{
		ID:           p.ID.String(),
		UserID:       p.UserID.String(),
		PresenceDate: p.PresenceDate.Format("2006-01-02"),
		CheckIn:      p.CheckIn.Format(time.RFC3339),
		Status:       p.Status,
		Notes:        p.Notes,
	}
	if p.CheckOut != nil {
		v := p.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}

func mapToListResponse(rows []Presence) []PresenceResponse {
	resp := make([]PresenceResponse, len(rows))
	for i, p := range rows {
		resp[i] = mapToResponse(p)
	}
	return resp
}
