package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/sambizara/GRH-Back/internal/events"
	leaveerrors "github.com/sambizara/GRH-Back/internal/leave/errors"
	"github.com/sambizara/GRH-Back/internal/leavebalance"
	"github.com/sambizara/GRH-Back/internal/messaging/kafka"
	"github.com/sambizara/GRH-Back/internal/rbac"
	"github.com/sambizara/GRH-Back/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetMine(ctx context.Context, userID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	SetStatus(ctx context.Context, actorID, id, newStatus string) (LeaveResponse, error)
	Delete(ctx context.Context, id, requesterID, requesterRole string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	ledger leavebalance.Ledger
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, ledger leavebalance.Ledger, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, ledger, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	ledger leavebalance.Ledger,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, ledger: ledger, outbox: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, userID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("user_id", userID),
		zap.String("category", req.Category),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidUserID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	// Strict order: a leave covers at least two calendar days under the
	// inclusive count.
	if !endDate.After(startDate) {
		s.logger.Warn("create leave invalid date range",
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	l := &LeaveRequest{
		ID:        uuid.New(),
		UserID:    userUUID,
		Category:  req.Category,
		StartDate: startDate,
		EndDate:   endDate,
		TotalDays: leavebalance.InclusiveLeaveDays(startDate, endDate),
		Reason:    req.Reason,
		Status:    StatusPending,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", userID),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	requests, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetMine(ctx context.Context, userID string) ([]LeaveResponse, error) {
	requests, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

// SetStatus reconciles the ledger against the status transition:
//
//	to APPROVED from anything else -> debit (idempotent on the request id)
//	from APPROVED to anything else -> refund
//	same status twice              -> no ledger effect
//
// The new status itself is always persisted.
func (s *service) SetStatus(ctx context.Context, actorID, id, newStatus string) (LeaveResponse, error) {
	s.logger.Debug("set leave status requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", newStatus),
	)

	if newStatus != StatusApproved && newStatus != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ledgerTx := s.ledger.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	previous := l.Status

	if newStatus == StatusApproved && previous != StatusApproved {
		err = ledgerTx.RecordConsumption(ctx, l.UserID.String(), leavebalance.ConsumptionSource{
			RequestID: l.ID,
			Category:  l.Category,
			StartDate: l.StartDate,
			EndDate:   l.EndDate,
		})
		if err != nil {
			s.logger.Error("set leave status record consumption failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}
	if newStatus != StatusApproved && previous == StatusApproved {
		if err := ledgerTx.ReverseConsumption(ctx, l.UserID.String(), l.ID.String()); err != nil {
			s.logger.Error("set leave status reverse consumption failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	l.Status = newStatus
	now := time.Now().UTC()
	l.DecidedBy = &actorUUID
	l.DecidedAt = &now

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("set leave status persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if previous != newStatus {
		if err := s.enqueueDecisionEvent(ctx, tx, l); err != nil {
			s.logger.Error("set leave status enqueue event failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("set leave status commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	s.logger.Info("set leave status success",
		zap.String("leave_id", id),
		zap.String("from_status", previous),
		zap.String("to_status", newStatus),
	)
	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, id, requesterID, requesterRole string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	ledgerTx := s.ledger.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}

	isAdmin := requesterRole == rbac.RoleAdminRH
	if !isAdmin {
		if l.UserID.String() != requesterID {
			return leaveerrors.ErrDeleteForbidden
		}
		if l.Status == StatusApproved {
			return leaveerrors.ErrOwnerDeleteApproved
		}
	}

	// Refund before the record disappears; the reversal is a no-op when
	// nothing was consumed.
	if l.Status == StatusApproved {
		if err := ledgerTx.ReverseConsumption(ctx, l.UserID.String(), l.ID.String()); err != nil {
			return err
		}
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete leave success",
		zap.String("leave_id", id),
		zap.String("requester_id", requesterID),
		zap.Bool("was_approved", l.Status == StatusApproved),
	)
	return nil
}

func (s *service) enqueueDecisionEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveDecisionEvent{
		EventType:  "leave.decision",
		LeaveID:    l.ID.String(),
		UserID:     l.UserID.String(),
		Category:   l.Category,
		Status:     l.Status,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		DaysTaken:  l.TotalDays,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveDecisionTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:        l.ID.String(),
		UserID:    l.UserID.String(),
		Category:  l.Category,
		StartDate: l.StartDate.Format("2006-01-02"),
		EndDate:   l.EndDate.Format("2006-01-02"),
		TotalDays: l.TotalDays,
		Reason:    l.Reason,
		Status:    l.Status,
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
