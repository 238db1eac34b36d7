package notification

import (
	"context"
	"errors"
	"time"

	notificationerrors "github.com/sambizara/GRH-Back/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	// Notify is fire-and-forget: failures are logged, never returned.
	Notify(ctx context.Context, userID, category, title, message string)
	Record(ctx context.Context, n *Notification) error
	GetMine(ctx context.Context, userID string) ([]NotificationResponse, int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Notify(ctx context.Context, userID, category, title, message string) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		s.logger.Warn("notify skipped, invalid user id", zap.String("user_id", userID))
		return
	}

	n := &Notification{
		ID:       uuid.New(),
		UserID:   uid,
		Type:     TypeInfo,
		Category: category,
		Title:    title,
		Message:  message,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("notify persist failed",
			zap.String("user_id", userID),
			zap.String("category", category),
			zap.Error(err),
		)
	}
}

func (s *service) Record(ctx context.Context, n *Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, n)
}

func (s *service) GetMine(ctx context.Context, userID string) ([]NotificationResponse, int64, error) {
	notifications, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = mapToResponse(n)
	}
	return resp, unread, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	if err := s.repo.MarkRead(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notificationerrors.ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Type:      n.Type,
		Category:  n.Category,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.RelatedEntity != nil {
		v := n.RelatedEntity.String()
		resp.RelatedEntity = &v
	}
	return resp
}
