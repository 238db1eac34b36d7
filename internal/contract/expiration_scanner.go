package contract

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/sambizara/GRH-Back/internal/events"
	"github.com/sambizara/GRH-Back/internal/messaging/kafka"
	"github.com/sambizara/GRH-Back/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const expiryHorizonDays = 30

//go:generate mockgen -source=expiration_scanner.go -destination=mock/expiration_scanner_mock.go -package=mock
type ExpirationScanner interface {
	ClassifyExpiring(ctx context.Context, today time.Time) (ExpiringContracts, error)
	Stats(ctx context.Context, today time.Time) (ExpirationStats, error)
	CheckAndNotify(ctx context.Context, today time.Time) (ExpiringContracts, error)
}

type expirationScanner struct {
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewExpirationScanner(repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) ExpirationScanner {
	l := zap.L().Named("contract.scanner")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("contract.scanner")
	}
	return &expirationScanner{repo: repo, outbox: outboxRepo, logger: l}
}

// ClassifyExpiring buckets active contracts ending within the 30-day
// horizon. Buckets are exclusive, the smallest wins, and each is sorted by
// days remaining.
func (s *expirationScanner) ClassifyExpiring(ctx context.Context, today time.Time) (ExpiringContracts, error) {
	horizon := today.AddDate(0, 0, expiryHorizonDays)
	contracts, err := s.repo.FindExpiringBetween(ctx, today, horizon)
	if err != nil {
		s.logger.Error("expiry scan query failed", zap.Error(err))
		return ExpiringContracts{}, err
	}

	var result ExpiringContracts
	for _, c := range contracts {
		if c.EndDate == nil {
			continue
		}
		days := DaysUntilExpiry(today, *c.EndDate)
		if days < 0 || days > expiryHorizonDays {
			continue
		}
		hit := ExpiringContract{
			ContractID:    c.ID.String(),
			UserID:        c.UserID.String(),
			Type:          c.Type,
			Position:      c.Position,
			Salary:        c.Salary,
			DepartmentID:  c.DepartmentID.String(),
			StartDate:     c.StartDate.Format("2006-01-02"),
			EndDate:       c.EndDate.Format("2006-01-02"),
			DaysRemaining: days,
		}
		switch {
		case days <= 7:
			result.Within7 = append(result.Within7, hit)
		case days <= 15:
			result.Within15 = append(result.Within15, hit)
		default:
			result.Within30 = append(result.Within30, hit)
		}
	}

	sortByDaysRemaining(result.Within7)
	sortByDaysRemaining(result.Within15)
	sortByDaysRemaining(result.Within30)
	return result, nil
}

func (s *expirationScanner) Stats(ctx context.Context, today time.Time) (ExpirationStats, error) {
	buckets, err := s.ClassifyExpiring(ctx, today)
	if err != nil {
		return ExpirationStats{}, err
	}
	stats := ExpirationStats{
		Within7:  len(buckets.Within7),
		Within15: len(buckets.Within15),
		Within30: len(buckets.Within30),
	}
	stats.Total = stats.Within7 + stats.Within15 + stats.Within30
	return stats, nil
}

// CheckAndNotify runs the scan and enqueues one expiry event per hit. The
// scan result is returned even when enqueueing fails for some contracts;
// those failures are logged only.
func (s *expirationScanner) CheckAndNotify(ctx context.Context, today time.Time) (ExpiringContracts, error) {
	buckets, err := s.ClassifyExpiring(ctx, today)
	if err != nil {
		return ExpiringContracts{}, err
	}

	if s.outbox == nil {
		return buckets, nil
	}

	s.enqueueExpiryEvents(ctx, buckets.Within7, events.UrgencyUrgent)
	s.enqueueExpiryEvents(ctx, buckets.Within15, events.UrgencyWarning)
	s.enqueueExpiryEvents(ctx, buckets.Within30, events.UrgencyInfo)
	return buckets, nil
}

func (s *expirationScanner) enqueueExpiryEvents(ctx context.Context, hits []ExpiringContract, urgency string) {
	for _, hit := range hits {
		event := events.ContractExpiringEvent{
			EventType:     "contract.expiring",
			ContractID:    hit.ContractID,
			UserID:        hit.UserID,
			ContractType:  hit.Type,
			EndDate:       hit.EndDate,
			DaysRemaining: hit.DaysRemaining,
			Urgency:       urgency,
			OccurredAt:    time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("expiry event marshal failed",
				zap.String("contract_id", hit.ContractID),
				zap.Error(err),
			)
			continue
		}
		err = s.outbox.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "contract",
			AggregateID:   hit.ContractID,
			EventType:     event.EventType,
			Topic:         events.ContractExpiringTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
		if err != nil {
			s.logger.Error("expiry event enqueue failed",
				zap.String("contract_id", hit.ContractID),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("expiry event enqueued",
			zap.String("contract_id", hit.ContractID),
			zap.String("urgency", urgency),
			zap.Int("days_remaining", hit.DaysRemaining),
		)
	}
}

func sortByDaysRemaining(hits []ExpiringContract) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].DaysRemaining < hits[j].DaysRemaining
	})
}
