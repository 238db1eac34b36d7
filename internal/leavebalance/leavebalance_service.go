package leavebalance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	leavebalanceerrors "github.com/sambizara/GRH-Back/internal/leavebalance/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	balanceCacheKeyPrefix = "balances:"
	balanceCacheTTL       = 5 * time.Minute
)

func balanceCacheKey(userID string) string {
	return balanceCacheKeyPrefix + userID
}

// ConsumptionSource identifies the leave request a ledger debit originates
// from.
type ConsumptionSource struct {
	RequestID uuid.UUID
	Category  string
	StartDate time.Time
	EndDate   time.Time
}

// BalanceSummary is the remaining entitlement per category, floored at 0.
type BalanceSummary struct {
	Annual    int `json:"annual"`
	Sick      int `json:"sick"`
	Maternity int `json:"maternity"`
	Paternity int `json:"paternity"`
}

//go:generate mockgen -source=leavebalance_service.go -destination=mock/leavebalance_service_mock.go -package=mock
type Ledger interface {
	WithTx(tx *sql.Tx) Ledger
	GetRemaining(ctx context.Context, userID, category string) (int, error)
	GetRemainingAll(ctx context.Context, userID string) (BalanceSummary, error)
	RecordConsumption(ctx context.Context, userID string, src ConsumptionSource) error
	ReverseConsumption(ctx context.Context, userID, requestID string) error
}

type ledger struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewLedger(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Ledger {
	l := zap.L().Named("leavebalance.ledger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.ledger")
	}
	return &ledger{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *ledger) WithTx(tx *sql.Tx) Ledger {
	return &ledger{repo: s.repo.WithTx(tx), rdb: s.rdb, sf: s.sf, logger: s.logger}
}

// getOrCreate materializes the default balance row on first access. A lost
// race on the unique user index is resolved by re-reading.
func (s *ledger) getOrCreate(ctx context.Context, userID string) (*LeaveBalance, error) {
	b, err := s.repo.FindByUser(ctx, userID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, leavebalanceerrors.ErrInvalidUserID
	}

	fresh := NewDefaultBalance(uid)
	if createErr := s.repo.Create(ctx, fresh); createErr != nil {
		if existing, findErr := s.repo.FindByUser(ctx, userID); findErr == nil {
			return existing, nil
		}
		return nil, createErr
	}

	s.logger.Info("leave balance materialized with defaults", zap.String("user_id", userID))
	return fresh, nil
}

func remaining(b *LeaveBalance, category string) int {
	consumed := 0
	for _, entry := range b.Consumptions {
		if entry.Category == category {
			consumed += entry.DaysConsumed
		}
	}

	// Floor at read time only: the audit log may legitimately exceed the
	// allotment and is preserved as-is.
	rest := b.Allotment(category) - consumed
	if rest < 0 {
		return 0
	}
	return rest
}

func (s *ledger) GetRemaining(ctx context.Context, userID, category string) (int, error) {
	if !IsValidCategory(category) {
		return 0, leavebalanceerrors.ErrInvalidCategory
	}

	b, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return 0, err
	}
	return remaining(b, category), nil
}

func (s *ledger) GetRemainingAll(ctx context.Context, userID string) (BalanceSummary, error) {
	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, balanceCacheKey(userID)).Result(); err == nil {
			var cached BalanceSummary
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	v, err, _ := s.sf.Do(balanceCacheKey(userID), func() (interface{}, error) {
		b, err := s.getOrCreate(ctx, userID)
		if err != nil {
			return BalanceSummary{}, err
		}

		summary := BalanceSummary{
			Annual:    remaining(b, CategoryAnnual),
			Sick:      remaining(b, CategorySick),
			Maternity: remaining(b, CategoryMaternity),
			Paternity: remaining(b, CategoryPaternity),
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(summary); err == nil {
				if err := s.rdb.Set(ctx, balanceCacheKey(userID), payload, balanceCacheTTL).Err(); err != nil {
					s.logger.Warn("balance cache set failed", zap.String("user_id", userID), zap.Error(err))
				}
			}
		}

		return summary, nil
	})
	if err != nil {
		return BalanceSummary{}, err
	}
	return v.(BalanceSummary), nil
}

func (s *ledger) RecordConsumption(ctx context.Context, userID string, src ConsumptionSource) error {
	if !IsValidCategory(src.Category) {
		return leavebalanceerrors.ErrInvalidCategory
	}

	b, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	// Approval is idempotent: a request already in the ledger must not be
	// debited twice.
	exists, err := s.repo.HasConsumptionForRequest(ctx, src.RequestID.String())
	if err != nil {
		return err
	}
	if exists {
		s.logger.Debug("consumption already recorded, skipping",
			zap.String("user_id", userID),
			zap.String("request_id", src.RequestID.String()),
		)
		return nil
	}

	entry := &LeaveConsumption{
		ID:              uuid.New(),
		BalanceID:       b.ID,
		Category:        src.Category,
		StartDate:       src.StartDate,
		EndDate:         src.EndDate,
		DaysConsumed:    InclusiveLeaveDays(src.StartDate, src.EndDate),
		SourceRequestID: src.RequestID,
		ConsumedAt:      time.Now().UTC(),
	}

	if err := s.repo.AppendConsumption(ctx, entry); err != nil {
		return err
	}

	s.invalidateCache(ctx, userID)
	s.logger.Info("leave consumption recorded",
		zap.String("user_id", userID),
		zap.String("request_id", src.RequestID.String()),
		zap.String("category", src.Category),
		zap.Int("days", entry.DaysConsumed),
	)
	return nil
}

func (s *ledger) ReverseConsumption(ctx context.Context, userID, requestID string) error {
	// No-op when no matching entry exists.
	if err := s.repo.DeleteConsumptionByRequest(ctx, requestID); err != nil {
		return err
	}

	s.invalidateCache(ctx, userID)
	s.logger.Info("leave consumption reversed",
		zap.String("user_id", userID),
		zap.String("request_id", requestID),
	)
	return nil
}

func (s *ledger) invalidateCache(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, balanceCacheKey(userID)).Err(); err != nil {
		s.logger.Warn("balance cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}
