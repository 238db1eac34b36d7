package leavebalance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavebalance_repo.go -destination=mock/leavebalance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByUser(ctx context.Context, userID string) (*LeaveBalance, error)
	Create(ctx context.Context, b *LeaveBalance) error
	AppendConsumption(ctx context.Context, entry *LeaveConsumption) error
	HasConsumptionForRequest(ctx context.Context, sourceRequestID string) (bool, error)
	DeleteConsumptionByRequest(ctx context.Context, sourceRequestID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose queries run on tx instead of the pool.
// The session clone keeps the transaction connection through chained calls.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) FindByUser(ctx context.Context, userID string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Preload("Consumptions").
		First(&b, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) AppendConsumption(ctx context.Context, entry *LeaveConsumption) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) HasConsumptionForRequest(ctx context.Context, sourceRequestID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveConsumption{}).
		Where("source_request_id = ?", sourceRequestID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) DeleteConsumptionByRequest(ctx context.Context, sourceRequestID string) error {
	return r.db.WithContext(ctx).
		Where("source_request_id = ?", sourceRequestID).
		Delete(&LeaveConsumption{}).Error
}
