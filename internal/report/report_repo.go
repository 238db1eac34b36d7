package report

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rep *Report) error
	FindAll(ctx context.Context, status string) ([]Report, error)
	FindAllByUser(ctx context.Context, userID string) ([]Report, error)
	FindByID(ctx context.Context, id string) (*Report, error)
	Update(ctx context.Context, rep *Report) error
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

func (r *repository) Create(ctx context.Context, rep *Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *repository) FindAll(ctx context.Context, status string) ([]Report, error) {
	var reports []Report
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Report, error) {
	var reports []Report
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Report, error) {
	var rep Report
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&rep).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *repository) Update(ctx context.Context, rep *Report) error {
	return r.db.WithContext(ctx).Save(rep).Error
}
