package attestation

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attestation_repo.go -destination=mock/attestation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attestation) error
	FindAll(ctx context.Context, status string) ([]Attestation, error)
	FindAllByUser(ctx context.Context, userID string) ([]Attestation, error)
	FindByID(ctx context.Context, id string) (*Attestation, error)
	Update(ctx context.Context, a *Attestation) error
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

func (r *repository) Create(ctx context.Context, a *Attestation) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAll(ctx context.Context, status string) ([]Attestation, error) {
	var attestations []Attestation
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&attestations).Error
	return attestations, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Attestation, error) {
	var attestations []Attestation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&attestations).Error
	return attestations, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attestation, error) {
	var a Attestation
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Update(ctx context.Context, a *Attestation) error {
	return r.db.WithContext(ctx).Save(a).Error
}
