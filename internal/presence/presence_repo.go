package presence

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=presence_repo.go -destination=mock/presence_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Presence) error
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Presence, error)
	FindAll(ctx context.Context, from, to *time.Time) ([]Presence, error)
	FindAllByUser(ctx context.Context, userID string) ([]Presence, error)
	Update(ctx context.Context, p *Presence) error
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

func (r *repository) Create(ctx context.Context, p *Presence) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Presence, error) {
	var p Presence
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND presence_date = ?", userID, date).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAll(ctx context.Context, from, to *time.Time) ([]Presence, error) {
	var rows []Presence
	q := r.db.WithContext(ctx)
	if from != nil {
		q = q.Where("presence_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("presence_date <= ?", *to)
	}
	err := q.Order("presence_date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Presence, error) {
	var rows []Presence
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("presence_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, p *Presence) error {
	return r.db.WithContext(ctx).Save(p).Error
}
