package contract

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=contract_repo.go -destination=mock/contract_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, contract *Contract) error
	FindAll(ctx context.Context, filter ListFilter) ([]Contract, error)
	FindAllByUser(ctx context.Context, userID string) ([]Contract, error)
	FindByID(ctx context.Context, id string) (*Contract, error)
	Update(ctx context.Context, contract *Contract) error
	FindOverlappingActive(ctx context.Context, userID string, start time.Time, end *time.Time, excludeID string) ([]Contract, error)
	FindExpiringBetween(ctx context.Context, from, to time.Time) ([]Contract, error)
	AppendRenewalRecord(ctx context.Context, record *RenewalRecord) error
	UserExists(ctx context.Context, userID string) (bool, error)
	DepartmentExists(ctx context.Context, departmentID string) (bool, error)
}

// ListFilter narrows FindAll. Zero values mean "no filter".
type ListFilter struct {
	UserID       string
	Type         string
	Status       string
	DepartmentID string
	ActiveOnly   bool
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

func (r *repository) Create(ctx context.Context, contract *Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Contract, error) {
	var contracts []Contract
	q := r.db.WithContext(ctx).Model(&Contract{})
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DepartmentID != "" {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("start_date DESC").Find(&contracts).Error
	return contracts, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Contract, error) {
	var contracts []Contract
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("start_date DESC").
		Find(&contracts).Error
	return contracts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Contract, error) {
	var contract Contract
	err := r.db.WithContext(ctx).
		Preload("RenewalHistory").
		Where("id = ?", id).
		First(&contract).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *repository) Update(ctx context.Context, contract *Contract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

// FindOverlappingActive returns ACTIVE-status, non-deleted contracts of the
// user whose period intersects [start, end]. A nil end means open-ended, which
// overlaps anything starting at or after start and anything still running.
func (r *repository) FindOverlappingActive(ctx context.Context, userID string, start time.Time, end *time.Time, excludeID string) ([]Contract, error) {
	var contracts []Contract
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("active = ?", true).
		Where("status = ?", StatusActive)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if end != nil {
		// existing.start <= new.end AND (existing.end IS NULL OR existing.end >= new.start)
		q = q.Where("start_date <= ? AND (end_date IS NULL OR end_date >= ?)", *end, start)
	} else {
		q = q.Where("end_date IS NULL OR end_date >= ?", start)
	}
	err := q.Find(&contracts).Error
	return contracts, err
}

func (r *repository) FindExpiringBetween(ctx context.Context, from, to time.Time) ([]Contract, error) {
	var contracts []Contract
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("status = ?", StatusActive).
		Where("end_date IS NOT NULL AND end_date >= ? AND end_date <= ?", from, to).
		Order("end_date ASC").
		Find(&contracts).Error
	return contracts, err
}

func (r *repository) AppendRenewalRecord(ctx context.Context, record *RenewalRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) DepartmentExists(ctx context.Context, departmentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("departments").
		Where("id = ?", departmentID).
		Count(&count).Error
	return count > 0, err
}
