package stage

import (
	"context"
	"database/sql"
	"time"

	"github.com/sambizara/GRH-Back/internal/contract"
	"github.com/sambizara/GRH-Back/internal/rbac"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Person is the slice of a user row the stage module needs for validation
// and notification messages.
type Person struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Role      string
	IsActive  bool
}

// InternProfile adds the intern details used by the auto-matcher.
type InternProfile struct {
	ID              uuid.UUID
	FirstName       string
	LastName        string
	Role            string
	School          string
	Field           string
	InternshipStart *time.Time
	InternshipEnd   *time.Time
}

//go:generate mockgen -source=stage_repo.go -destination=mock/stage_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Stage) error
	FindAll(ctx context.Context, filter ListFilter) ([]Stage, error)
	FindByID(ctx context.Context, id string) (*Stage, error)
	FindOneByIntern(ctx context.Context, internID string) (*Stage, error)
	HasActiveByIntern(ctx context.Context, internID string) (bool, error)
	FindByMentor(ctx context.Context, mentorID string) ([]Stage, error)
	FindPendingByMentor(ctx context.Context, mentorID string) ([]Stage, error)
	FindDecidedByMentor(ctx context.Context, mentorID string) ([]Stage, error)
	FindUnassigned(ctx context.Context) ([]Stage, error)
	Update(ctx context.Context, s *Stage) error
	Delete(ctx context.Context, id string) error

	FindPerson(ctx context.Context, userID string) (*Person, error)
	FindInternProfile(ctx context.Context, userID string) (*InternProfile, error)
	FindMentorCandidates(ctx context.Context, position string) ([]Person, error)
	AdminIDs(ctx context.Context) ([]string, error)
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

func (r *repository) Create(ctx context.Context, s *Stage) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Stage, error) {
	var stages []Stage
	q := r.db.WithContext(ctx)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.InternID != "" {
		q = q.Where("intern_id = ?", filter.InternID)
	}
	if filter.MentorID != "" {
		q = q.Where("mentor_id = ?", filter.MentorID)
	}
	err := q.Order("created_at DESC").Find(&stages).Error
	return stages, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Stage, error) {
	var s Stage
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindOneByIntern(ctx context.Context, internID string) (*Stage, error) {
	var s Stage
	err := r.db.WithContext(ctx).
		Where("intern_id = ?", internID).
		Order("created_at DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) HasActiveByIntern(ctx context.Context, internID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Stage{}).
		Where("intern_id = ?", internID).
		Where("status IN ?", ActiveStatuses).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByMentor(ctx context.Context, mentorID string) ([]Stage, error) {
	var stages []Stage
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Order("created_at DESC").
		Find(&stages).Error
	return stages, err
}

func (r *repository) FindPendingByMentor(ctx context.Context, mentorID string) ([]Stage, error) {
	var stages []Stage
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Where("mentor_decision = ?", DecisionPending).
		Where("status IN ?", []string{StatusPending, StatusProposed}).
		Order("created_at DESC").
		Find(&stages).Error
	return stages, err
}

func (r *repository) FindDecidedByMentor(ctx context.Context, mentorID string) ([]Stage, error) {
	var stages []Stage
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Where("mentor_decision IN ?", []string{DecisionConfirmed, DecisionRejected}).
		Order("mentor_decided_at DESC").
		Find(&stages).Error
	return stages, err
}

func (r *repository) FindUnassigned(ctx context.Context) ([]Stage, error) {
	var stages []Stage
	err := r.db.WithContext(ctx).
		Where("mentor_id IS NULL").
		Where("status IN ?", []string{StatusPending, StatusInProgress}).
		Order("created_at DESC").
		Find(&stages).Error
	return stages, err
}

func (r *repository) Update(ctx context.Context, s *Stage) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Stage{}).Error
}

func (r *repository) FindPerson(ctx context.Context, userID string) (*Person, error) {
	var p Person
	err := r.db.WithContext(ctx).
		Table("users").
		Select("id, first_name, last_name, role, is_active").
		Where("id = ? AND deleted_at IS NULL", userID).
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindInternProfile(ctx context.Context, userID string) (*InternProfile, error) {
	var p InternProfile
	err := r.db.WithContext(ctx).
		Table("users").
		Select(`users.id, users.first_name, users.last_name, users.role,
			intern_details.school, intern_details.field,
			intern_details.internship_start, intern_details.internship_end`).
		Joins("LEFT JOIN intern_details ON intern_details.user_id = users.id").
		Where("users.id = ? AND users.deleted_at IS NULL", userID).
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindMentorCandidates returns the active employees whose current contract
// position matches the intern's field of study.
func (r *repository) FindMentorCandidates(ctx context.Context, position string) ([]Person, error) {
	var people []Person
	err := r.db.WithContext(ctx).
		Table("users").
		Select("DISTINCT users.id, users.first_name, users.last_name, users.role, users.is_active").
		Joins("JOIN contracts ON contracts.user_id = users.id AND contracts.status = ? AND contracts.deleted_at IS NULL",
			contract.StatusActive).
		Where("users.role = ? AND users.is_active AND users.deleted_at IS NULL", rbac.RoleSalarie).
		Where("contracts.position = ?", position).
		Find(&people).Error
	return people, err
}

func (r *repository) AdminIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("users").
		Where("role = ? AND deleted_at IS NULL", rbac.RoleAdminRH).
		Pluck("id", &ids).Error
	return ids, err
}
