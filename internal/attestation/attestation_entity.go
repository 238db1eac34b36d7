package attestation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeWork       = "WORK"
	TypeSalary     = "SALARY"
	TypeInternship = "INTERNSHIP"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Attestation is an employment certificate request. Content is only set
// when HR approves it.
type Attestation struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	Type      string         `gorm:"column:type;type:varchar(20);not null"`
	Reason    string         `gorm:"column:reason;type:text"`
	Status    string         `gorm:"column:status;type:varchar(20);not null;default:'PENDING';index"`
	Content   *string        `gorm:"column:content;type:text"`
	DecidedBy *uuid.UUID     `gorm:"column:decided_by;type:uuid"`
	DecidedAt *time.Time     `gorm:"column:decided_at"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Attestation) TableName() string {
	return "attestations"
}
