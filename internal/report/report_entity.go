package report

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusSubmitted = "SUBMITTED"
	StatusReviewed  = "REVIEWED"
	StatusRejected  = "REJECTED"
)

// Report is an intern activity report reviewed by HR.
type Report struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	Title         string         `gorm:"column:title;type:varchar(255);not null"`
	Content       string         `gorm:"column:content;type:text;not null"`
	PeriodStart   *time.Time     `gorm:"column:period_start;type:date"`
	PeriodEnd     *time.Time     `gorm:"column:period_end;type:date"`
	Status        string         `gorm:"column:status;type:varchar(20);not null;default:'SUBMITTED';index"`
	ReviewComment *string        `gorm:"column:review_comment;type:text"`
	ReviewedBy    *uuid.UUID     `gorm:"column:reviewed_by;type:uuid"`
	ReviewedAt    *time.Time     `gorm:"column:reviewed_at"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Report) TableName() string {
	return "reports"
}
