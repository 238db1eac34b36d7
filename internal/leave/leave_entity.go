package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index:idx_leave_requests_user_dates"`
	Category  string         `gorm:"column:category;type:varchar(20);not null"`
	StartDate time.Time      `gorm:"column:start_date;type:date;not null;index:idx_leave_requests_user_dates"`
	EndDate   time.Time      `gorm:"column:end_date;type:date;not null;index:idx_leave_requests_user_dates"`
	TotalDays int            `gorm:"column:total_days;type:int;not null;default:1"`
	Reason    string         `gorm:"column:reason;type:text"`
	Status    string         `gorm:"column:status;type:varchar(20);not null;default:'PENDING';index"`
	DecidedBy *uuid.UUID     `gorm:"column:decided_by;type:uuid"`
	DecidedAt *time.Time     `gorm:"column:decided_at"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
