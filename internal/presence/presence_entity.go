package presence

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusAbsent  = "ABSENT"
)

// Presence is one attendance record per user per day.
type Presence struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index:idx_presences_user_date,unique"`
	PresenceDate time.Time      `gorm:"column:presence_date;type:date;not null;index:idx_presences_user_date,unique"`
	CheckIn      time.Time      `gorm:"column:check_in;type:timestamptz;not null"`
	CheckOut     *time.Time     `gorm:"column:check_out;type:timestamptz"`
	Status       string         `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	Notes        *string        `gorm:"column:notes;type:text"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Presence) TableName() string {
	return "presences"
}
