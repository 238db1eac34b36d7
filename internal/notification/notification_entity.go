package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeInfo     = "INFO"
	TypeAlert    = "ALERT"
	TypeReminder = "REMINDER"
	TypeSuccess  = "SUCCESS"
	TypeWarning  = "WARNING"
)

const (
	CategoryLeave       = "CONGE"
	CategoryContract    = "CONTRAT"
	CategoryAttestation = "ATTESTATION"
	CategoryStage       = "STAGE"
	CategoryReport      = "RAPPORT"
	CategoryUser        = "UTILISATEUR"
	CategoryOther       = "AUTRE"
)

type Notification struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_notifications_user_read"`
	Type          string     `gorm:"column:type;type:varchar(20);not null;default:'INFO'"`
	Category      string     `gorm:"column:category;type:varchar(30);not null;default:'AUTRE'"`
	Title         string     `gorm:"column:title;type:varchar(255);not null"`
	Message       string     `gorm:"column:message;type:text;not null"`
	RelatedEntity *uuid.UUID `gorm:"column:related_entity;type:uuid"`
	Read          bool       `gorm:"column:read;not null;default:false;index:idx_notifications_user_read"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
