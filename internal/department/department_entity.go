package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string         `gorm:"column:name;type:varchar(255);not null;uniqueIndex"`
	Description   string         `gorm:"column:description;type:text"`
	ResponsibleID *uuid.UUID     `gorm:"column:responsible_id;type:uuid"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Positions []Position `gorm:"foreignKey:DepartmentID;references:ID"`
}

func (Department) TableName() string {
	return "departments"
}

// Position is a job title offered within a department.
type Position struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	DepartmentID uuid.UUID `gorm:"column:department_id;type:uuid;not null;index"`
	Title        string    `gorm:"column:title;type:varchar(100);not null"`
}

func (Position) TableName() string {
	return "department_positions"
}
