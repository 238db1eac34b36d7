package stage

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending    = "PENDING"
	StatusProposed   = "PROPOSED"
	StatusConfirmed  = "CONFIRMED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
	StatusRejected   = "REJECTED"
)

// Mentor decision sub-state. A stage stays PENDING until its mentor either
// confirms or rejects the assignment.
const (
	DecisionPending   = "PENDING"
	DecisionConfirmed = "CONFIRMED"
	DecisionRejected  = "REJECTED"
)

// Stage is an internship assignment binding an intern to a mentor. MentorID
// is nil while HR has not assigned anyone yet; PROPOSED rows are created by
// the auto-matcher and are not counted as an active assignment.
type Stage struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	InternID        uuid.UUID      `gorm:"column:intern_id;type:uuid;not null;index"`
	MentorID        *uuid.UUID     `gorm:"column:mentor_id;type:uuid;index"`
	Subject         string         `gorm:"column:subject;type:varchar(255);not null"`
	StartDate       time.Time      `gorm:"column:start_date;type:date;not null"`
	EndDate         time.Time      `gorm:"column:end_date;type:date;not null"`
	Status          string         `gorm:"column:status;type:varchar(20);not null;default:'PENDING';index"`
	MentorDecision  string         `gorm:"column:mentor_decision;type:varchar(20);not null;default:'PENDING'"`
	MentorDecidedAt *time.Time     `gorm:"column:mentor_decided_at"`
	RejectReason    string         `gorm:"column:reject_reason;type:text"`
	MentorComments  string         `gorm:"column:mentor_comments;type:text"`
	Objectives      []string       `gorm:"column:objectives;type:jsonb;serializer:json"`
	Descriptions    []string       `gorm:"column:descriptions;type:jsonb;serializer:json"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Stage) TableName() string {
	return "stages"
}

// ActiveStatuses are the states that block a second assignment for the same
// intern. PROPOSED is excluded so the auto-matcher can fan out several
// proposals at once.
var ActiveStatuses = []string{StatusPending, StatusConfirmed, StatusInProgress}

func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProposed, StatusConfirmed,
		StatusInProgress, StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}
