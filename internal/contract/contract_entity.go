package contract

import (
	"time"

	"github.com/google/uuid"
)

// Contract types keep the labels of the French labor-law originals: CDI is
// open-ended, CDD is fixed-term, ALTERNANCE is an apprenticeship, STAGE is
// an internship.
const (
	TypeCDI        = "CDI"
	TypeCDD        = "CDD"
	TypeAlternance = "ALTERNANCE"
	TypeStage      = "STAGE"
)

const (
	StatusActive     = "ACTIVE"
	StatusTerminated = "TERMINATED"
	StatusSuspended  = "SUSPENDED"
	StatusRevoked    = "REVOKED"
)

func IsValidType(t string) bool {
	switch t {
	case TypeCDI, TypeCDD, TypeAlternance, TypeStage:
		return true
	}
	return false
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusTerminated, StatusSuspended, StatusRevoked:
		return true
	}
	return false
}

type Contract struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_contracts_user_start"`
	Type         string     `gorm:"column:type;type:varchar(20);not null"`
	StartDate    time.Time  `gorm:"column:start_date;type:date;not null;index:idx_contracts_user_start"`
	EndDate      *time.Time `gorm:"column:end_date;type:date"`
	Status       string     `gorm:"column:status;type:varchar(20);not null;default:'ACTIVE';index"`
	Salary       *float64   `gorm:"column:salary;type:numeric(12,2)"`
	Position     *string    `gorm:"column:position;type:varchar(100)"`
	DepartmentID uuid.UUID  `gorm:"column:department_id;type:uuid;not null;index"`

	// Renewal chain: a renewed contract points back at its predecessor, and
	// the predecessor accumulates RenewalHistory records.
	IsRenewal          bool       `gorm:"column:is_renewal;not null;default:false"`
	PreviousContractID *uuid.UUID `gorm:"column:previous_contract_id;type:uuid"`
	RenewalReason      *string    `gorm:"column:renewal_reason;type:text"`

	// Soft delete: contracts are deactivated, never removed, so renewal
	// history stays intact.
	Active    bool      `gorm:"column:active;not null;default:true;index"`
	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	RenewalHistory []RenewalRecord `gorm:"foreignKey:ContractID;references:ID"`
}

func (Contract) TableName() string {
	return "contracts"
}

// RenewalRecord is the forward log attached to the contract that was
// renewed.
type RenewalRecord struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ContractID    uuid.UUID `gorm:"column:contract_id;type:uuid;not null;index"`
	OldContractID uuid.UUID `gorm:"column:old_contract_id;type:uuid;not null"`
	NewContractID uuid.UUID `gorm:"column:new_contract_id;type:uuid;not null"`
	Reason        string    `gorm:"column:reason;type:text"`
	RenewedAt     time.Time `gorm:"column:renewed_at;not null"`
}

func (RenewalRecord) TableName() string {
	return "contract_renewals"
}
