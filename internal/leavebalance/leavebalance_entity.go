package leavebalance

import (
	"time"

	"github.com/google/uuid"
)

// Leave categories. Default allotments follow the HR policy baked into the
// balance row defaults below.
const (
	CategoryAnnual    = "ANNUAL"
	CategorySick      = "SICK"
	CategoryMaternity = "MATERNITY"
	CategoryPaternity = "PATERNITY"
)

const (
	DefaultAnnualDays    = 30
	DefaultSickDays      = 15
	DefaultMaternityDays = 112
	DefaultPaternityDays = 14
)

func Categories() []string {
	return []string{CategoryAnnual, CategorySick, CategoryMaternity, CategoryPaternity}
}

func IsValidCategory(category string) bool {
	switch category {
	case CategoryAnnual, CategorySick, CategoryMaternity, CategoryPaternity:
		return true
	}
	return false
}

// LeaveBalance is the per-user allotment row. There is at most one per user;
// it is materialized lazily on first read or first approval.
type LeaveBalance struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	AnnualDays    int       `gorm:"column:annual_days;type:int;not null;default:30"`
	SickDays      int       `gorm:"column:sick_days;type:int;not null;default:15"`
	MaternityDays int       `gorm:"column:maternity_days;type:int;not null;default:112"`
	PaternityDays int       `gorm:"column:paternity_days;type:int;not null;default:14"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`

	Consumptions []LeaveConsumption `gorm:"foreignKey:BalanceID;references:ID"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

// Allotment returns the initial entitlement for a category, 0 for unknown
// categories.
func (b LeaveBalance) Allotment(category string) int {
	switch category {
	case CategoryAnnual:
		return b.AnnualDays
	case CategorySick:
		return b.SickDays
	case CategoryMaternity:
		return b.MaternityDays
	case CategoryPaternity:
		return b.PaternityDays
	}
	return 0
}

// LeaveConsumption is one audit entry in the ledger. SourceRequestID is
// unique: a leave request debits the ledger at most once.
type LeaveConsumption struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	BalanceID       uuid.UUID `gorm:"column:balance_id;type:uuid;not null;index"`
	Category        string    `gorm:"column:category;type:varchar(20);not null"`
	StartDate       time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate         time.Time `gorm:"column:end_date;type:date;not null"`
	DaysConsumed    int       `gorm:"column:days_consumed;type:int;not null"`
	SourceRequestID uuid.UUID `gorm:"column:source_request_id;type:uuid;not null;uniqueIndex"`
	ConsumedAt      time.Time `gorm:"column:consumed_at;not null"`
}

func (LeaveConsumption) TableName() string {
	return "leave_consumptions"
}

// NewDefaultBalance materializes the default allotments for a user.
func NewDefaultBalance(userID uuid.UUID) *LeaveBalance {
	return &LeaveBalance{
		ID:            uuid.New(),
		UserID:        userID,
		AnnualDays:    DefaultAnnualDays,
		SickDays:      DefaultSickDays,
		MaternityDays: DefaultMaternityDays,
		PaternityDays: DefaultPaternityDays,
	}
}
