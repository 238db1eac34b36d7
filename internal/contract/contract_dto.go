package contract

type CreateContractRequest struct {
	UserID       string   `json:"user_id" binding:"required,uuid"`
	Type         string   `json:"type" binding:"required,oneof=CDI CDD ALTERNANCE STAGE"`
	StartDate    string   `json:"start_date" binding:"required"`
	EndDate      *string  `json:"end_date"`
	Salary       *float64 `json:"salary"`
	Position     *string  `json:"position"`
	DepartmentID string   `json:"department_id" binding:"required,uuid"`
}

type UpdateContractRequest struct {
	Type      *string  `json:"type" binding:"omitempty,oneof=CDI CDD ALTERNANCE STAGE"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
	Status    *string  `json:"status" binding:"omitempty,oneof=ACTIVE TERMINATED SUSPENDED REVOKED"`
	Salary    *float64 `json:"salary"`
	Position  *string  `json:"position"`
}

type RenewContractRequest struct {
	StartDate string   `json:"start_date" binding:"required"`
	EndDate   *string  `json:"end_date"`
	Type      *string  `json:"type" binding:"omitempty,oneof=CDD ALTERNANCE STAGE"`
	Salary    *float64 `json:"salary"`
	Position  *string  `json:"position"`
	Reason    string   `json:"reason"`
}

type RenewalRecordResponse struct {
	OldContractID string `json:"old_contract_id"`
	NewContractID string `json:"new_contract_id"`
	Reason        string `json:"reason"`
	RenewedAt     string `json:"renewed_at"`
}

type ContractResponse struct {
	ID                 string                  `json:"id"`
	UserID             string                  `json:"user_id"`
	Type               string                  `json:"type"`
	StartDate          string                  `json:"start_date"`
	EndDate            *string                 `json:"end_date,omitempty"`
	Status             string                  `json:"status"`
	Salary             *float64                `json:"salary,omitempty"`
	Position           *string                 `json:"position,omitempty"`
	DepartmentID       string                  `json:"department_id"`
	IsRenewal          bool                    `json:"is_renewal"`
	PreviousContractID *string                 `json:"previous_contract_id,omitempty"`
	RenewalReason      *string                 `json:"renewal_reason,omitempty"`
	Active             bool                    `json:"active"`
	RenewalHistory     []RenewalRecordResponse `json:"renewal_history,omitempty"`
}

type RenewalResponse struct {
	Old ContractResponse `json:"old"`
	New ContractResponse `json:"new"`
}

type CanRenewResponse struct {
	CanRenew bool   `json:"can_renew"`
	Reason   string `json:"reason,omitempty"`
}

// ExpiringContract is one scanner hit with the exclusive days-remaining
// count.
type ExpiringContract struct {
	ContractID    string   `json:"contract_id"`
	UserID        string   `json:"user_id"`
	Type          string   `json:"type"`
	Position      *string  `json:"position,omitempty"`
	Salary        *float64 `json:"salary,omitempty"`
	DepartmentID  string   `json:"department_id"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	DaysRemaining int      `json:"days_remaining"`
}

// ExpiringContracts buckets are mutually exclusive; the smallest bucket
// wins.
type ExpiringContracts struct {
	Within7  []ExpiringContract `json:"within_7_days"`
	Within15 []ExpiringContract `json:"within_15_days"`
	Within30 []ExpiringContract `json:"within_30_days"`
}

type ExpirationStats struct {
	Within7  int `json:"expires_within_7_days"`
	Within15 int `json:"expires_within_15_days"`
	Within30 int `json:"expires_within_30_days"`
	Total    int `json:"total_expiring"`
}
