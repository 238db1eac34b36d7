package events

import "time"

const ContractExpiringTopic = "grh.contract.expiry.v1"

// Urgency levels map to the scanner buckets: within 7 days is URGENT,
// within 15 is WARNING, within 30 is INFO.
const (
	UrgencyInfo    = "INFO"
	UrgencyWarning = "WARNING"
	UrgencyUrgent  = "URGENT"
)

type ContractExpiringEvent struct {
	EventType     string    `json:"event_type"`
	ContractID    string    `json:"contract_id"`
	UserID        string    `json:"user_id"`
	ContractType  string    `json:"contract_type"`
	EndDate       string    `json:"end_date"`
	DaysRemaining int       `json:"days_remaining"`
	Urgency       string    `json:"urgency"`
	OccurredAt    time.Time `json:"occurred_at"`
}
