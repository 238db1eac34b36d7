package events

import "time"

const LeaveDecisionTopic = "grh.leave.decision.v1"

// LeaveDecisionEvent is emitted through the outbox whenever a leave request
// is approved or rejected.
type LeaveDecisionEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	UserID     string    `json:"user_id"`
	Category   string    `json:"category"`
	Status     string    `json:"status"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	DaysTaken  int       `json:"days_taken"`
	OccurredAt time.Time `json:"occurred_at"`
}
