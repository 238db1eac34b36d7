package stage

type CreateStageRequest struct {
	InternID  string  `json:"intern_id" binding:"required"`
	MentorID  *string `json:"mentor_id"`
	Subject   string  `json:"subject" binding:"required"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
}

type AssignMentorRequest struct {
	MentorID string `json:"mentor_id" binding:"required"`
}

type ConfirmStageRequest struct {
	Subject    *string  `json:"subject"`
	Objectives []string `json:"objectives"`
	Comments   string   `json:"comments"`
}

type RejectStageRequest struct {
	Reason   string `json:"reason" binding:"required"`
	Comments string `json:"comments"`
}

type UpdateStageRequest struct {
	Subject   *string `json:"subject"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type SetStageStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING PROPOSED CONFIRMED IN_PROGRESS COMPLETED CANCELLED REJECTED"`
}

type ListFilter struct {
	Status   string
	InternID string
	MentorID string
}

type StageResponse struct {
	ID              string   `json:"id"`
	InternID        string   `json:"intern_id"`
	MentorID        *string  `json:"mentor_id,omitempty"`
	Subject         string   `json:"subject"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Status          string   `json:"status"`
	MentorDecision  string   `json:"mentor_decision"`
	MentorDecidedAt *string  `json:"mentor_decided_at,omitempty"`
	RejectReason    string   `json:"reject_reason,omitempty"`
	MentorComments  string   `json:"mentor_comments,omitempty"`
	Objectives      []string `json:"objectives,omitempty"`
	Descriptions    []string `json:"descriptions,omitempty"`
	CreatedAt       string   `json:"created_at"`
}
