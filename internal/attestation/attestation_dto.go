package attestation

type CreateAttestationRequest struct {
	Type   string `json:"type" binding:"required,oneof=WORK SALARY INTERNSHIP"`
	Reason string `json:"reason"`
}

type DecideAttestationRequest struct {
	Status  string  `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	Content *string `json:"content"`
}

type AttestationResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Type      string  `json:"type"`
	Reason    string  `json:"reason,omitempty"`
	Status    string  `json:"status"`
	Content   *string `json:"content,omitempty"`
	DecidedBy *string `json:"decided_by,omitempty"`
	DecidedAt *string `json:"decided_at,omitempty"`
	CreatedAt string  `json:"created_at"`
}
