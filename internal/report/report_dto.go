package report

type CreateReportRequest struct {
	Title       string  `json:"title" binding:"required"`
	Content     string  `json:"content" binding:"required"`
	PeriodStart *string `json:"period_start"`
	PeriodEnd   *string `json:"period_end"`
}

type ReviewReportRequest struct {
	Status  string  `json:"status" binding:"required,oneof=REVIEWED REJECTED"`
	Comment *string `json:"comment"`
}

type ReportResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	PeriodStart   *string `json:"period_start,omitempty"`
	PeriodEnd     *string `json:"period_end,omitempty"`
	Status        string  `json:"status"`
	ReviewComment *string `json:"review_comment,omitempty"`
	ReviewedBy    *string `json:"reviewed_by,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
