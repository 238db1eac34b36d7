package department

type CreateDepartmentRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	ResponsibleID *string  `json:"responsible_id" binding:"omitempty,uuid"`
	Positions     []string `json:"positions"`
}

type UpdateDepartmentRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	ResponsibleID *string   `json:"responsible_id" binding:"omitempty,uuid"`
	Positions     *[]string `json:"positions"`
}

type DepartmentResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	ResponsibleID *string  `json:"responsible_id,omitempty"`
	Positions     []string `json:"positions"`
	CreatedAt     string   `json:"created_at"`
}
