package user

type EmployeeDetailsRequest struct {
	StaffNumber   string `json:"staff_number" binding:"required"`
	HireDate      string `json:"hire_date" binding:"required"`
	MaritalStatus string `json:"marital_status"`
	Children      int    `json:"children" binding:"gte=0"`
}

type InternDetailsRequest struct {
	School          string  `json:"school" binding:"required"`
	Field           string  `json:"field" binding:"required"`
	Level           string  `json:"level"`
	InternshipStart string  `json:"internship_start" binding:"required"`
	InternshipEnd   string  `json:"internship_end" binding:"required"`
	TutorID         *string `json:"tutor_id" binding:"omitempty,uuid"`
}

type CreateUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=ADMIN_RH SALARIE STAGIAIRE"`
	Gender    string `json:"gender" binding:"omitempty,oneof=M F"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"`

	Employee *EmployeeDetailsRequest `json:"employee"`
	Intern   *InternDetailsRequest   `json:"intern"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Gender    *string `json:"gender" binding:"omitempty,oneof=M F"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birth_date"`

	Employee *EmployeeDetailsRequest `json:"employee"`
	Intern   *InternDetailsRequest   `json:"intern"`
}

type EmployeeDetailsResponse struct {
	StaffNumber   string `json:"staff_number"`
	HireDate      string `json:"hire_date,omitempty"`
	MaritalStatus string `json:"marital_status,omitempty"`
	Children      int    `json:"children"`
}

type InternDetailsResponse struct {
	School          string  `json:"school"`
	Field           string  `json:"field"`
	Level           string  `json:"level,omitempty"`
	InternshipStart string  `json:"internship_start,omitempty"`
	InternshipEnd   string  `json:"internship_end,omitempty"`
	TutorID         *string `json:"tutor_id,omitempty"`
}

type UserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Gender    string `json:"gender,omitempty"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`

	Employee *EmployeeDetailsResponse `json:"employee,omitempty"`
	Intern   *InternDetailsResponse   `json:"intern,omitempty"`
}
