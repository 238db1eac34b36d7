package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName string         `gorm:"column:first_name;type:varchar(100);not null"`
	LastName  string         `gorm:"column:last_name;type:varchar(100);not null"`
	Email     string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	Password  string         `gorm:"column:password;type:text;not null"`
	Role      string         `gorm:"column:role;type:varchar(20);not null;index"`
	Gender    string         `gorm:"column:gender;type:varchar(10)"`
	Address   string         `gorm:"column:address;type:text"`
	Phone     string         `gorm:"column:phone;type:varchar(30)"`
	BirthDate *time.Time     `gorm:"column:birth_date;type:date"`
	IsActive  bool           `gorm:"column:is_active;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	// Role payloads: exactly one is populated, matching Role.
	Employee *EmployeeDetails `gorm:"foreignKey:UserID;references:ID"`
	Intern   *InternDetails   `gorm:"foreignKey:UserID;references:ID"`
}

func (User) TableName() string {
	return "users"
}

// EmployeeDetails carries the SALARIE-only fields.
type EmployeeDetails struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	StaffNumber   string     `gorm:"column:staff_number;type:varchar(50);uniqueIndex"`
	HireDate      *time.Time `gorm:"column:hire_date;type:date"`
	MaritalStatus string     `gorm:"column:marital_status;type:varchar(30)"`
	Children      int        `gorm:"column:children;not null;default:0"`
}

func (EmployeeDetails) TableName() string {
	return "employee_details"
}

// InternDetails carries the STAGIAIRE-only fields.
type InternDetails struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	School          string     `gorm:"column:school;type:varchar(255)"`
	Field           string     `gorm:"column:field;type:varchar(255)"`
	Level           string     `gorm:"column:level;type:varchar(100)"`
	InternshipStart *time.Time `gorm:"column:internship_start;type:date"`
	InternshipEnd   *time.Time `gorm:"column:internship_end;type:date"`
	TutorID         *uuid.UUID `gorm:"column:tutor_id;type:uuid"`
}

func (InternDetails) TableName() string {
	return "intern_details"
}
