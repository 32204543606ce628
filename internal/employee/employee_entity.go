package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber string         `gorm:"column:employee_number;type:varchar(30);not null;uniqueIndex:uq_employees_number"`
	FullName       string         `gorm:"column:full_name;type:varchar(150);not null"`
	Email          string         `gorm:"column:email;type:varchar(150);not null;uniqueIndex:uq_employees_email"`
	DepartmentID   uuid.UUID      `gorm:"column:department_id;type:uuid;not null;index"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}
