package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;index"`
	Email        string         `gorm:"column:email;type:varchar(150);not null;uniqueIndex:uq_users_email"`
	PasswordHash string         `gorm:"column:password_hash;type:varchar(100);not null"`
	Role         string         `gorm:"column:role;type:varchar(20);not null;default:employee"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
