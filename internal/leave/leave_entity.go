package leave

import (
	"time"

	"github.com/google/uuid"
)

type Leave struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_leaves_employee_dates"`

	Type      string    `gorm:"column:type;type:varchar(20);not null"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null;index:idx_leaves_employee_dates"`
	// Duration is the inclusive day count of [StartDate, EndDate].
	Duration int    `gorm:"column:duration;type:int;not null"`
	Reason   string `gorm:"column:reason;type:varchar(500);not null"`

	Status          string     `gorm:"column:status;type:varchar(20);not null;default:pending;index"`
	ApprovedBy      *uuid.UUID `gorm:"column:approved_by;type:uuid"`
	ApprovedAt      *time.Time `gorm:"column:approved_at;type:timestamptz"`
	RejectionReason *string    `gorm:"column:rejection_reason;type:varchar(500)"`

	Attachments []LeaveAttachment `gorm:"foreignKey:LeaveID"`
	Comments    []LeaveComment    `gorm:"foreignKey:LeaveID"`

	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Leave) TableName() string {
	return "leaves"
}

type LeaveAttachment struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveID    uuid.UUID `gorm:"column:leave_id;type:uuid;not null;index"`
	Name       string    `gorm:"column:name;type:varchar(255);not null"`
	URL        string    `gorm:"column:url;type:text;not null"`
	UploadedAt time.Time `gorm:"column:uploaded_at;type:timestamptz;not null"`
}

func (LeaveAttachment) TableName() string {
	return "leave_attachments"
}

type LeaveComment struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveID    uuid.UUID `gorm:"column:leave_id;type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null"`
	Text       string    `gorm:"column:text;type:text;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (LeaveComment) TableName() string {
	return "leave_comments"
}
