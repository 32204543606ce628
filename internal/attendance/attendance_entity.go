package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Attendance struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendances_employee_date"`
	// Date is the calendar day derived from the check-in time. The unique
	// index on (employee_id, date) is the storage-level guard against two
	// concurrent check-ins creating duplicate day records.
	Date              time.Time  `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendances_employee_date"`
	CheckInTime       time.Time  `gorm:"column:check_in_time;type:timestamptz;not null"`
	CheckInLatitude   float64    `gorm:"column:check_in_latitude;not null"`
	CheckInLongitude  float64    `gorm:"column:check_in_longitude;not null"`
	CheckOutTime      *time.Time `gorm:"column:check_out_time;type:timestamptz"`
	CheckOutLatitude  *float64   `gorm:"column:check_out_latitude"`
	CheckOutLongitude *float64   `gorm:"column:check_out_longitude"`
	DurationHours     *int       `gorm:"column:duration_hours"`
	DurationMinutes   *int       `gorm:"column:duration_minutes"`
	Status            string     `gorm:"column:status;type:varchar(20);not null;default:present"`
	Notes             *string    `gorm:"column:notes;type:varchar(500)"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
