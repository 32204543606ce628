package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-tams/internal/shared/query"

	"gorm.io/gorm"
)

// Filter narrows attendance lists. Fields form a conjunction; nil/empty
// fields are skipped. Start/End bound the check-in time.
type Filter struct {
	EmployeeID  *string
	EmployeeIDs []string
	Status      *string
	Start       *time.Time
	End         *time.Time
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByID(ctx context.Context, id string) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	FindByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
	FindPage(ctx context.Context, f Filter, p query.Params) (query.Page[Attendance], error)
	Update(ctx context.Context, a *Attendance) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("check_in_time BETWEEN ? AND ?", start, end).
		Order("check_in_time DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPage(ctx context.Context, f Filter, p query.Params) (query.Page[Attendance], error) {
	tx := r.db.WithContext(ctx).Model(&Attendance{})

	if f.EmployeeID != nil && *f.EmployeeID != "" {
		tx = tx.Where("employee_id = ?", *f.EmployeeID)
	}
	if len(f.EmployeeIDs) > 0 {
		tx = tx.Where("employee_id IN ?", f.EmployeeIDs)
	}
	if f.Status != nil && *f.Status != "" {
		tx = tx.Where("status = ?", *f.Status)
	}
	if f.Start != nil {
		tx = tx.Where("check_in_time >= ?", *f.Start)
	}
	if f.End != nil {
		tx = tx.Where("check_in_time <= ?", *f.End)
	}

	return query.Paginate[Attendance](ctx, tx, p, "check_in_time DESC")
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}
