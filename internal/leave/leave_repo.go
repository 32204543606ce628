package leave

import (
	"context"
	"database/sql"
	"time"

	"go-tams/internal/shared/query"

	"gorm.io/gorm"
)

// Filter narrows leave lists; fields form a conjunction.
type Filter struct {
	EmployeeID *string
	Status     *string
	Type       *string
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindPage(ctx context.Context, f Filter, p query.Params) (query.Page[Leave], error)
	Update(ctx context.Context, l *Leave) error
	AddComment(ctx context.Context, c *LeaveComment) error
	// HasOverlappingPeriod reports whether the employee already holds a
	// non-rejected request intersecting [startDate, endDate] under
	// inclusive endpoints. The check-then-create sequence is not atomic;
	// closing the residual race fully would take a storage-level exclusion
	// constraint on the date range.
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	// FindApprovedWithinYear returns approved requests lying entirely inside
	// the year: start_date >= Jan 1 and end_date <= Dec 31. Requests that
	// span the year boundary match neither year.
	FindApprovedWithinYear(ctx context.Context, employeeID string, year int) ([]Leave, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("Attachments").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("leave_comments.created_at ASC")
		}).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindPage(ctx context.Context, f Filter, p query.Params) (query.Page[Leave], error) {
	tx := r.db.WithContext(ctx).Model(&Leave{})

	if f.EmployeeID != nil && *f.EmployeeID != "" {
		tx = tx.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.Status != nil && *f.Status != "" {
		tx = tx.Where("status = ?", *f.Status)
	}
	if f.Type != nil && *f.Type != "" {
		tx = tx.Where("type = ?", *f.Type)
	}

	return query.Paginate[Leave](ctx, tx, p, "created_at DESC")
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Omit("Attachments", "Comments").Save(l).Error
}

func (r *repository) AddComment(ctx context.Context, c *LeaveComment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusRejected).
		Where("start_date <= ? AND end_date >= ?", endDate.Format("2006-01-02"), startDate.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindApprovedWithinYear(ctx context.Context, employeeID string, year int) ([]Leave, error) {
	startOfYear := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	endOfYear := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("start_date >= ?", startOfYear.Format("2006-01-02")).
		Where("end_date <= ?", endOfYear.Format("2006-01-02")).
		Find(&leaves).Error
	return leaves, err
}
