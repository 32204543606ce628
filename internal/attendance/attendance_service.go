package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-tams/internal/attendance/errors"
	"go-tams/internal/employee"
	"go-tams/internal/shared/daterange"
	"go-tams/internal/shared/query"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPresent = "present"
	StatusHalfDay = "half-day"
	StatusAbsent  = "absent"
	StatusLeave   = "leave"
)

// QueryAttendanceRequest selects the range either symbolically via Period or
// through explicit bounds; explicit bounds win when both are set.
type QueryAttendanceRequest struct {
	Period     string
	StartDate  string
	EndDate    string
	EmployeeID *string
	Status     *string
}

type DepartmentAttendanceRequest struct {
	DepartmentID string
	Date         *string
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (AttendanceResponse, error)
	GetToday(ctx context.Context, employeeID string) (*AttendanceResponse, error)
	GetForRange(ctx context.Context, employeeID, startDate, endDate string) ([]AttendanceResponse, error)
	Query(ctx context.Context, req QueryAttendanceRequest, p query.Params) (query.Page[AttendanceResponse], error)
	GetDepartmentAttendance(ctx context.Context, req DepartmentAttendanceRequest, p query.Params) (query.Page[AttendanceResponse], error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, employees: employees, logger: l}
}

// deriveStatus maps a worked duration to the day's status. Anything under
// four whole hours counts as absent, under eight as half-day.
func deriveStatus(hours int) string {
	switch {
	case hours < 4:
		return StatusAbsent
	case hours < 8:
		return StatusHalfDay
	default:
		return StatusPresent
	}
}

func (s *service) CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (AttendanceResponse, error) {
	s.logger.Debug("check-in requested", zap.String("employee_id", employeeID))

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-in begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := daterange.StartOfDay(now)

	_, err = qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err == nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	row := &Attendance{
		ID:               uuid.New(),
		EmployeeID:       employeeUUID,
		Date:             today,
		CheckInTime:      now,
		CheckInLatitude:  req.Location.Latitude,
		CheckInLongitude: req.Location.Longitude,
		Status:           StatusPresent,
		Notes:            req.Notes,
	}

	// The read above is not atomic with the insert; the unique index on
	// (employee_id, date) settles concurrent check-ins and the mapper
	// reports the loser as AlreadyCheckedIn.
	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("check-in commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-in success",
		zap.String("attendance_id", row.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (AttendanceResponse, error) {
	s.logger.Debug("check-out requested", zap.String("employee_id", employeeID))

	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-out begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := daterange.StartOfDay(now)

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoActiveCheckIn
		}
		return AttendanceResponse{}, err
	}
	if row.CheckOutTime != nil {
		return AttendanceResponse{}, attendanceerrors.ErrNoActiveCheckIn
	}

	hours, minutes := daterange.SplitDuration(row.CheckInTime, now)
	row.CheckOutTime = &now
	row.CheckOutLatitude = &req.Location.Latitude
	row.CheckOutLongitude = &req.Location.Longitude
	row.DurationHours = &hours
	row.DurationMinutes = &minutes
	row.Status = deriveStatus(hours)

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("check-out commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out success",
		zap.String("attendance_id", row.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("duration_hours", hours),
		zap.Int("duration_minutes", minutes),
		zap.String("status", row.Status),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetToday(ctx context.Context, employeeID string) (*AttendanceResponse, error) {
	today := daterange.StartOfDay(time.Now().UTC())

	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := mapToResponse(*row)
	return &resp, nil
}

func (s *service) GetForRange(ctx context.Context, employeeID, startDate, endDate string) ([]AttendanceResponse, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByEmployeeBetween(ctx, employeeID,
		daterange.StartOfDay(start), daterange.EndOfDay(end))
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Query(ctx context.Context, req QueryAttendanceRequest, p query.Params) (query.Page[AttendanceResponse], error) {
	r, err := s.resolveRange(req)
	if err != nil {
		return query.Page[AttendanceResponse]{}, err
	}

	f := Filter{
		EmployeeID: req.EmployeeID,
		Status:     req.Status,
		Start:      &r.Start,
		End:        &r.End,
	}

	page, err := s.repo.FindPage(ctx, f, p)
	if err != nil {
		return query.Page[AttendanceResponse]{}, err
	}
	return mapPage(page), nil
}

func (s *service) GetDepartmentAttendance(ctx context.Context, req DepartmentAttendanceRequest, p query.Params) (query.Page[AttendanceResponse], error) {
	ids, err := s.employees.FindIDsByDepartment(ctx, req.DepartmentID)
	if err != nil {
		return query.Page[AttendanceResponse]{}, err
	}
	if len(ids) == 0 {
		if err := p.Validate(); err != nil {
			return query.Page[AttendanceResponse]{}, err
		}
		return query.NewPage([]AttendanceResponse{}, 0, p), nil
	}

	f := Filter{EmployeeIDs: ids}
	if req.Date != nil && *req.Date != "" {
		day, err := parseDate(*req.Date)
		if err != nil {
			return query.Page[AttendanceResponse]{}, err
		}
		start := daterange.StartOfDay(day)
		end := daterange.EndOfDay(day)
		f.Start = &start
		f.End = &end
	}

	page, err := s.repo.FindPage(ctx, f, p)
	if err != nil {
		return query.Page[AttendanceResponse]{}, err
	}
	return mapPage(page), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	s.logger.Debug("update attendance requested", zap.String("attendance_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update attendance begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	// HR correction applies only the supplied fields; the status is taken
	// as-is, never re-derived from the stored duration.
	if req.Status != nil {
		row.Status = *req.Status
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update attendance commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("update attendance success",
		zap.String("attendance_id", id),
		zap.String("status", row.Status),
	)
	return mapToResponse(*row), nil
}

// resolveRange prefers explicit bounds; otherwise the symbolic period is
// resolved around the current instant. Explicit bounds are not validated
// for ordering, that is the caller's contract.
func (s *service) resolveRange(req QueryAttendanceRequest) (daterange.Range, error) {
	if req.StartDate != "" && req.EndDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			return daterange.Range{}, err
		}
		end, err := parseDate(req.EndDate)
		if err != nil {
			return daterange.Range{}, err
		}
		return daterange.Range{
			Start: daterange.StartOfDay(start),
			End:   daterange.EndOfDay(end),
		}, nil
	}

	period := req.Period
	if period == "" {
		period = string(daterange.PeriodMonth)
	}
	return daterange.Resolve(daterange.Period(period), time.Now().UTC())
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}
	return t.UTC(), nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:          a.ID.String(),
		EmployeeID:  a.EmployeeID.String(),
		Date:        a.Date.Format("2006-01-02"),
		CheckInTime: a.CheckInTime.Format(time.RFC3339),
		CheckInLocation: Location{
			Latitude:  a.CheckInLatitude,
			Longitude: a.CheckInLongitude,
		},
		Status: a.Status,
		Notes:  a.Notes,
	}
	if a.CheckOutTime != nil {
		v := a.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	if a.CheckOutLatitude != nil && a.CheckOutLongitude != nil {
		resp.CheckOutLocation = &Location{
			Latitude:  *a.CheckOutLatitude,
			Longitude: *a.CheckOutLongitude,
		}
	}
	if a.DurationHours != nil && a.DurationMinutes != nil {
		resp.Duration = &DurationResponse{
			Hours:   *a.DurationHours,
			Minutes: *a.DurationMinutes,
		}
	}
	return resp
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}

func mapPage(p query.Page[Attendance]) query.Page[AttendanceResponse] {
	return query.Page[AttendanceResponse]{
		Results:      mapToListResponse(p.Results),
		Page:         p.Page,
		Limit:        p.Limit,
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
	}
}
