package attendance

import (
	"errors"

	attendanceerrors "go-tams/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates store failures into business errors. A
// unique violation on (employee_id, date) means a concurrent check-in won
// the race, so it surfaces as AlreadyCheckedIn just like the pre-read path.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrAttendanceNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendances_employee_date" {
			return attendanceerrors.ErrAlreadyCheckedIn
		}
	}

	return err
}
