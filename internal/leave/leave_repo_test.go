package leave_test

import (
	"context"
	"testing"
	"time"

	"go-tams/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupLeaveRepoTest(t *testing.T) (leave.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	return leave.NewRepository(gormDB), mock
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	assert.NoError(t, err)
	return d
}

const overlapCountQuery = `SELECT count\(\*\) FROM "leaves" WHERE employee_id = \$1 AND status <> \$2 AND \(?start_date <= \$3 AND end_date >= \$4\)?`

func TestLeaveRepositoryHasOverlappingPeriod(t *testing.T) {
	employeeID := uuid.NewString()

	t.Run("AdjacentRangeDoesNotOverlap", func(t *testing.T) {
		repo, mock := setupLeaveRepoTest(t)

		// A prior request covers [2024-05-10, 2024-05-12]. The new range
		// starting the very next day must bind end_date >= 2024-05-13, which
		// the prior row (end_date 2024-05-12) fails.
		mock.ExpectQuery(overlapCountQuery).
			WithArgs(employeeID, leave.StatusRejected, "2024-05-14", "2024-05-13").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		overlaps, err := repo.HasOverlappingPeriod(context.Background(), employeeID, day(t, "2024-05-13"), day(t, "2024-05-14"))

		assert.NoError(t, err)
		assert.False(t, overlaps)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SharedEndpointOverlaps", func(t *testing.T) {
		repo, mock := setupLeaveRepoTest(t)

		// Endpoints are inclusive, so a range starting on the prior
		// request's last day (2024-05-12) still counts as a match.
		mock.ExpectQuery(overlapCountQuery).
			WithArgs(employeeID, leave.StatusRejected, "2024-05-13", "2024-05-12").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		overlaps, err := repo.HasOverlappingPeriod(context.Background(), employeeID, day(t, "2024-05-12"), day(t, "2024-05-13"))

		assert.NoError(t, err)
		assert.True(t, overlaps)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RejectedRequestsAreExcluded", func(t *testing.T) {
		repo, mock := setupLeaveRepoTest(t)

		mock.ExpectQuery(overlapCountQuery).
			WithArgs(employeeID, leave.StatusRejected, "2024-05-12", "2024-05-10").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		overlaps, err := repo.HasOverlappingPeriod(context.Background(), employeeID, day(t, "2024-05-10"), day(t, "2024-05-12"))

		assert.NoError(t, err)
		assert.False(t, overlaps)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

const withinYearQuery = `SELECT \* FROM "leaves" WHERE employee_id = \$1 AND status = \$2 AND start_date >= \$3 AND end_date <= \$4`

func TestLeaveRepositoryFindApprovedWithinYear(t *testing.T) {
	employeeID := uuid.NewString()

	t.Run("BindsCalendarYearBounds", func(t *testing.T) {
		repo, mock := setupLeaveRepoTest(t)

		rows := sqlmock.NewRows([]string{"id", "employee_id", "type", "start_date", "end_date", "duration", "status"}).
			AddRow(uuid.NewString(), employeeID, "annual", day(t, "2025-03-10"), day(t, "2025-03-12"), 3, leave.StatusApproved)
		mock.ExpectQuery(withinYearQuery).
			WithArgs(employeeID, leave.StatusApproved, "2025-01-01", "2025-12-31").
			WillReturnRows(rows)

		leaves, err := repo.FindApprovedWithinYear(context.Background(), employeeID, 2025)

		assert.NoError(t, err)
		assert.Len(t, leaves, 1)
		assert.Equal(t, 3, leaves[0].Duration)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("YearSpanningRequestMatchesNeitherYear", func(t *testing.T) {
		repo, mock := setupLeaveRepoTest(t)

		// A request covering 2024-12-30 through 2025-01-02 fails the 2024
		// query (end_date > 2024-12-31) and the 2025 query
		// (start_date < 2025-01-01), so both lookups come back empty.
		emptyRows := func() *sqlmock.Rows {
			return sqlmock.NewRows([]string{"id", "employee_id", "type", "start_date", "end_date", "duration", "status"})
		}

		mock.ExpectQuery(withinYearQuery).
			WithArgs(employeeID, leave.StatusApproved, "2024-01-01", "2024-12-31").
			WillReturnRows(emptyRows())
		mock.ExpectQuery(withinYearQuery).
			WithArgs(employeeID, leave.StatusApproved, "2025-01-01", "2025-12-31").
			WillReturnRows(emptyRows())

		for _, year := range []int{2024, 2025} {
			leaves, err := repo.FindApprovedWithinYear(context.Background(), employeeID, year)
			assert.NoError(t, err)
			assert.Empty(t, leaves)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
