package daterange

import (
	"net/http"
	"time"

	"go-tams/internal/shared/apperror"
)

// Period is a symbolic calendar range relative to a reference instant.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

var ErrInvalidPeriod = apperror.New(
	apperror.CodeInvalidInput,
	"invalid period, expected one of: today, week, month, year",
	http.StatusBadRequest,
)

// Range bounds whole calendar days at second granularity.
type Range struct {
	Start time.Time
	End   time.Time
}

// StartOfDay zeroes the time-of-day to 00:00:00.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay sets the time-of-day to 23:59:59.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// Resolve converts a symbolic period into concrete day bounds around now.
// Weeks run Sunday through Saturday. Callers supplying explicit bounds skip
// this entirely; ordering of explicit bounds is the caller's responsibility.
func Resolve(period Period, now time.Time) (Range, error) {
	switch period {
	case PeriodToday:
		return Range{Start: StartOfDay(now), End: EndOfDay(now)}, nil
	case PeriodWeek:
		start := now.AddDate(0, 0, -int(now.Weekday()))
		end := start.AddDate(0, 0, 6)
		return Range{Start: StartOfDay(start), End: EndOfDay(end)}, nil
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		// day 0 of the next month is the last day of this one
		end := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: EndOfDay(end)}, nil
	case PeriodYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), time.December, 31, 23, 59, 59, 0, now.Location())
		return Range{Start: start, End: end}, nil
	default:
		return Range{}, ErrInvalidPeriod
	}
}

// SplitDuration floors the elapsed time between two instants into whole
// hours and remainder minutes. No rounding, no carry into days.
func SplitDuration(from, to time.Time) (hours, minutes int) {
	d := to.Sub(from)
	hours = int(d / time.Hour)
	minutes = int((d % time.Hour) / time.Minute)
	return hours, minutes
}

// InclusiveDays counts the calendar days covered by [start, end], both ends
// included.
func InclusiveDays(start, end time.Time) int {
	return int(StartOfDay(end).Sub(StartOfDay(start)).Hours()/24) + 1
}
