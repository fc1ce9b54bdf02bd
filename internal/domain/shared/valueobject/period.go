package valueobject

import (
	"fmt"
	"time"
)

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the YearMonth containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Compare returns -1, 0 or 1 depending on whether ym is before, equal to
// or after other.
func (ym YearMonth) Compare(other YearMonth) int {
	a := ym.Year*12 + int(ym.Month)
	b := other.Year*12 + int(other.Month)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MonthsUntil returns the number of whole months from ym to other,
// counting both endpoints. A negative result means other is earlier.
func (ym YearMonth) MonthsUntil(other YearMonth) int {
	return (other.Year-ym.Year)*12 + int(other.Month) - int(ym.Month) + 1
}

// String returns the YYYY-MM representation.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonthsClamped advances t by n calendar months, clamping the day of
// month to the length of the target month (Jan 31 + 1 month = Feb 28/29).
// time.AddDate is not used because it normalizes overflow into the next
// month instead of clamping.
func AddMonthsClamped(t time.Time, n int) time.Time {
	totalMonths := t.Year()*12 + int(t.Month()) - 1 + n
	year := totalMonths / 12
	month := time.Month(totalMonths%12 + 1)

	day := t.Day()
	if max := DaysInMonth(year, month); day > max {
		day = max
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// MonthsSpanned counts the calendar months covered by [start, end]
// inclusive, with a minimum of 1.
func MonthsSpanned(start, end time.Time) int {
	months := YearMonthOf(start).MonthsUntil(YearMonthOf(end))
	if months < 1 {
		return 1
	}
	return months
}

// DateOnly truncates t to midnight UTC. Contract and transaction dates are
// compared at day granularity.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
