package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestYearMonth_Compare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     YearMonth
		expected int
	}{
		{"same month", YearMonth{2024, time.March}, YearMonth{2024, time.March}, 0},
		{"earlier month same year", YearMonth{2024, time.January}, YearMonth{2024, time.March}, -1},
		{"later year", YearMonth{2025, time.January}, YearMonth{2024, time.December}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Compare(tt.b))
		})
	}
}

func TestYearMonth_MonthsUntil(t *testing.T) {
	tests := []struct {
		name     string
		a, b     YearMonth
		expected int
	}{
		{"same month counts as one", YearMonth{2024, time.January}, YearMonth{2024, time.January}, 1},
		{"jan to mar", YearMonth{2024, time.January}, YearMonth{2024, time.March}, 3},
		{"across year boundary", YearMonth{2024, time.November}, YearMonth{2025, time.February}, 4},
		{"backwards is non-positive", YearMonth{2024, time.March}, YearMonth{2024, time.January}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.MonthsUntil(tt.b))
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2024, time.January))
	assert.Equal(t, 29, DaysInMonth(2024, time.February)) // leap year
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 30, DaysInMonth(2024, time.April))
	assert.Equal(t, 31, DaysInMonth(2024, time.December))
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		months   int
		expected time.Time
	}{
		{"mid month advances same day", date(2024, time.January, 15), 1, date(2024, time.February, 15)},
		{"jan 31 clamps to feb 29 on leap year", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"jan 31 clamps to feb 28", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"clamp does not stick for later months", date(2024, time.January, 31), 2, date(2024, time.March, 31)},
		{"crosses year boundary", date(2024, time.November, 10), 3, date(2025, time.February, 10)},
		{"december to january", date(2024, time.December, 1), 1, date(2025, time.January, 1)},
		{"zero months is identity", date(2024, time.June, 20), 0, date(2024, time.June, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonthsClamped(tt.start, tt.months))
		})
	}
}

func TestMonthsSpanned(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{"same month", date(2024, time.January, 1), date(2024, time.January, 31), 1},
		{"three months inclusive", date(2024, time.January, 15), date(2024, time.March, 15), 3},
		{"twelve month lease", date(2024, time.March, 1), date(2025, time.February, 28), 12},
		{"end before start floors at one", date(2024, time.March, 1), date(2024, time.January, 1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsSpanned(tt.start, tt.end))
		})
	}
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2024, time.May, 3, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, date(2024, time.May, 3), DateOnly(ts))
}
