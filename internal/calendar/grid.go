package calendar

import (
	"errors"
	"time"
)

var (
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
	ErrInvalidDay   = errors.New("day out of range")
)

// MonthGrid lays out one month as leading blank cells followed by day cells.
// Blanks holds 1..B where B is the weekday of the 1st (Sunday = 0).
type MonthGrid struct {
	Year   int
	Month  time.Month
	Blanks []int
	Days   []int
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysIn returns the number of days in the month, or 0 for an invalid month.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	case time.January, time.March, time.May, time.July, time.August, time.October, time.December:
		return 31
	default:
		return 0
	}
}

// BuildMonthGrid returns the blank and day cells for a month.
func BuildMonthGrid(year int, month time.Month) (MonthGrid, error) {
	if month < time.January || month > time.December {
		return MonthGrid{}, ErrInvalidMonth
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	g := MonthGrid{
		Year:   year,
		Month:  month,
		Blanks: sequence(int(first)),
		Days:   sequence(DaysIn(year, month)),
	}
	return g, nil
}

// Weeks arranges the grid into rows of seven. Blank cells are 0 and the last
// row is padded with 0.
func (g MonthGrid) Weeks() [][7]int {
	cells := make([]int, 0, len(g.Blanks)+len(g.Days))
	cells = append(cells, make([]int, len(g.Blanks))...)
	cells = append(cells, g.Days...)

	var weeks [][7]int
	for i := 0; i < len(cells); i += 7 {
		var w [7]int
		copy(w[:], cells[i:min(i+7, len(cells))])
		weeks = append(weeks, w)
	}
	return weeks
}

// NextMonth returns the month after (year, month), rolling into the next year.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// PrevMonth returns the month before (year, month), rolling into the previous year.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

func sequence(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i + 1
	}
	return s
}
