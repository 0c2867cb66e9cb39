package domain

import (
	"fmt"
	"time"
)

// YearMonth is a calendar month, the unit the whole planning engine works in.
// The zero value is not a valid month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth parses a YYYY-MM string
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// YearMonthOf returns the month containing t
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// String formats the month as YYYY-MM
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// IsZero reports whether ym is the zero value
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// Compare returns -1, 0 or 1 as ym sorts before, equal to or after other
func (ym YearMonth) Compare(other YearMonth) int {
	if ym.Year != other.Year {
		if ym.Year < other.Year {
			return -1
		}
		return 1
	}
	if ym.Month != other.Month {
		if ym.Month < other.Month {
			return -1
		}
		return 1
	}
	return 0
}

// Before reports whether ym is earlier than other
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Compare(other) < 0
}

// After reports whether ym is later than other
func (ym YearMonth) After(other YearMonth) bool {
	return ym.Compare(other) > 0
}

// Next returns the following month
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// LastDay returns the number of days in the month
func (ym YearMonth) LastDay() int {
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateFor returns the date of the given day within the month. Days past the
// end of the month clamp to its last day, so a due day of 31 lands on Feb 28
// (or 29 in leap years).
func (ym YearMonth) DateFor(day int) time.Time {
	if day < 1 {
		day = 1
	}
	if last := ym.LastDay(); day > last {
		day = last
	}
	return time.Date(ym.Year, ym.Month, day, 0, 0, 0, 0, time.UTC)
}

// Start returns the first day of the month
func (ym YearMonth) Start() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the month
func (ym YearMonth) End() time.Time {
	return time.Date(ym.Year, ym.Month, ym.LastDay(), 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t falls inside the month
func (ym YearMonth) Contains(t time.Time) bool {
	return t.Year() == ym.Year && t.Month() == ym.Month
}
