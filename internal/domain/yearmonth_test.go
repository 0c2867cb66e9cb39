package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseYearMonth(t *testing.T) {
	tests := []struct {
		input     string
		wantYear  int
		wantMonth time.Month
	}{
		{"2025-03", 2025, time.March},
		{"2025-12", 2025, time.December},
		{"1999-01", 1999, time.January},
	}

	for _, tt := range tests {
		got, err := ParseYearMonth(tt.input)
		if err != nil {
			t.Fatalf("ParseYearMonth(%q) returned error: %v", tt.input, err)
		}
		if got.Year != tt.wantYear || got.Month != tt.wantMonth {
			t.Errorf("ParseYearMonth(%q) = %v, want %d-%d", tt.input, got, tt.wantYear, tt.wantMonth)
		}
	}
}

func TestParseYearMonth_Invalid(t *testing.T) {
	for _, input := range []string{"", "2025", "2025-13", "2025-00", "03-2025", "not-a-month", "2025/03"} {
		_, err := ParseYearMonth(input)
		if err == nil {
			t.Errorf("ParseYearMonth(%q) expected error, got nil", input)
		}
		if !errors.Is(err, ErrInvalidMonth) {
			t.Errorf("ParseYearMonth(%q) error = %v, want ErrInvalidMonth", input, err)
		}
	}
}

func TestYearMonth_Ordering(t *testing.T) {
	a := YearMonth{2025, time.March}
	b := YearMonth{2025, time.May}
	c := YearMonth{2024, time.December}

	if !a.Before(b) {
		t.Error("2025-03 should be before 2025-05")
	}
	if !b.After(a) {
		t.Error("2025-05 should be after 2025-03")
	}
	if !c.Before(a) {
		t.Error("2024-12 should be before 2025-03")
	}
	if a.Compare(a) != 0 {
		t.Error("a month should compare equal to itself")
	}
}

func TestYearMonth_String(t *testing.T) {
	m := YearMonth{2025, time.March}
	if m.String() != "2025-03" {
		t.Errorf("String() = %s, want 2025-03", m.String())
	}
}

func TestYearMonth_Next_YearBoundary(t *testing.T) {
	next := YearMonth{2025, time.December}.Next()
	if next.Year != 2026 || next.Month != time.January {
		t.Errorf("Next() = %v, want 2026-01", next)
	}
}

func TestYearMonth_DateFor_Clamping(t *testing.T) {
	tests := []struct {
		name    string
		month   YearMonth
		day     int
		wantDay int
	}{
		{"day 31 in February non-leap", YearMonth{2025, time.February}, 31, 28},
		{"day 31 in February leap year", YearMonth{2024, time.February}, 31, 29},
		{"day 31 in April", YearMonth{2025, time.April}, 31, 30},
		{"day within month unchanged", YearMonth{2025, time.January}, 15, 15},
		{"day zero clamps to first", YearMonth{2025, time.January}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.month.DateFor(tt.day)
			if got.Day() != tt.wantDay {
				t.Errorf("DateFor(%d) day = %d, want %d", tt.day, got.Day(), tt.wantDay)
			}
			if got.Year() != tt.month.Year || got.Month() != tt.month.Month {
				t.Errorf("DateFor(%d) = %v, wrong month", tt.day, got)
			}
		})
	}
}

func TestYearMonth_Contains(t *testing.T) {
	m := YearMonth{2025, time.February}
	if !m.Contains(time.Date(2025, time.February, 28, 12, 0, 0, 0, time.UTC)) {
		t.Error("expected Feb 28 to be inside 2025-02")
	}
	if m.Contains(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected Mar 1 to be outside 2025-02")
	}
}
