package service

import (
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
)

// PeriodMode selects how the dashboard period is expressed.
type PeriodMode string

const (
	PeriodMonth PeriodMode = "month"
	PeriodYear  PeriodMode = "year"
	PeriodRange PeriodMode = "range"
)

// ResolveTargetMonth derives the single target month that drives recurrence
// filtering. Month mode uses the selected month; year and range views (and
// anything else) fall back to the month containing now, since the payment
// plan is always computed for one calendar month.
func ResolveTargetMonth(mode PeriodMode, selected domain.YearMonth, now time.Time) domain.YearMonth {
	if mode == PeriodMonth && !selected.IsZero() {
		return selected
	}
	return domain.YearMonthOf(now)
}
