package domain

import "github.com/shopspring/decimal"

// WorkingIncome is the allocation engine's mutable projection of an income
// item. RemainingBalance starts at Amount and is drawn down as expenses are
// assigned; it only lives for the duration of one allocation run.
type WorkingIncome struct {
	Description      string          `json:"description"`
	DueDay           int             `json:"dueDay"`
	Amount           decimal.Decimal `json:"amount"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

type TimingFlag string

const (
	// TimingOnTime means the assigned income arrives on or before the
	// expense's due day.
	TimingOnTime TimingFlag = "on_time"
	// TimingPaidLate means the assigned income arrives after the expense is
	// due.
	TimingPaidLate TimingFlag = "paid_late"
)

// AssignedIncome identifies the income chosen to cover an expense.
type AssignedIncome struct {
	Description string `json:"description"`
	DueDay      int    `json:"dueDay"`
}

// AllocationResult is one row of the payment plan: an expense and the income
// it was matched to. AssignedIncome is nil when no income exists at all.
type AllocationResult struct {
	ExpenseDescription string          `json:"expenseDescription"`
	DueDay             int             `json:"dueDay"`
	Amount             decimal.Decimal `json:"amount"`
	Category           string          `json:"category"`
	AssignedIncome     *AssignedIncome `json:"assignedIncome,omitempty"`
	Timing             TimingFlag      `json:"timing"`
}

type Verdict string

const (
	VerdictHealthy  Verdict = "healthy"
	VerdictTight    Verdict = "tight"
	VerdictNegative Verdict = "negative"
)

// healthyThreshold is the net balance at or above which a month is healthy.
var healthyThreshold = decimal.NewFromInt(1000)

// VerdictFor classifies a month's net balance. Thresholds are applied in
// order, first match wins: >= 1000 healthy, > 0 tight, everything else
// (including exactly zero) negative.
func VerdictFor(netBalance decimal.Decimal) Verdict {
	if netBalance.GreaterThanOrEqual(healthyThreshold) {
		return VerdictHealthy
	}
	if netBalance.GreaterThan(decimal.Zero) {
		return VerdictTight
	}
	return VerdictNegative
}

// Advice returns the human-readable reading of the verdict.
func (v Verdict) Advice() string {
	switch v {
	case VerdictHealthy:
		return "Healthy month. Room to invest or make a planned purchase."
	case VerdictTight:
		return "Tight month. Any extra spending will hit the card or your investments."
	case VerdictNegative:
		return "Month in the red. Cut variable spending or renegotiate bills."
	}
	return ""
}

// MonthlyAllocationReport is the output of one allocation run for a target
// month. Incomes and Allocations are ordered by ascending due day and must be
// rendered in that order.
type MonthlyAllocationReport struct {
	Month        YearMonth           `json:"month"`
	Incomes      []*WorkingIncome    `json:"incomes"`
	Allocations  []*AllocationResult `json:"allocations"`
	TotalIncome  decimal.Decimal     `json:"totalIncome"`
	TotalExpense decimal.Decimal     `json:"totalExpense"`
	NetBalance   decimal.Decimal     `json:"netBalance"`
	Verdict      Verdict             `json:"verdict"`
}
