package service

import (
	"sort"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AllocationService computes the monthly payment plan: which income covers
// which recurring expense, and how the month looks overall.
type AllocationService struct {
	recurringRepo domain.RecurringRepository
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(recurringRepo domain.RecurringRepository) *AllocationService {
	return &AllocationService{
		recurringRepo: recurringRepo,
	}
}

// PlanMonth loads the user's recurring items and produces the allocation
// report for the target month. Stored items are never mutated; the engine
// works on fresh projections every run.
func (s *AllocationService) PlanMonth(userID uuid.UUID, target domain.YearMonth) (*domain.MonthlyAllocationReport, error) {
	items, err := s.recurringRepo.ListByUser(userID, nil)
	if err != nil {
		return nil, err
	}

	incomes := SelectActive(items, domain.DirectionIncome, target)
	expenses := SelectActive(items, domain.DirectionExpense, target)

	report := Allocate(incomes, expenses)
	report.Month = target
	return report, nil
}

// SelectActive returns the items of the given direction that are active in
// the target month: the active toggle is on, startMonth <= target and, when
// an endMonth is set, target <= endMonth. Items whose month bounds cannot be
// parsed are skipped with a warning; a bad record never aborts the run.
// Storage order is preserved.
func SelectActive(items []*domain.RecurringItem, direction domain.Direction, target domain.YearMonth) []*domain.RecurringItem {
	var selected []*domain.RecurringItem
	for _, item := range items {
		if !item.IsActive || item.Direction != direction {
			continue
		}

		start, err := domain.ParseYearMonth(item.StartMonth)
		if err != nil {
			log.Warn().Err(err).
				Str("item_id", item.ID.String()).
				Str("description", item.Description).
				Msg("Skipping recurring item with malformed start month")
			continue
		}
		if target.Before(start) {
			continue
		}

		if item.EndMonth != nil {
			end, err := domain.ParseYearMonth(*item.EndMonth)
			if err != nil {
				log.Warn().Err(err).
					Str("item_id", item.ID.String()).
					Str("description", item.Description).
					Msg("Skipping recurring item with malformed end month")
				continue
			}
			if target.After(end) {
				continue
			}
		}

		selected = append(selected, item)
	}
	return selected
}

// Allocate greedily assigns each expense to an income source and summarizes
// the month. Expenses are processed in ascending due-day order, one pass, no
// backtracking. For each expense the search runs in three tiers over the
// incomes (also in ascending due-day order):
//
//  1. first income already received by the due day with enough balance left
//  2. first income with enough balance left, regardless of timing
//  3. the earliest income, even if that drives its balance negative
//
// Only when there are no incomes at all does an expense stay unassigned.
// The tier order and "first match" tie-break are load-bearing: the report's
// contents depend on them.
func Allocate(incomes, expenses []*domain.RecurringItem) *domain.MonthlyAllocationReport {
	working := make([]*domain.WorkingIncome, len(incomes))
	for i, in := range incomes {
		working[i] = &domain.WorkingIncome{
			Description:      in.Description,
			DueDay:           in.DueDay,
			Amount:           in.Amount,
			RemainingBalance: in.Amount,
		}
	}
	sort.SliceStable(working, func(i, j int) bool {
		return working[i].DueDay < working[j].DueDay
	})

	sortedExpenses := make([]*domain.RecurringItem, len(expenses))
	copy(sortedExpenses, expenses)
	sort.SliceStable(sortedExpenses, func(i, j int) bool {
		return sortedExpenses[i].DueDay < sortedExpenses[j].DueDay
	})

	allocations := make([]*domain.AllocationResult, 0, len(sortedExpenses))
	for _, exp := range sortedExpenses {
		var chosen *domain.WorkingIncome

		// Tier 1: income already received by the due day, with enough balance
		for _, in := range working {
			if in.DueDay <= exp.DueDay && in.RemainingBalance.GreaterThanOrEqual(exp.Amount) {
				chosen = in
				break
			}
		}
		// Tier 2: any income with enough balance
		if chosen == nil {
			for _, in := range working {
				if in.RemainingBalance.GreaterThanOrEqual(exp.Amount) {
					chosen = in
					break
				}
			}
		}
		// Tier 3: earliest income, balance allowed to go negative
		if chosen == nil && len(working) > 0 {
			chosen = working[0]
		}

		result := &domain.AllocationResult{
			ExpenseDescription: exp.Description,
			DueDay:             exp.DueDay,
			Amount:             exp.Amount,
			Category:           exp.Category,
			Timing:             domain.TimingPaidLate,
		}
		if chosen != nil {
			chosen.RemainingBalance = chosen.RemainingBalance.Sub(exp.Amount)
			result.AssignedIncome = &domain.AssignedIncome{
				Description: chosen.Description,
				DueDay:      chosen.DueDay,
			}
			if chosen.DueDay <= exp.DueDay {
				result.Timing = domain.TimingOnTime
			}
		}
		allocations = append(allocations, result)
	}

	totalIncome := decimal.Zero
	for _, in := range incomes {
		totalIncome = totalIncome.Add(in.Amount)
	}
	totalExpense := decimal.Zero
	for _, exp := range expenses {
		totalExpense = totalExpense.Add(exp.Amount)
	}
	netBalance := totalIncome.Sub(totalExpense)

	return &domain.MonthlyAllocationReport{
		Incomes:      working,
		Allocations:  allocations,
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		NetBalance:   netBalance,
		Verdict:      domain.VerdictFor(netBalance),
	}
}
