package service

import (
	"sort"
	"strings"
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryService handles ledger entry business logic
type EntryService struct {
	entryRepo domain.EntryRepository
}

// NewEntryService creates a new EntryService
func NewEntryService(entryRepo domain.EntryRepository) *EntryService {
	return &EntryService{
		entryRepo: entryRepo,
	}
}

// EntryInput holds the input for creating or updating a ledger entry
type EntryInput struct {
	Date        time.Time
	Description string
	Category    string
	Direction   domain.Direction
	Amount      decimal.Decimal
	Method      domain.PaymentMethod
	Note        *string
}

func validateEntryInput(input *EntryInput) error {
	input.Description = strings.TrimSpace(input.Description)
	if input.Description == "" {
		return domain.ErrDescriptionRequired
	}
	if len(input.Description) > domain.MaxDescriptionLength {
		return domain.ErrDescriptionTooLong
	}
	if input.Date.IsZero() {
		return domain.ErrInvalidDate
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if input.Direction != domain.DirectionIncome && input.Direction != domain.DirectionExpense {
		return domain.ErrInvalidDirection
	}
	if input.Method == "" {
		input.Method = domain.MethodOther
	}
	if !domain.ValidPaymentMethod(input.Method) {
		return domain.ErrInvalidMethod
	}
	return nil
}

// CreateEntry creates a new manual ledger entry
func (s *EntryService) CreateEntry(userID uuid.UUID, input EntryInput) (*domain.LedgerEntry, error) {
	if err := validateEntryInput(&input); err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		UserID:      userID,
		Date:        input.Date,
		Description: input.Description,
		Category:    strings.TrimSpace(input.Category),
		Direction:   input.Direction,
		Amount:      input.Amount,
		Method:      input.Method,
		Origin:      domain.OriginManual,
		Note:        input.Note,
	}

	return s.entryRepo.Create(entry)
}

// GetEntryByID retrieves a ledger entry by ID
func (s *EntryService) GetEntryByID(userID, id uuid.UUID) (*domain.LedgerEntry, error) {
	return s.entryRepo.GetByID(userID, id)
}

// UpdateEntry updates an existing ledger entry
func (s *EntryService) UpdateEntry(userID, id uuid.UUID, input EntryInput) (*domain.LedgerEntry, error) {
	if err := validateEntryInput(&input); err != nil {
		return nil, err
	}

	existing, err := s.entryRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	existing.Date = input.Date
	existing.Description = input.Description
	existing.Category = strings.TrimSpace(input.Category)
	existing.Direction = input.Direction
	existing.Amount = input.Amount
	existing.Method = input.Method
	existing.Note = input.Note

	return s.entryRepo.Update(existing)
}

// DeleteEntry deletes a ledger entry
func (s *EntryService) DeleteEntry(userID, id uuid.UUID) error {
	return s.entryRepo.Delete(userID, id)
}

// PeriodFilter narrows queries to a month, a year, or a date range. The zero
// value (or an unknown mode) means no filtering.
type PeriodFilter struct {
	Mode  PeriodMode
	Month domain.YearMonth
	Year  int
	From  time.Time
	To    time.Time
}

// bounds resolves the filter to an inclusive [from, to] date range.
func (f PeriodFilter) bounds() (from, to time.Time, ok bool) {
	switch f.Mode {
	case PeriodMonth:
		if f.Month.IsZero() {
			return time.Time{}, time.Time{}, false
		}
		return f.Month.Start(), f.Month.End(), true
	case PeriodYear:
		if f.Year == 0 {
			return time.Time{}, time.Time{}, false
		}
		return time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(f.Year, time.December, 31, 0, 0, 0, 0, time.UTC), true
	case PeriodRange:
		if f.From.IsZero() || f.To.IsZero() {
			return time.Time{}, time.Time{}, false
		}
		return f.From, f.To, true
	}
	return time.Time{}, time.Time{}, false
}

// ListEntries retrieves the user's ledger entries for the given period
func (s *EntryService) ListEntries(userID uuid.UUID, filter PeriodFilter) ([]*domain.LedgerEntry, error) {
	if from, to, ok := filter.bounds(); ok {
		return s.entryRepo.ListByDateRange(userID, from, to)
	}
	return s.entryRepo.ListByUser(userID)
}

// CategoryTotal is one category's share of a period summary
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// PeriodSummary aggregates a period's entries
type PeriodSummary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetBalance   decimal.Decimal `json:"netBalance"`
	ByCategory   []CategoryTotal `json:"byCategory"`
}

// Summarize totals the period's entries and breaks expenses down by
// category, largest first.
func (s *EntryService) Summarize(userID uuid.UUID, filter PeriodFilter) (*PeriodSummary, error) {
	entries, err := s.ListEntries(userID, filter)
	if err != nil {
		return nil, err
	}

	summary := &PeriodSummary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	byCategory := make(map[string]decimal.Decimal)

	for _, entry := range entries {
		switch entry.Direction {
		case domain.DirectionIncome:
			summary.TotalIncome = summary.TotalIncome.Add(entry.Amount)
		case domain.DirectionExpense:
			summary.TotalExpense = summary.TotalExpense.Add(entry.Amount)
			category := entry.Category
			if category == "" {
				category = "Uncategorized"
			}
			byCategory[category] = byCategory[category].Add(entry.Amount)
		}
	}
	summary.NetBalance = summary.TotalIncome.Sub(summary.TotalExpense)

	for category, total := range byCategory {
		summary.ByCategory = append(summary.ByCategory, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		if !summary.ByCategory[i].Total.Equal(summary.ByCategory[j].Total) {
			return summary.ByCategory[i].Total.GreaterThan(summary.ByCategory[j].Total)
		}
		return summary.ByCategory[i].Category < summary.ByCategory[j].Category
	})

	return summary, nil
}
