package service

import (
	"fmt"
	"strings"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RecurringService handles recurring item business logic
type RecurringService struct {
	recurringRepo domain.RecurringRepository
	entryRepo     domain.EntryRepository
}

// NewRecurringService creates a new RecurringService
func NewRecurringService(recurringRepo domain.RecurringRepository, entryRepo domain.EntryRepository) *RecurringService {
	return &RecurringService{
		recurringRepo: recurringRepo,
		entryRepo:     entryRepo,
	}
}

// RecurringInput holds the input for creating or updating a recurring item
type RecurringInput struct {
	Description string
	Category    string
	Direction   domain.Direction
	Amount      decimal.Decimal
	DueDay      int
	StartMonth  string
	EndMonth    *string
	IsActive    bool
}

func validateRecurringInput(input *RecurringInput) error {
	input.Description = strings.TrimSpace(input.Description)
	if input.Description == "" {
		return domain.ErrDescriptionRequired
	}
	if len(input.Description) > domain.MaxDescriptionLength {
		return domain.ErrDescriptionTooLong
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	if input.Direction != domain.DirectionIncome && input.Direction != domain.DirectionExpense {
		return domain.ErrInvalidDirection
	}

	if input.DueDay == 0 {
		input.DueDay = 1 // Default to 1 if not provided
	}
	if input.DueDay < 1 || input.DueDay > 31 {
		return domain.ErrInvalidDueDay
	}

	start, err := domain.ParseYearMonth(input.StartMonth)
	if err != nil {
		return err
	}
	if input.EndMonth != nil {
		end, err := domain.ParseYearMonth(*input.EndMonth)
		if err != nil {
			return err
		}
		if end.Before(start) {
			return domain.ErrInvalidInput
		}
	}

	return nil
}

// CreateRecurring creates a new recurring item
func (s *RecurringService) CreateRecurring(userID uuid.UUID, input RecurringInput) (*domain.RecurringItem, error) {
	if err := validateRecurringInput(&input); err != nil {
		return nil, err
	}

	item := &domain.RecurringItem{
		UserID:      userID,
		Description: input.Description,
		Category:    strings.TrimSpace(input.Category),
		Direction:   input.Direction,
		Amount:      input.Amount,
		DueDay:      input.DueDay,
		StartMonth:  input.StartMonth,
		EndMonth:    input.EndMonth,
		IsActive:    true,
	}

	return s.recurringRepo.Create(item)
}

// ListRecurring retrieves all recurring items for a user
func (s *RecurringService) ListRecurring(userID uuid.UUID, activeOnly *bool) ([]*domain.RecurringItem, error) {
	return s.recurringRepo.ListByUser(userID, activeOnly)
}

// GetRecurringByID retrieves a recurring item by ID
func (s *RecurringService) GetRecurringByID(userID, id uuid.UUID) (*domain.RecurringItem, error) {
	return s.recurringRepo.GetByID(userID, id)
}

// UpdateRecurring updates an existing recurring item
func (s *RecurringService) UpdateRecurring(userID, id uuid.UUID, input RecurringInput) (*domain.RecurringItem, error) {
	if err := validateRecurringInput(&input); err != nil {
		return nil, err
	}

	existing, err := s.recurringRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	existing.Description = input.Description
	existing.Category = strings.TrimSpace(input.Category)
	existing.Direction = input.Direction
	existing.Amount = input.Amount
	existing.DueDay = input.DueDay
	existing.StartMonth = input.StartMonth
	existing.EndMonth = input.EndMonth
	existing.IsActive = input.IsActive

	return s.recurringRepo.Update(existing)
}

// DeleteRecurring deletes a recurring item
func (s *RecurringService) DeleteRecurring(userID, id uuid.UUID) error {
	return s.recurringRepo.Delete(userID, id)
}

// ToggleActive flips the active flag of a recurring item
func (s *RecurringService) ToggleActive(userID, id uuid.UUID) (*domain.RecurringItem, error) {
	item, err := s.recurringRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	item.IsActive = !item.IsActive
	return s.recurringRepo.Update(item)
}

// GenerateResult reports the outcome of one auto-generation run
type GenerateResult struct {
	Generated int
	Skipped   int
	Errors    []string
}

// GenerateEntries materializes the user's active recurring items into ledger
// entries for the target month. An entry is skipped when a recurring-origin
// entry with the same description already exists in that month; the due day
// is clamped to the month's last day. Individual failures are collected and
// do not stop the run.
func (s *RecurringService) GenerateEntries(userID uuid.UUID, target domain.YearMonth) (*GenerateResult, error) {
	items, err := s.recurringRepo.ListByUser(userID, nil)
	if err != nil {
		return nil, err
	}

	active := SelectActive(items, domain.DirectionIncome, target)
	active = append(active, SelectActive(items, domain.DirectionExpense, target)...)

	result := &GenerateResult{}
	for _, item := range active {
		exists, err := s.entryRepo.ExistsGenerated(userID, item.Description, target)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", item.Description, err))
			continue
		}
		if exists {
			result.Skipped++
			continue
		}

		note := "Generated automatically from: " + item.Description
		entry := &domain.LedgerEntry{
			UserID:      userID,
			Date:        target.DateFor(item.DueDay),
			Description: item.Description,
			Category:    item.Category,
			Direction:   item.Direction,
			Amount:      item.Amount,
			Method:      domain.MethodBankSlip,
			Origin:      domain.OriginRecurring,
			Note:        &note,
		}
		if _, err := s.entryRepo.Create(entry); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", item.Description, err))
			continue
		}
		result.Generated++
	}

	if result.Generated > 0 || len(result.Errors) > 0 {
		log.Info().
			Str("user_id", userID.String()).
			Str("month", target.String()).
			Int("generated", result.Generated).
			Int("skipped", result.Skipped).
			Int("errors", len(result.Errors)).
			Msg("Generated entries from recurring items")
	}

	return result, nil
}
