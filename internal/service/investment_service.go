package service

import (
	"strings"
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentService handles investment record business logic
type InvestmentService struct {
	investmentRepo domain.InvestmentRepository
}

// NewInvestmentService creates a new InvestmentService
func NewInvestmentService(investmentRepo domain.InvestmentRepository) *InvestmentService {
	return &InvestmentService{
		investmentRepo: investmentRepo,
	}
}

// InvestmentInput holds the input for creating or updating an investment
type InvestmentInput struct {
	Date   time.Time
	Asset  string
	Amount decimal.Decimal
	Note   *string
}

func validateInvestmentInput(input *InvestmentInput) error {
	input.Asset = strings.TrimSpace(input.Asset)
	if input.Asset == "" {
		return domain.ErrDescriptionRequired
	}
	if len(input.Asset) > domain.MaxDescriptionLength {
		return domain.ErrDescriptionTooLong
	}
	if input.Date.IsZero() {
		return domain.ErrInvalidDate
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	return nil
}

// CreateInvestment creates a new investment record
func (s *InvestmentService) CreateInvestment(userID uuid.UUID, input InvestmentInput) (*domain.Investment, error) {
	if err := validateInvestmentInput(&input); err != nil {
		return nil, err
	}

	inv := &domain.Investment{
		UserID: userID,
		Date:   input.Date,
		Asset:  input.Asset,
		Amount: input.Amount,
		Note:   input.Note,
	}

	return s.investmentRepo.Create(inv)
}

// ListInvestments retrieves the user's investments for the given period
func (s *InvestmentService) ListInvestments(userID uuid.UUID, filter PeriodFilter) ([]*domain.Investment, error) {
	if from, to, ok := filter.bounds(); ok {
		return s.investmentRepo.ListByDateRange(userID, from, to)
	}
	return s.investmentRepo.ListByUser(userID)
}

// TotalInvested sums the user's investment contributions for the period
func (s *InvestmentService) TotalInvested(userID uuid.UUID, filter PeriodFilter) (decimal.Decimal, error) {
	invs, err := s.ListInvestments(userID, filter)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, inv := range invs {
		total = total.Add(inv.Amount)
	}
	return total, nil
}

// UpdateInvestment updates an existing investment record
func (s *InvestmentService) UpdateInvestment(userID, id uuid.UUID, input InvestmentInput) (*domain.Investment, error) {
	if err := validateInvestmentInput(&input); err != nil {
		return nil, err
	}

	existing, err := s.investmentRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	existing.Date = input.Date
	existing.Asset = input.Asset
	existing.Amount = input.Amount
	existing.Note = input.Note

	return s.investmentRepo.Update(existing)
}

// DeleteInvestment deletes an investment record
func (s *InvestmentService) DeleteInvestment(userID, id uuid.UUID) error {
	return s.investmentRepo.Delete(userID, id)
}
