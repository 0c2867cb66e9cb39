package service

import (
	"errors"
	"strings"
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// maxInvoiceDueDay caps the billing day so the due date exists in every month.
const maxInvoiceDueDay = 28

// CardService handles credit card and invoice business logic
type CardService struct {
	cardRepo    domain.CardRepository
	invoiceRepo domain.InvoiceRepository
	entryRepo   domain.EntryRepository
}

// NewCardService creates a new CardService
func NewCardService(cardRepo domain.CardRepository, invoiceRepo domain.InvoiceRepository, entryRepo domain.EntryRepository) *CardService {
	return &CardService{
		cardRepo:    cardRepo,
		invoiceRepo: invoiceRepo,
		entryRepo:   entryRepo,
	}
}

// CardInput holds the input for creating or updating a credit card
type CardInput struct {
	Name            string
	TotalLimit      decimal.Decimal
	UsedLimit       decimal.Decimal
	DueDay          int
	BestPurchaseDay *int
	IsActive        bool
}

func validateCardInput(input *CardInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return domain.ErrDescriptionRequired
	}
	if len(input.Name) > domain.MaxDescriptionLength {
		return domain.ErrDescriptionTooLong
	}
	if input.TotalLimit.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if input.UsedLimit.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if input.DueDay < 1 || input.DueDay > 31 {
		return domain.ErrInvalidDueDay
	}
	if input.BestPurchaseDay != nil && (*input.BestPurchaseDay < 1 || *input.BestPurchaseDay > 31) {
		return domain.ErrInvalidDueDay
	}
	return nil
}

// CreateCard creates a new credit card
func (s *CardService) CreateCard(userID uuid.UUID, input CardInput) (*domain.CreditCard, error) {
	if err := validateCardInput(&input); err != nil {
		return nil, err
	}

	card := &domain.CreditCard{
		UserID:          userID,
		Name:            input.Name,
		TotalLimit:      input.TotalLimit,
		UsedLimit:       input.UsedLimit,
		DueDay:          input.DueDay,
		BestPurchaseDay: input.BestPurchaseDay,
		IsActive:        input.IsActive,
	}

	return s.cardRepo.Create(card)
}

// GetCard retrieves a single credit card
func (s *CardService) GetCard(userID, id uuid.UUID) (*domain.CreditCard, error) {
	return s.cardRepo.GetByID(userID, id)
}

// ListCards retrieves all of the user's credit cards
func (s *CardService) ListCards(userID uuid.UUID) ([]*domain.CreditCard, error) {
	return s.cardRepo.ListByUser(userID)
}

// UpdateCard updates an existing credit card
func (s *CardService) UpdateCard(userID, id uuid.UUID, input CardInput) (*domain.CreditCard, error) {
	if err := validateCardInput(&input); err != nil {
		return nil, err
	}

	existing, err := s.cardRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.TotalLimit = input.TotalLimit
	existing.UsedLimit = input.UsedLimit
	existing.DueDay = input.DueDay
	existing.BestPurchaseDay = input.BestPurchaseDay
	existing.IsActive = input.IsActive

	return s.cardRepo.Update(existing)
}

// DeleteCard deletes a credit card
func (s *CardService) DeleteCard(userID, id uuid.UUID) error {
	return s.cardRepo.Delete(userID, id)
}

// invoiceDueDate returns the invoice due date for a reference month: the
// card's due day, capped at 28, in the following month.
func invoiceDueDate(month domain.YearMonth, dueDay int) time.Time {
	day := dueDay
	if day > maxInvoiceDueDay {
		day = maxInvoiceDueDay
	}
	return month.Next().DateFor(day)
}

// ComputeInvoice totals the card owner's credit-method expense entries for
// the reference month and upserts the card's invoice for that month. An
// existing invoice keeps its status and paid amount; only the total and the
// composing entries are refreshed.
func (s *CardService) ComputeInvoice(userID, cardID uuid.UUID, month domain.YearMonth) (*domain.CardInvoice, error) {
	card, err := s.cardRepo.GetByID(userID, cardID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListByDateRange(userID, month.Start(), month.End())
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	entryIDs := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		if entry.Direction != domain.DirectionExpense || entry.Method != domain.MethodCredit {
			continue
		}
		total = total.Add(entry.Amount)
		entryIDs = append(entryIDs, entry.ID)
	}

	existing, err := s.invoiceRepo.GetByCardAndMonth(userID, cardID, month.String())
	if err != nil && !errors.Is(err, domain.ErrInvoiceNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.TotalAmount = total
		existing.EntryIDs = entryIDs
		updated, err := s.invoiceRepo.Update(existing)
		if err != nil {
			return nil, err
		}
		log.Info().
			Str("card_id", cardID.String()).
			Str("month", month.String()).
			Str("total", total.StringFixed(2)).
			Msg("Card invoice recalculated")
		return updated, nil
	}

	invoice := &domain.CardInvoice{
		CardID:         cardID,
		UserID:         userID,
		ReferenceMonth: month.String(),
		TotalAmount:    total,
		PaidAmount:     decimal.Zero,
		DueDate:        invoiceDueDate(month, card.DueDay),
		Status:         domain.InvoiceOpen,
		EntryIDs:       entryIDs,
	}

	created, err := s.invoiceRepo.Create(invoice)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("card_id", cardID.String()).
		Str("month", month.String()).
		Str("total", total.StringFixed(2)).
		Msg("Card invoice created")
	return created, nil
}

// ListInvoices retrieves a card's invoices, optionally filtered to one
// reference month, newest month first.
func (s *CardService) ListInvoices(userID, cardID uuid.UUID, month *domain.YearMonth) ([]*domain.CardInvoice, error) {
	if _, err := s.cardRepo.GetByID(userID, cardID); err != nil {
		return nil, err
	}
	var filter *string
	if month != nil {
		m := month.String()
		filter = &m
	}
	return s.invoiceRepo.ListByCard(userID, cardID, filter)
}

// UpcomingInvoiceAlerts returns the user's open invoices due within the next
// daysAhead days, starting today.
func (s *CardService) UpcomingInvoiceAlerts(userID uuid.UUID, daysAhead int, now time.Time) ([]*domain.CardInvoice, error) {
	if daysAhead < 1 {
		daysAhead = 7
	}
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, daysAhead)
	return s.invoiceRepo.ListOpenDueBetween(userID, from, to)
}
