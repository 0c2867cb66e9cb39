package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditCard tracks one credit card's limits and billing cycle. The available
// limit is always derived from total minus used, never stored independently.
type CreditCard struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	Name            string          `json:"name"`
	TotalLimit      decimal.Decimal `json:"totalLimit"`
	UsedLimit       decimal.Decimal `json:"usedLimit"`
	DueDay          int             `json:"dueDay"`
	BestPurchaseDay *int            `json:"bestPurchaseDay,omitempty"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// AvailableLimit returns the credit still available on the card
func (c *CreditCard) AvailableLimit() decimal.Decimal {
	return c.TotalLimit.Sub(c.UsedLimit)
}

type InvoiceStatus string

const (
	InvoiceOpen    InvoiceStatus = "open"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// CardInvoice is one card's bill for a reference month, totaled from the
// credit-method expense entries of that month. The due date falls in the
// following month.
type CardInvoice struct {
	ID             uuid.UUID       `json:"id"`
	CardID         uuid.UUID       `json:"cardId"`
	UserID         uuid.UUID       `json:"userId"`
	ReferenceMonth string          `json:"referenceMonth"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	DueDate        time.Time       `json:"dueDate"`
	Status         InvoiceStatus   `json:"status"`
	EntryIDs       []uuid.UUID     `json:"entryIds"`
	CreatedAt      time.Time       `json:"createdAt"`
	PaidAt         *time.Time      `json:"paidAt,omitempty"`
}

type CardRepository interface {
	Create(card *CreditCard) (*CreditCard, error)
	GetByID(userID, id uuid.UUID) (*CreditCard, error)
	ListByUser(userID uuid.UUID) ([]*CreditCard, error)
	Update(card *CreditCard) (*CreditCard, error)
	Delete(userID, id uuid.UUID) error
}

type InvoiceRepository interface {
	Create(invoice *CardInvoice) (*CardInvoice, error)
	GetByCardAndMonth(userID, cardID uuid.UUID, month string) (*CardInvoice, error)
	ListByCard(userID, cardID uuid.UUID, month *string) ([]*CardInvoice, error)
	Update(invoice *CardInvoice) (*CardInvoice, error)
	// ListOpenDueBetween returns the user's open invoices with due dates in
	// [from, to] inclusive.
	ListOpenDueBetween(userID uuid.UUID, from, to time.Time) ([]*CardInvoice, error)
}
