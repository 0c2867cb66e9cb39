package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Investment records money moved into an asset (savings, stocks, crypto...).
// No return modeling: the record is the contribution, nothing more.
type Investment struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Date      time.Time       `json:"date"`
	Asset     string          `json:"asset"`
	Amount    decimal.Decimal `json:"amount"`
	Note      *string         `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type InvestmentRepository interface {
	Create(inv *Investment) (*Investment, error)
	GetByID(userID, id uuid.UUID) (*Investment, error)
	ListByUser(userID uuid.UUID) ([]*Investment, error)
	ListByDateRange(userID uuid.UUID, from, to time.Time) ([]*Investment, error)
	Update(inv *Investment) (*Investment, error)
	Delete(userID, id uuid.UUID) error
}
