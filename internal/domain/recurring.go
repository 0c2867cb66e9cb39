package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// RecurringItem is a monthly income or expense that repeats between
// StartMonth and EndMonth (inclusive). StartMonth/EndMonth are stored as
// "YYYY-MM" strings as entered by the user; consumers parse them with
// ParseYearMonth and must treat malformed values as "item not active".
type RecurringItem struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Direction   Direction       `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
	DueDay      int             `json:"dueDay"`
	StartMonth  string          `json:"startMonth"`
	EndMonth    *string         `json:"endMonth,omitempty"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type RecurringRepository interface {
	Create(item *RecurringItem) (*RecurringItem, error)
	GetByID(userID, id uuid.UUID) (*RecurringItem, error)
	ListByUser(userID uuid.UUID, activeOnly *bool) ([]*RecurringItem, error)
	Update(item *RecurringItem) (*RecurringItem, error)
	Delete(userID, id uuid.UUID) error
}
