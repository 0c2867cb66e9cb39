package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodPix      PaymentMethod = "pix"
	MethodDebit    PaymentMethod = "debit"
	MethodCredit   PaymentMethod = "credit"
	MethodCash     PaymentMethod = "cash"
	MethodBankSlip PaymentMethod = "bank_slip"
	MethodOther    PaymentMethod = "other"
)

// ValidPaymentMethod reports whether m is one of the known payment methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodPix, MethodDebit, MethodCredit, MethodCash, MethodBankSlip, MethodOther:
		return true
	}
	return false
}

type EntryOrigin string

const (
	OriginManual    EntryOrigin = "manual"
	OriginRecurring EntryOrigin = "recurring"
	OriginImport    EntryOrigin = "import"
)

// LedgerEntry is a single dated income or expense record.
type LedgerEntry struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Direction   Direction       `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	Origin      EntryOrigin     `json:"origin"`
	Note        *string         `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type EntryRepository interface {
	Create(entry *LedgerEntry) (*LedgerEntry, error)
	GetByID(userID, id uuid.UUID) (*LedgerEntry, error)
	ListByUser(userID uuid.UUID) ([]*LedgerEntry, error)
	ListByDateRange(userID uuid.UUID, from, to time.Time) ([]*LedgerEntry, error)
	Update(entry *LedgerEntry) (*LedgerEntry, error)
	Delete(userID, id uuid.UUID) error
	// ExistsGenerated reports whether a recurring-origin entry with the given
	// description already exists in the given month. It is the de-duplication
	// key for monthly auto-generation.
	ExistsGenerated(userID uuid.UUID, description string, month YearMonth) (bool, error)
}
