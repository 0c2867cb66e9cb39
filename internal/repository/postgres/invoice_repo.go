package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvoiceRepository implements domain.InvoiceRepository using PostgreSQL
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

const invoiceColumns = `id, card_id, user_id, reference_month, total_amount, paid_amount, due_date, status, entry_ids, created_at, paid_at`

// Create creates a new card invoice
func (r *InvoiceRepository) Create(invoice *domain.CardInvoice) (*domain.CardInvoice, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO card_invoices (card_id, user_id, reference_month, total_amount, paid_amount, due_date, status, entry_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+invoiceColumns,
		invoice.CardID, invoice.UserID, invoice.ReferenceMonth, invoice.TotalAmount,
		invoice.PaidAmount, invoice.DueDate, invoice.Status, encodeEntryIDs(invoice.EntryIDs))
	return scanInvoice(row)
}

// GetByCardAndMonth retrieves a card's invoice for a reference month
func (r *InvoiceRepository) GetByCardAndMonth(userID, cardID uuid.UUID, month string) (*domain.CardInvoice, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+invoiceColumns+` FROM card_invoices
		WHERE user_id = $1 AND card_id = $2 AND reference_month = $3`, userID, cardID, month)
	invoice, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return invoice, nil
}

// ListByCard retrieves a card's invoices, newest reference month first
func (r *InvoiceRepository) ListByCard(userID, cardID uuid.UUID, month *string) ([]*domain.CardInvoice, error) {
	ctx := context.Background()
	query := `SELECT ` + invoiceColumns + ` FROM card_invoices WHERE user_id = $1 AND card_id = $2`
	args := []interface{}{userID, cardID}
	if month != nil {
		query += ` AND reference_month = $3`
		args = append(args, *month)
	}
	query += ` ORDER BY reference_month DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

// Update updates an existing card invoice
func (r *InvoiceRepository) Update(invoice *domain.CardInvoice) (*domain.CardInvoice, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE card_invoices
		SET total_amount = $3, paid_amount = $4, due_date = $5, status = $6, entry_ids = $7, paid_at = $8
		WHERE user_id = $1 AND id = $2
		RETURNING `+invoiceColumns,
		invoice.UserID, invoice.ID, invoice.TotalAmount, invoice.PaidAmount,
		invoice.DueDate, invoice.Status, encodeEntryIDs(invoice.EntryIDs), invoice.PaidAt)
	updated, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return updated, nil
}

// ListOpenDueBetween retrieves the user's open invoices due within [from, to]
func (r *InvoiceRepository) ListOpenDueBetween(userID uuid.UUID, from, to time.Time) ([]*domain.CardInvoice, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceColumns+` FROM card_invoices
		WHERE user_id = $1 AND status = $2 AND due_date BETWEEN $3 AND $4
		ORDER BY due_date`, userID, domain.InvoiceOpen, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func collectInvoices(rows pgx.Rows) ([]*domain.CardInvoice, error) {
	var invoices []*domain.CardInvoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

func scanInvoice(row pgx.Row) (*domain.CardInvoice, error) {
	var invoice domain.CardInvoice
	var entryIDs []string
	err := row.Scan(&invoice.ID, &invoice.CardID, &invoice.UserID, &invoice.ReferenceMonth,
		&invoice.TotalAmount, &invoice.PaidAmount, &invoice.DueDate, &invoice.Status,
		&entryIDs, &invoice.CreatedAt, &invoice.PaidAt)
	if err != nil {
		return nil, err
	}
	invoice.EntryIDs, err = decodeEntryIDs(entryIDs)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Entry IDs travel as text[]; pgx maps them to and from []string.
func encodeEntryIDs(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func decodeEntryIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
