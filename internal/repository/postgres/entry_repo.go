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

// EntryRepository implements domain.EntryRepository using PostgreSQL
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `id, user_id, date, description, category, direction, amount, method, origin, note, created_at, updated_at`

// Create creates a new ledger entry
func (r *EntryRepository) Create(entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO ledger_entries (user_id, date, description, category, direction, amount, method, origin, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+entryColumns,
		entry.UserID, entry.Date, entry.Description, entry.Category, entry.Direction,
		entry.Amount, entry.Method, entry.Origin, entry.Note)
	return scanEntry(row)
}

// GetByID retrieves a ledger entry by ID within a user's data
func (r *EntryRepository) GetByID(userID, id uuid.UUID) (*domain.LedgerEntry, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+` FROM ledger_entries
		WHERE user_id = $1 AND id = $2`, userID, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// ListByUser retrieves all of the user's ledger entries, newest first
func (r *EntryRepository) ListByUser(userID uuid.UUID) ([]*domain.LedgerEntry, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+` FROM ledger_entries
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

// ListByDateRange retrieves the user's entries with dates in [from, to]
func (r *EntryRepository) ListByDateRange(userID uuid.UUID, from, to time.Time) ([]*domain.LedgerEntry, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+` FROM ledger_entries
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC, created_at DESC`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

// Update updates an existing ledger entry
func (r *EntryRepository) Update(entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE ledger_entries
		SET date = $3, description = $4, category = $5, direction = $6, amount = $7,
		    method = $8, note = $9, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+entryColumns,
		entry.UserID, entry.ID, entry.Date, entry.Description, entry.Category,
		entry.Direction, entry.Amount, entry.Method, entry.Note)
	updated, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete deletes a ledger entry
func (r *EntryRepository) Delete(userID, id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM ledger_entries WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// ExistsGenerated reports whether a recurring-origin entry with the given
// description already exists in the given month
func (r *EntryRepository) ExistsGenerated(userID uuid.UUID, description string, month domain.YearMonth) (bool, error) {
	ctx := context.Background()
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM ledger_entries
			WHERE user_id = $1 AND origin = $2 AND description = $3
			  AND date >= $4 AND date <= $5
		)`,
		userID, domain.OriginRecurring, description, month.Start(), month.End()).Scan(&exists)
	return exists, err
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var entry domain.LedgerEntry
	err := row.Scan(&entry.ID, &entry.UserID, &entry.Date, &entry.Description, &entry.Category,
		&entry.Direction, &entry.Amount, &entry.Method, &entry.Origin, &entry.Note,
		&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func collectEntries(rows pgx.Rows) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
