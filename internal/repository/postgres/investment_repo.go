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

// InvestmentRepository implements domain.InvestmentRepository using PostgreSQL
type InvestmentRepository struct {
	pool *pgxpool.Pool
}

// NewInvestmentRepository creates a new InvestmentRepository
func NewInvestmentRepository(pool *pgxpool.Pool) *InvestmentRepository {
	return &InvestmentRepository{pool: pool}
}

const investmentColumns = `id, user_id, date, asset, amount, note, created_at, updated_at`

// Create creates a new investment record
func (r *InvestmentRepository) Create(inv *domain.Investment) (*domain.Investment, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO investments (user_id, date, asset, amount, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+investmentColumns,
		inv.UserID, inv.Date, inv.Asset, inv.Amount, inv.Note)
	return scanInvestment(row)
}

// GetByID retrieves an investment by ID within a user's data
func (r *InvestmentRepository) GetByID(userID, id uuid.UUID) (*domain.Investment, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+investmentColumns+` FROM investments
		WHERE user_id = $1 AND id = $2`, userID, id)
	inv, err := scanInvestment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvestmentNotFound
		}
		return nil, err
	}
	return inv, nil
}

// ListByUser retrieves all of the user's investments, newest first
func (r *InvestmentRepository) ListByUser(userID uuid.UUID) ([]*domain.Investment, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+investmentColumns+` FROM investments
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvestments(rows)
}

// ListByDateRange retrieves the user's investments with dates in [from, to]
func (r *InvestmentRepository) ListByDateRange(userID uuid.UUID, from, to time.Time) ([]*domain.Investment, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+investmentColumns+` FROM investments
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC, created_at DESC`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvestments(rows)
}

// Update updates an existing investment record
func (r *InvestmentRepository) Update(inv *domain.Investment) (*domain.Investment, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE investments
		SET date = $3, asset = $4, amount = $5, note = $6, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+investmentColumns,
		inv.UserID, inv.ID, inv.Date, inv.Asset, inv.Amount, inv.Note)
	updated, err := scanInvestment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvestmentNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete deletes an investment record
func (r *InvestmentRepository) Delete(userID, id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM investments WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvestmentNotFound
	}
	return nil
}

func scanInvestment(row pgx.Row) (*domain.Investment, error) {
	var inv domain.Investment
	err := row.Scan(&inv.ID, &inv.UserID, &inv.Date, &inv.Asset, &inv.Amount, &inv.Note,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func collectInvestments(rows pgx.Rows) ([]*domain.Investment, error) {
	var invs []*domain.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}
