package postgres

import (
	"context"
	"errors"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecurringRepository implements domain.RecurringRepository using PostgreSQL
type RecurringRepository struct {
	pool *pgxpool.Pool
}

// NewRecurringRepository creates a new RecurringRepository
func NewRecurringRepository(pool *pgxpool.Pool) *RecurringRepository {
	return &RecurringRepository{pool: pool}
}

const recurringColumns = `id, user_id, description, category, direction, amount, due_day, start_month, end_month, is_active, created_at, updated_at`

// Create creates a new recurring item
func (r *RecurringRepository) Create(item *domain.RecurringItem) (*domain.RecurringItem, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO recurring_items (user_id, description, category, direction, amount, due_day, start_month, end_month, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+recurringColumns,
		item.UserID, item.Description, item.Category, item.Direction, item.Amount,
		item.DueDay, item.StartMonth, item.EndMonth, item.IsActive)
	return scanRecurring(row)
}

// GetByID retrieves a recurring item by ID within a user's data
func (r *RecurringRepository) GetByID(userID, id uuid.UUID) (*domain.RecurringItem, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+recurringColumns+` FROM recurring_items
		WHERE user_id = $1 AND id = $2`, userID, id)
	item, err := scanRecurring(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecurringNotFound
		}
		return nil, err
	}
	return item, nil
}

// ListByUser retrieves the user's recurring items in creation order
func (r *RecurringRepository) ListByUser(userID uuid.UUID, activeOnly *bool) ([]*domain.RecurringItem, error) {
	ctx := context.Background()
	query := `SELECT ` + recurringColumns + ` FROM recurring_items WHERE user_id = $1`
	args := []interface{}{userID}
	if activeOnly != nil {
		query += ` AND is_active = $2`
		args = append(args, *activeOnly)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.RecurringItem
	for rows.Next() {
		item, err := scanRecurring(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Update updates an existing recurring item
func (r *RecurringRepository) Update(item *domain.RecurringItem) (*domain.RecurringItem, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE recurring_items
		SET description = $3, category = $4, direction = $5, amount = $6, due_day = $7,
		    start_month = $8, end_month = $9, is_active = $10, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+recurringColumns,
		item.UserID, item.ID, item.Description, item.Category, item.Direction, item.Amount,
		item.DueDay, item.StartMonth, item.EndMonth, item.IsActive)
	updated, err := scanRecurring(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecurringNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete deletes a recurring item
func (r *RecurringRepository) Delete(userID, id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM recurring_items WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecurringNotFound
	}
	return nil
}

func scanRecurring(row pgx.Row) (*domain.RecurringItem, error) {
	var item domain.RecurringItem
	err := row.Scan(&item.ID, &item.UserID, &item.Description, &item.Category, &item.Direction,
		&item.Amount, &item.DueDay, &item.StartMonth, &item.EndMonth, &item.IsActive,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
