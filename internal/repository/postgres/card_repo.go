package postgres

import (
	"context"
	"errors"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CardRepository implements domain.CardRepository using PostgreSQL
type CardRepository struct {
	pool *pgxpool.Pool
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(pool *pgxpool.Pool) *CardRepository {
	return &CardRepository{pool: pool}
}

const cardColumns = `id, user_id, name, total_limit, used_limit, due_day, best_purchase_day, is_active, created_at, updated_at`

// Create creates a new credit card
func (r *CardRepository) Create(card *domain.CreditCard) (*domain.CreditCard, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO credit_cards (user_id, name, total_limit, used_limit, due_day, best_purchase_day, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+cardColumns,
		card.UserID, card.Name, card.TotalLimit, card.UsedLimit,
		card.DueDay, card.BestPurchaseDay, card.IsActive)
	return scanCard(row)
}

// GetByID retrieves a credit card by ID within a user's data
func (r *CardRepository) GetByID(userID, id uuid.UUID) (*domain.CreditCard, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+cardColumns+` FROM credit_cards
		WHERE user_id = $1 AND id = $2`, userID, id)
	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// ListByUser retrieves the user's credit cards in creation order
func (r *CardRepository) ListByUser(userID uuid.UUID) ([]*domain.CreditCard, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+cardColumns+` FROM credit_cards
		WHERE user_id = $1
		ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*domain.CreditCard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// Update updates an existing credit card
func (r *CardRepository) Update(card *domain.CreditCard) (*domain.CreditCard, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE credit_cards
		SET name = $3, total_limit = $4, used_limit = $5, due_day = $6,
		    best_purchase_day = $7, is_active = $8, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING `+cardColumns,
		card.UserID, card.ID, card.Name, card.TotalLimit, card.UsedLimit,
		card.DueDay, card.BestPurchaseDay, card.IsActive)
	updated, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete deletes a credit card
func (r *CardRepository) Delete(userID, id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM credit_cards WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

func scanCard(row pgx.Row) (*domain.CreditCard, error) {
	var card domain.CreditCard
	err := row.Scan(&card.ID, &card.UserID, &card.Name, &card.TotalLimit, &card.UsedLimit,
		&card.DueDay, &card.BestPurchaseDay, &card.IsActive, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &card, nil
}
