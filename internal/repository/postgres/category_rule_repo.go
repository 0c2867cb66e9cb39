package postgres

import (
	"context"

	"github.com/financeia/financeia-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRuleRepository implements domain.CategoryRuleRepository using PostgreSQL
type CategoryRuleRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRuleRepository creates a new CategoryRuleRepository
func NewCategoryRuleRepository(pool *pgxpool.Pool) *CategoryRuleRepository {
	return &CategoryRuleRepository{pool: pool}
}

// Create creates a new category rule
func (r *CategoryRuleRepository) Create(rule *domain.CategoryRule) (*domain.CategoryRule, error) {
	ctx := context.Background()
	var created domain.CategoryRule
	err := r.pool.QueryRow(ctx, `
		INSERT INTO category_rules (user_id, pattern, match_type, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, pattern, match_type, category, created_at`,
		rule.UserID, rule.Pattern, rule.MatchType, rule.Category).
		Scan(&created.ID, &created.UserID, &created.Pattern, &created.MatchType, &created.Category, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListByUser retrieves the user's category rules in creation order. The
// suggestion engine depends on this order: earlier rules win.
func (r *CategoryRuleRepository) ListByUser(userID uuid.UUID) ([]*domain.CategoryRule, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, pattern, match_type, category, created_at
		FROM category_rules
		WHERE user_id = $1
		ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*domain.CategoryRule
	for rows.Next() {
		var rule domain.CategoryRule
		if err := rows.Scan(&rule.ID, &rule.UserID, &rule.Pattern, &rule.MatchType, &rule.Category, &rule.CreatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, &rule)
	}
	return rules, rows.Err()
}

// Delete deletes a category rule
func (r *CategoryRuleRepository) Delete(userID, id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM category_rules WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}
