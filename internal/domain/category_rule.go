package domain

import (
	"time"

	"github.com/google/uuid"
)

type MatchType string

const (
	MatchSubstring MatchType = "substring"
	MatchExact     MatchType = "exact"
)

// CategoryRule maps a description pattern to a category. User rules are
// checked before the built-in keyword table when suggesting categories.
type CategoryRule struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Pattern   string    `json:"pattern"`
	MatchType MatchType `json:"matchType"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

type CategoryRuleRepository interface {
	Create(rule *CategoryRule) (*CategoryRule, error)
	ListByUser(userID uuid.UUID) ([]*CategoryRule, error)
	Delete(userID, id uuid.UUID) error
}
